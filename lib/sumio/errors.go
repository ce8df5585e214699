package sumio

import "fmt"

// FormatError reports a corrupt or truncated summary stream. Offset is the
// byte position the problem was detected at. Expected and Found carry the
// disagreeing quantities for marker and length mismatches and are equal
// (and meaningless) otherwise.
type FormatError struct {
	Offset   int64
	Expected int64
	Found    int64
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Expected != e.Found {
		return fmt.Sprintf("The summary stream is corrupted at byte %d: "+
			"%s (expected %d, found %d).",
			e.Offset, e.Reason, e.Expected, e.Found)
	}
	return fmt.Sprintf("The summary stream is corrupted at byte %d: %s.",
		e.Offset, e.Reason)
}

func formatErr(offset int64, format string, args ...interface{}) error {
	return &FormatError{
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}

func markerErr(offset, expected, found int64, reason string) error {
	return &FormatError{
		Offset: offset, Expected: expected, Found: found, Reason: reason,
	}
}

// SpecInconsistencyError reports a specification file whose parallel vector
// arrays disagree with each other or are incomplete.
type SpecInconsistencyError struct {
	Reason string
}

func (e *SpecInconsistencyError) Error() string {
	return "The specification file is inconsistent: " + e.Reason + "."
}

func specErr(format string, args ...interface{}) error {
	return &SpecInconsistencyError{Reason: fmt.Sprintf(format, args...)}
}

// CountMismatchError reports a per-step vector block whose width disagrees
// with the specification. This is fatal: a single misaligned block shifts
// every later value into the wrong column.
type CountMismatchError struct {
	Offset   int64
	Expected int
	Found    int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("The vector block at byte %d of the data file "+
		"holds %d values, but the specification declares %d vectors. The "+
		"file pair is mismatched or corrupted.",
		e.Offset, e.Found, e.Expected)
}
