/*package sumio reads and writes the simulator's summary files: the
specification file (SMSPEC) describing which vectors were recorded and the
unified data file (UNSMRY) holding their values at every report step.

Both files share one low-level layout, a sequence of tagged records. Each
record is an 8-character keyword, an element count, a 4-character datatype
tag, and a payload of count elements. Records are carried inside physical
blocks framed by big-endian int32 byte-count markers, one before and one
after the payload, a convention inherited from Fortran sequential files. A
record's header always occupies its own 16-byte block; payloads are split
across blocks of at most 1000 elements, or 105 for character data. Reader
reassembles logical records across those splits and verifies every marker
pair, Writer produces the same layout, and the higher-level Index and
Assembler interpret the record streams of the two file kinds.

All decoding is strict: a marker mismatch, an unknown datatype tag, or a
truncated stream is a fatal *FormatError, because a single misread length
would silently shift every later value into the wrong column.
*/
package sumio

// DataType identifies the element encoding of a record's payload.
type DataType int

const (
	Inte DataType = iota // 32-bit big-endian integers
	Real                 // 32-bit IEEE floats
	Doub                 // 64-bit IEEE floats
	Char                 // 8-character space-padded strings
	Logi                 // 32-bit integers, nonzero meaning true
	Mess                 // no payload
)

// Tag returns the 4-character tag that spells this type in a record header.
func (dt DataType) Tag() string {
	switch dt {
	case Inte:
		return "INTE"
	case Real:
		return "REAL"
	case Doub:
		return "DOUB"
	case Char:
		return "CHAR"
	case Logi:
		return "LOGI"
	case Mess:
		return "MESS"
	}
	return "????"
}

func (dt DataType) String() string { return dt.Tag() }

// parseTag maps a header tag to its DataType.
func parseTag(tag string) (DataType, bool) {
	switch tag {
	case "INTE":
		return Inte, true
	case "REAL":
		return Real, true
	case "DOUB":
		return Doub, true
	case "CHAR":
		return Char, true
	case "LOGI":
		return Logi, true
	case "MESS":
		return Mess, true
	}
	return 0, false
}

// size returns the encoded width of one element in bytes.
func (dt DataType) size() int {
	switch dt {
	case Doub, Char:
		return 8
	case Mess:
		return 0
	}
	return 4
}

// blockLen returns the maximum number of elements a physical block may
// hold: 105 for character data, 1000 for everything else.
func (dt DataType) blockLen() int {
	if dt == Char {
		return 105
	}
	return 1000
}

// Values is the payload of one record. The concrete type is determined by
// the record's datatype tag, so a caller that cares about element types
// switches over the implementations below rather than re-interpreting raw
// bytes.
type Values interface {
	Type() DataType
	Len() int
}

type IntValues []int32

func (v IntValues) Type() DataType { return Inte }
func (v IntValues) Len() int       { return len(v) }

type RealValues []float32

func (v RealValues) Type() DataType { return Real }
func (v RealValues) Len() int       { return len(v) }

type DoubleValues []float64

func (v DoubleValues) Type() DataType { return Doub }
func (v DoubleValues) Len() int       { return len(v) }

type CharValues []string

func (v CharValues) Type() DataType { return Char }
func (v CharValues) Len() int       { return len(v) }

type BoolValues []bool

func (v BoolValues) Type() DataType { return Logi }
func (v BoolValues) Len() int       { return len(v) }

type MessValue struct{}

func (v MessValue) Type() DataType { return Mess }
func (v MessValue) Len() int       { return 0 }

var (
	_ Values = IntValues(nil)
	_ Values = RealValues(nil)
	_ Values = DoubleValues(nil)
	_ Values = CharValues(nil)
	_ Values = BoolValues(nil)
	_ Values = MessValue{}
)

// AsFloats widens a numeric payload to float64s. The second return is false
// for character, boolean, and message payloads.
func AsFloats(v Values) ([]float64, bool) {
	switch x := v.(type) {
	case DoubleValues:
		out := make([]float64, len(x))
		copy(out, x)
		return out, true
	case RealValues:
		out := make([]float64, len(x))
		for i := range x {
			out[i] = float64(x[i])
		}
		return out, true
	case IntValues:
		out := make([]float64, len(x))
		for i := range x {
			out[i] = float64(x[i])
		}
		return out, true
	}
	return nil, false
}

// Record is one logical record: its keyword with trailing padding removed,
// its payload, and the byte offset of its header block in the stream.
type Record struct {
	Name   string
	Data   Values
	Offset int64
}

// Type returns the record's datatype tag.
func (rec Record) Type() DataType { return rec.Data.Type() }

// Len returns the record's element count.
func (rec Record) Len() int { return rec.Data.Len() }
