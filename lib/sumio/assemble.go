package sumio

import (
	"io"
	"math"
	"time"
)

// Row is one assembled report step: its 1-based position in the file, the
// elapsed simulation time in days, the calendar date derived from it, and
// the recorded values in specification order, widened to float64.
type Row struct {
	Step   int
	Time   float64
	Date   time.Time
	Values []float64
}

// Assembler merges an Index with a data file's record stream into rows.
// The data file groups records per report step: a SEQHDR record opens the
// group, a STEPTIME record carries the elapsed days, and a PARAMS record
// carries the vector values, one per Index entry in the same order. The
// assembler is a single-pass, non-restartable scanner in the same style as
// Reader:
//
//	a := sumio.NewAssembler(ix, f)
//	for a.Next() {
//	    row := a.Row()
//	    ...
//	}
//	if err := a.Err(); err != nil { ... }
//
// Records other than the three group keywords are skipped. Structural
// violations (a vector block outside a group, a group without a vector
// block, decreasing elapsed time) are a *FormatError, and a vector block
// whose width disagrees with the Index is a *CountMismatchError. Both are
// fatal: after either, every later value would land in the wrong column.
type Assembler struct {
	ix   *Index
	r    *Reader
	row  Row
	err  error
	done bool

	step     int
	lastTime float64
	open     bool
	haveTime bool
	elapsed  float64
}

// NewAssembler returns an Assembler producing one Row per report step
// group in the data stream r, with columns described by ix.
func NewAssembler(ix *Index, r io.Reader) *Assembler {
	return &Assembler{ix: ix, r: NewReader(r), lastTime: math.Inf(-1)}
}

// Next advances to the next report step. It returns false when the stream
// ends cleanly after a complete group or an error occurs.
func (a *Assembler) Next() bool {
	if a.err != nil || a.done {
		return false
	}

	for a.r.Next() {
		rec := a.r.Record()
		switch rec.Name {
		case "SEQHDR":
			if a.open {
				a.err = formatErr(rec.Offset, "a new report step group "+
					"begins before the previous one recorded its vector "+
					"block")
				return false
			}
			a.open, a.haveTime = true, false
		case "STEPTIME":
			if !a.open {
				a.err = formatErr(rec.Offset,
					"STEPTIME appears outside a report step group")
				return false
			}
			if a.haveTime {
				a.err = formatErr(rec.Offset,
					"a report step group declares STEPTIME twice")
				return false
			}
			t, ok := scalarFloat(rec.Data)
			if !ok {
				a.err = formatErr(rec.Offset, "STEPTIME must hold "+
					"exactly one numeric element, found %d %s elements",
					rec.Len(), rec.Type().Tag())
				return false
			}
			if t < a.lastTime {
				a.err = formatErr(rec.Offset, "elapsed time decreases "+
					"from %g to %g days between report steps",
					a.lastTime, t)
				return false
			}
			a.elapsed, a.haveTime = t, true
		case "PARAMS":
			if !a.open || !a.haveTime {
				a.err = formatErr(rec.Offset, "a vector block appears "+
					"before its report step group declared STEPTIME")
				return false
			}
			vals, ok := AsFloats(rec.Data)
			if !ok {
				a.err = formatErr(rec.Offset, "the vector block must "+
					"hold numeric data, found %s", rec.Type().Tag())
				return false
			}
			if len(vals) != a.ix.Width() {
				a.err = &CountMismatchError{
					Offset:   rec.Offset,
					Expected: a.ix.Width(),
					Found:    len(vals),
				}
				return false
			}
			a.step++
			a.lastTime = a.elapsed
			a.open = false
			a.row = Row{
				Step:   a.step,
				Time:   a.elapsed,
				Date:   a.ix.DateAt(a.elapsed),
				Values: vals,
			}
			return true
		}
	}

	if err := a.r.Err(); err != nil {
		a.err = err
		return false
	}
	if a.open {
		a.err = formatErr(a.r.Offset(), "the data file ends inside a "+
			"report step group that never recorded its vector block")
		return false
	}
	a.done = true
	return false
}

// Row returns the report step assembled by the last successful Next.
func (a *Assembler) Row() Row { return a.row }

// Index returns the specification index the rows are zipped against.
func (a *Assembler) Index() *Index { return a.ix }

// Err returns the error that stopped Next, or nil after a clean end of
// stream.
func (a *Assembler) Err() error { return a.err }

// Steps returns the number of report steps assembled so far.
func (a *Assembler) Steps() int { return a.step }

func scalarFloat(v Values) (float64, bool) {
	fs, ok := AsFloats(v)
	if !ok || len(fs) != 1 {
		return 0, false
	}
	return fs[0], true
}
