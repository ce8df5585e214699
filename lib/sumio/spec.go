package sumio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rfarell/spe1-case1/lib/summary"
)

// WGPlaceholder is what the specification file stores in the qualifier
// array for vectors that take no well or group.
const WGPlaceholder = ":+:+:+:+"

// UnitSystem is the unit convention the file's values are recorded in, as
// declared by the first INTEHEAD entry.
type UnitSystem int

const (
	UnknownUnits UnitSystem = 0
	MetricUnits  UnitSystem = 1
	FieldUnits   UnitSystem = 2
	LabUnits     UnitSystem = 3
)

func (u UnitSystem) String() string {
	switch u {
	case MetricUnits:
		return "METRIC"
	case FieldUnits:
		return "FIELD"
	case LabUnits:
		return "LAB"
	}
	return "UNKNOWN"
}

// Index is a decoded specification file: the recorded vectors in file
// order, which is also the value order of every per-step vector block in
// the data file, plus the grid dimensions, simulation start date, and
// header metadata the file declares.
type Index struct {
	Vectors summary.Spec
	Dims    [3]int
	Start   time.Time
	// UnitSystem and Simulator come from the INTEHEAD record and are left
	// zero when the file carries none.
	UnitSystem UnitSystem
	Simulator  int
}

// Width returns the number of recorded vectors, the width every data row
// must have.
func (ix *Index) Width() int { return len(ix.Vectors) }

// Columns returns the column names of the recorded vectors in file order.
func (ix *Index) Columns() []string { return ix.Vectors.Columns() }

// DateAt returns the calendar date a given number of elapsed days after
// the simulation start, rounded to the nearest second.
func (ix *Index) DateAt(days float64) time.Time {
	secs := int64(days*86400 + 0.5)
	return ix.Start.Add(time.Duration(secs) * time.Second)
}

// ReadSpec reads and indexes the specification file at path.
func ReadSpec(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ix, err := IndexSpec(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ix, nil
}

// IndexSpec decodes a specification record stream and cross-references its
// parallel arrays into an Index. The mnemonic array (KEYWORDS), qualifier
// arrays (WGNAMES and NUMS), and unit array (UNITS) are recorded in lock
// step; entries at the same position describe the same vector. Arrays of
// disagreeing lengths, or vectors whose qualifier array is missing
// entirely, are a *SpecInconsistencyError.
func IndexSpec(r io.Reader) (*Index, error) {
	var (
		keywords CharValues
		wgnames  CharValues
		units    CharValues
		nums     IntValues
		dimens   IntValues
		startdat IntValues
		intehead IntValues
	)

	rd := NewReader(r)
	for rd.Next() {
		rec := rd.Record()
		switch rec.Name {
		case "KEYWORDS":
			if err := specArray(rec, &keywords); err != nil {
				return nil, err
			}
		case "WGNAMES", "NAMES":
			if err := specArray(rec, &wgnames); err != nil {
				return nil, err
			}
		case "UNITS":
			if err := specArray(rec, &units); err != nil {
				return nil, err
			}
		case "NUMS":
			if err := intArray(rec, &nums); err != nil {
				return nil, err
			}
		case "DIMENS":
			if err := intArray(rec, &dimens); err != nil {
				return nil, err
			}
		case "STARTDAT":
			if err := intArray(rec, &startdat); err != nil {
				return nil, err
			}
		case "INTEHEAD":
			if err := intArray(rec, &intehead); err != nil {
				return nil, err
			}
		}
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}

	if keywords == nil {
		return nil, specErr("the file carries no KEYWORDS array")
	}
	n := len(keywords)
	if wgnames != nil && len(wgnames) != n {
		return nil, specErr("the KEYWORDS array holds %d entries, but "+
			"WGNAMES holds %d", n, len(wgnames))
	}
	if units != nil && len(units) != n {
		return nil, specErr("the KEYWORDS array holds %d entries, but "+
			"UNITS holds %d", n, len(units))
	}
	if nums != nil && len(nums) != n {
		return nil, specErr("the KEYWORDS array holds %d entries, but "+
			"NUMS holds %d", n, len(nums))
	}

	ix := &Index{}
	if len(intehead) >= 1 {
		ix.UnitSystem = UnitSystem(intehead[0])
	}
	if len(intehead) >= 2 {
		ix.Simulator = int(intehead[1])
	}
	if dimens != nil {
		if len(dimens) < 4 {
			return nil, specErr("the DIMENS record holds %d entries, "+
				"but at least 4 are needed", len(dimens))
		}
		if int(dimens[0]) != n {
			return nil, specErr("the DIMENS record declares %d vectors, "+
				"but the KEYWORDS array holds %d", dimens[0], n)
		}
		ix.Dims = [3]int{int(dimens[1]), int(dimens[2]), int(dimens[3])}
	}

	// STARTDAT is (day, month, year), optionally followed by (hour, minute,
	// microsecond).
	switch len(startdat) {
	case 0:
		return nil, specErr("the file carries no STARTDAT record, so " +
			"calendar dates cannot be derived")
	case 3:
		ix.Start = time.Date(int(startdat[2]), time.Month(startdat[1]),
			int(startdat[0]), 0, 0, 0, 0, time.UTC)
	case 6:
		micro := int(startdat[5])
		ix.Start = time.Date(int(startdat[2]), time.Month(startdat[1]),
			int(startdat[0]), int(startdat[3]), int(startdat[4]),
			micro/1000000, micro%1000000*1000, time.UTC)
	default:
		return nil, specErr("the STARTDAT record holds %d entries, but "+
			"a start date has either 3 or 6", len(startdat))
	}

	for i, mnemonic := range keywords {
		if mnemonic == "" {
			return nil, specErr("the KEYWORDS array holds an empty "+
				"mnemonic at position %d", i)
		}
		v := summary.Vector{Mnemonic: mnemonic}
		if units != nil {
			v.Unit = units[i]
		}

		switch summary.KindOf(mnemonic) {
		case summary.Well, summary.Group:
			if wgnames == nil {
				return nil, specErr("'%s' takes a well or group "+
					"qualifier, but the file carries no WGNAMES array",
					mnemonic)
			}
			if name := wgnames[i]; name != "" && name != WGPlaceholder {
				if summary.KindOf(mnemonic) == summary.Well {
					v.Qual = summary.WellQual(name)
				} else {
					v.Qual = summary.GroupQual(name)
				}
			}
		case summary.Block, summary.Connection:
			if nums == nil {
				return nil, specErr("'%s' takes a cell qualifier, but "+
					"the file carries no NUMS array", mnemonic)
			}
			if g := int(nums[i]); g >= 1 {
				q, err := cellFromGlobal(mnemonic, g, ix.Dims)
				if err != nil {
					return nil, err
				}
				v.Qual = q
			}
		case summary.Region:
			if nums != nil && nums[i] >= 1 {
				v.Qual = summary.NumQual(int(nums[i]))
			}
		}
		ix.Vectors = append(ix.Vectors, v)
	}

	return ix, nil
}

// cellFromGlobal converts a 1-based global cell index, the form the NUMS
// array stores, back to (i, j, k) coordinates.
func cellFromGlobal(mnemonic string, g int, dims [3]int) (summary.Qualifier, error) {
	nx, ny, nz := dims[0], dims[1], dims[2]
	if nx < 1 || ny < 1 || nz < 1 {
		return summary.Qualifier{}, specErr("'%s' takes a cell qualifier, "+
			"but the file declares no grid dimensions to decode cell "+
			"index %d against", mnemonic, g)
	}
	if g > nx*ny*nz {
		return summary.Qualifier{}, specErr("'%s' names cell index %d, "+
			"which is outside the %dx%dx%d grid", mnemonic, g, nx, ny, nz)
	}
	g--
	return summary.CellQual(g%nx+1, (g/nx)%ny+1, g/(nx*ny)+1), nil
}

func specArray(rec Record, dst *CharValues) error {
	if *dst != nil {
		return specErr("the %s array appears twice", rec.Name)
	}
	chars, ok := rec.Data.(CharValues)
	if !ok {
		return specErr("the %s array holds %s data, but character data "+
			"was expected", rec.Name, rec.Type().Tag())
	}
	*dst = chars
	return nil
}

func intArray(rec Record, dst *IntValues) error {
	if *dst != nil {
		return specErr("the %s record appears twice", rec.Name)
	}
	ints, ok := rec.Data.(IntValues)
	if !ok {
		return specErr("the %s record holds %s data, but integer data "+
			"was expected", rec.Name, rec.Type().Tag())
	}
	*dst = ints
	return nil
}
