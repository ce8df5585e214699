package deck

import (
	"fmt"

	"github.com/rfarell/spe1-case1/lib/summary"
)

// shapeInfo records how a registered keyword lays out its data. count is the
// fixed record count for Records keywords; zero means "one or more, stop at
// the next keyword", which covers table keywords whose record count depends
// on region counts we do not model.
type shapeInfo struct {
	shape Shape
	count int
}

// registry maps the keywords the SPE1-class decks use to their shapes.
// Region-dependent keywords (DENSITY, PVTW, EQUIL, ...) are registered with
// the single-region record counts these decks declare; decks with several
// PVT or equilibration regions are outside this pipeline's scope. Keywords
// not listed here are parsed by shape inference in parse.go.
var registry = map[string]shapeInfo{
	// RUNSPEC.
	"TITLE":    {Title, 0},
	"DIMENS":   {Records, 1},
	"EQLDIMS":  {Records, 1},
	"TABDIMS":  {Records, 1},
	"WELLDIMS": {Records, 1},
	"START":    {Records, 1},
	"NSTACK":   {Records, 1},
	"OIL":      {Flag, 0},
	"GAS":      {Flag, 0},
	"WATER":    {Flag, 0},
	"DISGAS":   {Flag, 0},
	"VAPOIL":   {Flag, 0},
	"FIELD":    {Flag, 0},
	"METRIC":   {Flag, 0},
	"LAB":      {Flag, 0},
	"UNIFIN":   {Flag, 0},
	"UNIFOUT":  {Flag, 0},
	"NOSIM":    {Flag, 0},

	// GRID.
	"INIT":     {Flag, 0},
	"NOGGF":    {Flag, 0},
	"GRIDFILE": {Records, 1},
	"DX":       {Records, 1},
	"DY":       {Records, 1},
	"DZ":       {Records, 1},
	"TOPS":     {Records, 1},
	"PORO":     {Records, 1},
	"NTG":      {Records, 1},
	"PERMX":    {Records, 1},
	"PERMY":    {Records, 1},
	"PERMZ":    {Records, 1},
	"BOX":      {Records, 1},
	"ENDBOX":   {Flag, 0},
	"EQUALS":   {List, 0},
	"COPY":     {List, 0},
	"ADD":      {List, 0},
	"MULTIPLY": {List, 0},

	// PROPS.
	"PVTW":    {Records, 1},
	"PVCDO":   {Records, 1},
	"PVDG":    {Records, 1},
	"PVDO":    {Records, 1},
	"PVTO":    {List, 0},
	"SGOF":    {Records, 1},
	"SWOF":    {Records, 1},
	"ROCK":    {Records, 1},
	"DENSITY": {Records, 1},

	// REGIONS.
	"SATNUM": {Records, 1},
	"FIPNUM": {Records, 1},

	// SOLUTION.
	"EQUIL":    {Records, 1},
	"RSVD":     {Records, 1},
	"PRESSURE": {Records, 1},
	"SWAT":     {Records, 1},
	"SGAS":     {Records, 1},
	"RS":       {Records, 1},
	"RPTSOL":   {Records, 1},
	"RPTRST":   {Records, 1},

	// SCHEDULE.
	"RPTSCHED": {Records, 1},
	"DRSDT":    {Records, 1},
	"TUNING":   {Records, 3},
	"WELSPECS": {List, 0},
	"COMPDAT":  {List, 0},
	"WCONPROD": {List, 0},
	"WCONINJE": {List, 0},
	"WCONHIST": {List, 0},
	"WECON":    {List, 0},
	"GRUPTREE": {List, 0},
	"DATES":    {List, 0},
	"TSTEP":    {Records, 1},
	"END":      {Flag, 0},
}

// lookupShape resolves a keyword's shape. Registered keywords win. Inside
// the summary section every mnemonic classifies by its family: field and
// miscellaneous mnemonics (including request directives like RUNSUM) are
// flags, well/group/region mnemonics take a single record naming their
// qualifiers, and block/connection mnemonics take a record per cell closed
// by a lone slash. Outside the summary section unregistered keywords fall
// back to shape inference during parsing.
func lookupShape(section, name string) (shapeInfo, bool) {
	if info, ok := registry[name]; ok {
		return info, true
	}
	if section == "SUMMARY" {
		switch summary.KindOf(name) {
		case summary.Field, summary.Misc:
			return shapeInfo{Flag, 0}, true
		case summary.Well, summary.Group, summary.Region:
			return shapeInfo{Records, 1}, true
		case summary.Block, summary.Connection:
			return shapeInfo{List, 0}, true
		}
	}
	return shapeInfo{}, false
}

// validators holds semantic checks for the keywords whose items the
// pipeline depends on. They run right after the keyword is parsed, so a
// deck with a malformed DIMENS fails at parse time rather than when the
// grid dimensions are first needed.
var validators = map[string]func(kw *Keyword) error{
	"DIMENS": func(kw *Keyword) error {
		dims, err := kw.Records[0].Ints()
		if err != nil {
			return err
		}
		if len(dims) != 3 {
			return fmt.Errorf("expected exactly 3 grid dimensions, "+
				"found %d", len(dims))
		}
		for _, n := range dims {
			if n < 1 {
				return fmt.Errorf("grid dimensions must be positive, "+
					"found %d", n)
			}
		}
		return nil
	},
	"START": func(kw *Keyword) error {
		items := kw.Records[0].Items
		if len(items) < 3 {
			return fmt.Errorf("a start date needs a day, a month, and a "+
				"year, found %d items", len(items))
		}
		if day, ok := items[0].Int(); !ok || day < 1 || day > 31 {
			return itemError(items[0], "the day of the month must be an "+
				"integer between 1 and 31")
		}
		if _, ok := items[2].Int(); !ok {
			return itemError(items[2], "the year must be an integer")
		}
		return nil
	},
	"WELLDIMS": func(kw *Keyword) error {
		for _, it := range kw.Records[0].Items {
			if _, ok := it.Int(); !ok && !it.IsDefault() {
				return itemError(it, "well dimensioning entries must be "+
					"integers")
			}
		}
		return nil
	},
	"WELSPECS": func(kw *Keyword) error {
		for _, rec := range kw.Records {
			if len(rec.Items) < 4 {
				return fmt.Errorf("each well declaration needs at least a "+
					"name, a group, and a wellhead location, found %d items",
					len(rec.Items))
			}
			for _, it := range rec.Items[2:4] {
				if _, ok := it.Int(); !ok && !it.IsDefault() {
					return itemError(it, "wellhead locations must be "+
						"integer cell coordinates")
				}
			}
		}
		return nil
	},
	"COMPDAT": func(kw *Keyword) error {
		for _, rec := range kw.Records {
			if len(rec.Items) < 5 {
				return fmt.Errorf("each completion needs at least a well "+
					"name and the four cell coordinates I J K1 K2, found "+
					"%d items", len(rec.Items))
			}
			for _, it := range rec.Items[1:5] {
				if _, ok := it.Int(); !ok && !it.IsDefault() {
					return itemError(it, "completion cell coordinates must "+
						"be integers")
				}
			}
		}
		return nil
	},
	"TSTEP": func(kw *Keyword) error {
		for _, it := range kw.Records[0].Items {
			if _, value, ok := it.Repeat(); ok {
				if value == "" {
					return itemError(it, "time steps cannot be defaulted")
				}
				it = Item{Text: value}
			}
			if _, ok := it.Float(); !ok {
				return itemError(it, "time steps must be numeric")
			}
		}
		return nil
	},
}
