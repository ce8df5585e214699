package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/rfarell/spe1-case1/lib/summary"
)

const testDeck = `-- SPE1 style test deck
RUNSPEC

TITLE
   ODEH PROBLEM, FIRST CASE

DIMENS
 10 10 3 /

OIL
GAS
WATER
DISGAS

FIELD

EQLDIMS
 1 1* 100 /

TABDIMS
 1 1 40 40 /

WELLDIMS
 2 1 1 2 /

START
 1 'JAN' 2015 /

UNIFIN
UNIFOUT

GRID

INIT

DX
 300*1000 /
DY
 300*1000 /
DZ
 100*20 100*30 100*50 /
TOPS
 100*8325 /
PORO
 300*0.3 /
PERMX
 100*500 100*50 100*200 /
PERMY
 100*500 100*50 100*200 /
PERMZ
 100*500 100*50 100*200 /

PROPS

PVTW
 270 1.029 4.6E-5 0.31 0 /

ROCK
 270 3.0E-6 /

DENSITY
 53.66 64.49 0.0533 /

SOLUTION

EQUIL
 8400 4800 8450 0 8300 0 1 0 0 /

SUMMARY

FOPR
WGOR
 'PROD'
/
FGOR
BPR
 1 1 1 /
 10 10 3 /
/
WBHP
 'INJ'
 'PROD'
/

SCHEDULE

RPTSCHED
 'PRES' 'SGAS' 'RS' 'WELLS' /

WELSPECS
 'PROD' 'G1' 10 10 8400 'OIL' /
 'INJ' 'G1' 1 1 8335 'GAS' /
/

COMPDAT
 'PROD' 10 10 3 3 'OPEN' 1* -1 0.5 /
 'INJ' 1 1 1 1 'OPEN' 1* -1 0.5 /
/

WCONPROD
 'PROD' 'OPEN' 'ORAT' 20000 4* 1000 /
/

WCONINJE
 'INJ' 'GAS' 'OPEN' 'RATE' 100000 1* 9014 /
/

TSTEP
 31 28 31 30 31 30 /

END
`

func mustParse(t *testing.T, text string) *Deck {
	t.Helper()
	d, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse() returned error: %s", err.Error())
	}
	return d
}

func TestParseSections(t *testing.T) {
	d := mustParse(t, testDeck)

	names := make([]string, len(d.Sections))
	for i := range d.Sections {
		names[i] = d.Sections[i].Name
	}
	want := []string{
		"RUNSPEC", "GRID", "PROPS", "SOLUTION", "SUMMARY", "SCHEDULE",
	}
	if len(names) != len(want) {
		t.Fatalf("expected sections %v, got %v.", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("%d) expected section %q, got %q.", i, want[i], names[i])
		}
	}

	if kw := d.Section("RUNSPEC").Keyword("OIL"); kw == nil {
		t.Errorf("expected RUNSPEC to contain the OIL flag.")
	} else if kw.Shape != Flag {
		t.Errorf("expected OIL to parse as a flag, got shape %v.", kw.Shape)
	}

	sched := d.Section("SCHEDULE")
	if kw := sched.Keyword("WELSPECS"); kw == nil {
		t.Errorf("expected SCHEDULE to contain WELSPECS.")
	} else if len(kw.Records) != 2 {
		t.Errorf("expected WELSPECS to hold 2 records, got %d.",
			len(kw.Records))
	}
	if kw := sched.Keyword("TSTEP"); kw == nil {
		t.Errorf("expected SCHEDULE to contain TSTEP.")
	} else if len(kw.Records[0].Items) != 6 {
		t.Errorf("expected TSTEP to hold 6 items, got %d.",
			len(kw.Records[0].Items))
	}
}

func TestParseItems(t *testing.T) {
	d := mustParse(t, testDeck)

	dims, err := d.Section("RUNSPEC").Keyword("DIMENS").Records[0].Ints()
	if err != nil {
		t.Fatalf("DIMENS Ints() returned error: %s", err.Error())
	}
	if len(dims) != 3 || dims[0] != 10 || dims[1] != 10 || dims[2] != 3 {
		t.Errorf("expected DIMENS = [10 10 3], got %v.", dims)
	}

	eql := d.Section("RUNSPEC").Keyword("EQLDIMS").Records[0]
	if !eql.Items[1].IsDefault() {
		t.Errorf("expected EQLDIMS item 1 to be defaulted.")
	}

	dx := d.Section("GRID").Keyword("DX").Records[0]
	n, value, ok := dx.Items[0].Repeat()
	if !ok || n != 300 || value != "1000" {
		t.Errorf("expected DX item to repeat 1000 300 times, got "+
			"(%d, %q, %v).", n, value, ok)
	}

	rock := d.Section("PROPS").Keyword("ROCK").Records[0]
	if x, ok := rock.Items[1].Float(); !ok || x != 3.0e-6 {
		t.Errorf("expected ROCK item 1 = 3.0e-6, got (%g, %v).", x, ok)
	}

	start := d.Section("RUNSPEC").Keyword("START").Records[0]
	if start.Items[1].Text != "JAN" || !start.Items[1].Quoted {
		t.Errorf("expected START item 1 to be the quoted string JAN, "+
			"got %+v.", start.Items[1])
	}
}

func TestItemFortranExponent(t *testing.T) {
	it := Item{Text: "1.0D-3"}
	x, ok := it.Float()
	if !ok || x != 1.0e-3 {
		t.Errorf("expected 1.0D-3 to parse as 1e-3, got (%g, %v).", x, ok)
	}
}

func TestRoundTrip(t *testing.T) {
	d1 := mustParse(t, testDeck)
	text1 := d1.String()
	d2 := mustParse(t, text1)
	text2 := d2.String()

	if text1 != text2 {
		t.Errorf("canonical form is not stable under reparsing:\n"+
			"first:\n%s\nsecond:\n%s", text1, text2)
	}
}

func TestKeywordComments(t *testing.T) {
	text := `RUNSPEC
DIMENS  -- nx ny nz
 10 10 3 /
OIL
GRID
PORO -- dropped on the data line below
 300*0.3 -- not kept
/
`
	d := mustParse(t, text)

	kw := d.Section("RUNSPEC").Keyword("DIMENS")
	if kw.Comment != "nx ny nz" {
		t.Errorf("expected DIMENS to keep its comment, got %q.", kw.Comment)
	}
	if kw := d.Section("RUNSPEC").Keyword("OIL"); kw.Comment != "" {
		t.Errorf("expected OIL to carry no comment, got %q.", kw.Comment)
	}
	if kw := d.Section("GRID").Keyword("PORO"); kw.Comment == "" {
		t.Errorf("expected PORO to keep its keyword line comment.")
	}

	text1 := d.String()
	if !strings.Contains(text1, "DIMENS  -- nx ny nz") {
		t.Errorf("expected the canonical form to render the DIMENS "+
			"comment, got:\n%s", text1)
	}
	if strings.Contains(text1, "not kept") {
		t.Errorf("expected data line comments to be dropped, got:\n%s", text1)
	}
	d2 := mustParse(t, text1)
	if text2 := d2.String(); text1 != text2 {
		t.Errorf("comments are not stable under reparsing:\n"+
			"first:\n%s\nsecond:\n%s", text1, text2)
	}
}

func TestDimensionsWellsTitle(t *testing.T) {
	d := mustParse(t, testDeck)

	dims, err := d.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions() returned error: %s", err.Error())
	}
	if dims != [3]int{10, 10, 3} {
		t.Errorf("expected dimensions [10 10 3], got %v.", dims)
	}

	wells := d.Wells()
	if len(wells) != 2 || wells[0] != "PROD" || wells[1] != "INJ" {
		t.Errorf("expected wells [PROD INJ], got %v.", wells)
	}

	if title := d.Title(); title != "ODEH PROBLEM, FIRST CASE" {
		t.Errorf("expected the Odeh title, got %q.", title)
	}
}

func TestSummaryVectors(t *testing.T) {
	d := mustParse(t, testDeck)

	spec, err := d.SummaryVectors()
	if err != nil {
		t.Fatalf("SummaryVectors() returned error: %s", err.Error())
	}

	want := []string{
		"FOPR", "WGOR:PROD", "FGOR",
		"BPR:1,1,1", "BPR:10,10,3",
		"WBHP:INJ", "WBHP:PROD",
	}
	cols := spec.Columns()
	if len(cols) != len(want) {
		t.Fatalf("expected columns %v, got %v.", want, cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("%d) expected column %q, got %q.", i, want[i], cols[i])
		}
	}
}

func TestBareWellKeywordExpands(t *testing.T) {
	text := strings.Replace(testDeck,
		"WBHP\n 'INJ'\n 'PROD'\n/", "WBHP\n/", 1)
	d := mustParse(t, text)

	spec, err := d.SummaryVectors()
	if err != nil {
		t.Fatalf("SummaryVectors() returned error: %s", err.Error())
	}
	if i := spec.Find("WBHP", summary.WellQual("PROD")); i < 0 {
		t.Errorf("expected a bare WBHP to expand to WBHP:PROD, got %v.",
			spec.Columns())
	}
	if i := spec.Find("WBHP", summary.WellQual("INJ")); i < 0 {
		t.Errorf("expected a bare WBHP to expand to WBHP:INJ, got %v.",
			spec.Columns())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"keyword before any section", "DIMENS\n 10 10 3 /\n"},
		{"section tag not alone", "RUNSPEC\nGRID 1 /\n"},
		{"duplicate section", "RUNSPEC\nGRID\nRUNSPEC\n"},
		{"unterminated record", "RUNSPEC\nDIMENS\n 10 10 3\n"},
		{"record runs into section tag", "RUNSPEC\nDIMENS\n 10 10 3\nGRID\n"},
		{"unclosed list", "SCHEDULE\nWELSPECS\n 'P' 'G' 1 1 /\nTSTEP\n 1 /\n"},
		{"unterminated quote", "RUNSPEC\nSTART\n 1 'JAN 2015 /\n"},
		{"dimens count", "RUNSPEC\nDIMENS\n 10 10 /\n"},
		{"dimens type", "RUNSPEC\nDIMENS\n 10 TEN 3 /\n"},
		{"dimens negative", "RUNSPEC\nDIMENS\n 10 -10 3 /\n"},
		{"start day out of range", "RUNSPEC\nSTART\n 32 'JAN' 2015 /\n"},
		{"start missing year", "RUNSPEC\nSTART\n 1 'JAN' /\n"},
		{"welldims type", "RUNSPEC\nWELLDIMS\n 2 TWO 1 2 /\n"},
		{"welspecs short record", "SCHEDULE\nWELSPECS\n 'P' 'G' /\n/\n"},
		{"compdat short record", "SCHEDULE\nCOMPDAT\n 'P' 10 10 3 /\n/\n"},
		{"compdat cell type", "SCHEDULE\nCOMPDAT\n 'P' 10 X 3 3 /\n/\n"},
		{"flag with data", "RUNSPEC\nOIL 3\n"},
		{"empty deck", "-- nothing here\n"},
		{"quoted keyword", "RUNSPEC\n'DIMENS'\n"},
		{"stray slash between keywords", "RUNSPEC\nOIL\n/\n"},
		{"stray slash before any keyword", "RUNSPEC\n/\nOIL\n"},
		{"separator-only line", "RUNSPEC\n,\nOIL\n"},
	}

	for i := range tests {
		test := tests[i]
		_, err := Parse([]byte(test.text))
		if err == nil {
			t.Errorf("%d) expected %s to fail to parse.", i, test.name)
		}
	}
}

func TestParseErrorFields(t *testing.T) {
	_, err := Parse([]byte("RUNSPEC\nDIMENS\n 10 10 3\nGRID\n"))
	if err == nil {
		t.Fatalf("expected an unterminated DIMENS to fail to parse.")
	}

	perr := &ParseError{}
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *ParseError, got %T: %s", err, err.Error())
	}
	if perr.Keyword != "DIMENS" {
		t.Errorf("expected the error to name DIMENS, got %q.", perr.Keyword)
	}
	if perr.Line != 4 {
		t.Errorf("expected the error to point at line 4, got %d.", perr.Line)
	}
}

func TestStraySlashError(t *testing.T) {
	// A lone slash at section level terminates nothing; it must surface as
	// a parse error naming its line, never as a crash.
	_, err := Parse([]byte("RUNSPEC\nOIL\n/\n"))
	if err == nil {
		t.Fatalf("expected a stray slash to fail to parse.")
	}

	perr := &ParseError{}
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *ParseError, got %T: %s", err, err.Error())
	}
	if perr.Line != 3 {
		t.Errorf("expected the error to point at line 3, got %d.", perr.Line)
	}
}

func TestInferredShapes(t *testing.T) {
	// Shape inference separates unknown keywords at registered keywords,
	// section tags, lone slashes, and end of file, so each unknown below
	// is followed by a registered flag.
	text := `RUNSPEC
XFLAG
OIL
XSINGLE
 1 2 3 /
GAS
XLIST
 1 /
 2 /
/
GRID
`
	d := mustParse(t, text)
	sec := d.Section("RUNSPEC")

	tests := []struct {
		name    string
		shape   Shape
		records int
	}{
		{"XFLAG", Flag, 0},
		{"XSINGLE", Records, 1},
		{"XLIST", List, 2},
	}
	for i := range tests {
		test := tests[i]
		kw := sec.Keyword(test.name)
		if kw == nil {
			t.Errorf("%d) expected RUNSPEC to contain %s.", i, test.name)
			continue
		}
		if kw.Shape != test.shape {
			t.Errorf("%d) expected %s to infer shape %v, got %v.",
				i, test.name, test.shape, kw.Shape)
		}
		if len(kw.Records) != test.records {
			t.Errorf("%d) expected %s to hold %d records, got %d.",
				i, test.name, test.records, len(kw.Records))
		}
	}
}

func TestFlagPacking(t *testing.T) {
	text := "RUNSPEC\nDIMENS\n 2 2 1 /\nSUMMARY\nFOPR FGPR FWPR\nRUNSUM\n"
	d := mustParse(t, text)

	sec := d.Section("SUMMARY")
	want := []string{"FOPR", "FGPR", "FWPR", "RUNSUM"}
	if len(sec.Keywords) != len(want) {
		t.Fatalf("expected %d keywords, got %d.", len(want),
			len(sec.Keywords))
	}
	for i := range want {
		if sec.Keywords[i].Name != want[i] {
			t.Errorf("%d) expected keyword %q, got %q.",
				i, want[i], sec.Keywords[i].Name)
		}
	}
}
