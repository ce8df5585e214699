package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rfarell/spe1-case1/lib/deck"
	"github.com/rfarell/spe1-case1/lib/sumio"
)

// chdir switches the working directory to dir for the duration of the test,
// restoring the original directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() returned error: %s", err.Error())
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%s) returned error: %s", dir, err.Error())
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestCaseBase(t *testing.T) {
	tests := []struct{ arg, want string }{
		{"CASE", "CASE"},
		{"CASE.DATA", "CASE"},
		{"CASE.SMSPEC", "CASE"},
		{"CASE.UNSMRY", "CASE"},
		{"out/CASE.unsmry", "out/CASE"},
		{"out/CASE.Data", "out/CASE"},
		{"CASE.parquet", "CASE.parquet"},
		{"a.b/CASE", "a.b/CASE"},
	}
	for i := range tests {
		test := tests[i]
		if got := caseBase(test.arg); got != test.want {
			t.Errorf("%d) expected caseBase(%q) = %q, got %q.",
				i, test.arg, test.want, got)
		}
	}
}

func TestCasePaths(t *testing.T) {
	spec, data := casePaths("out/CASE.DATA")
	if spec != "out/CASE.SMSPEC" || data != "out/CASE.UNSMRY" {
		t.Errorf("expected the summary file pair for out/CASE, got %q "+
			"and %q.", spec, data)
	}
}

const cliDeck = `RUNSPEC
TITLE
 CLI ROUND TRIP
DIMENS
 10 10 3 /
OIL
SCHEDULE
WELSPECS
 'PROD' 'G1' 10 10 8400 'OIL' /
 'INJ' 'G1' 1 1 8335 'GAS' /
/
TSTEP
 31 /
`

func TestRunPatch(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	in := filepath.Join(dir, "CASE.DATA")
	out := filepath.Join(dir, "CASE_PATCHED.DATA")
	if err := os.WriteFile(in, []byte(cliDeck), 0644); err != nil {
		t.Fatalf("WriteFile() returned error: %s", err.Error())
	}

	if err := runPatch(in, out); err != nil {
		t.Fatalf("runPatch() returned error: %s", err.Error())
	}

	text, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() returned error: %s", err.Error())
	}
	d, err := deck.Parse(text)
	if err != nil {
		t.Fatalf("the patched deck does not parse: %s", err.Error())
	}
	spec, err := d.SummaryVectors()
	if err != nil {
		t.Fatalf("SummaryVectors() returned error: %s", err.Error())
	}
	for _, col := range []string{"FOPR", "WBHP:PROD", "WBHP:INJ",
		"BPR:1,1,1", "BPR:10,10,3"} {
		if spec.FindColumn(col) < 0 {
			t.Errorf("expected the patched deck to request %s, got %v.",
				col, spec.Columns())
		}
	}
}

func TestRunPatchMissingInput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	err := runPatch(filepath.Join(dir, "MISSING.DATA"),
		filepath.Join(dir, "OUT.DATA"))
	if err == nil {
		t.Fatalf("expected a missing input deck to fail.")
	}
}

type caseRec struct {
	name string
	data sumio.Values
}

// writeCase writes a two-vector summary file pair with two report steps and
// returns the bare case path.
func writeCase(t *testing.T, dir string) string {
	t.Helper()
	base := filepath.Join(dir, "CASE")

	writeRecords(t, base+".SMSPEC", []caseRec{
		{"INTEHEAD", sumio.IntValues{1, 100}},
		{"DIMENS", sumio.IntValues{2, 10, 10, 3, 0, 0}},
		{"KEYWORDS", sumio.CharValues{"FOPR", "WBHP"}},
		{"WGNAMES", sumio.CharValues{sumio.WGPlaceholder, "PROD"}},
		{"NUMS", sumio.IntValues{0, 0}},
		{"UNITS", sumio.CharValues{"SM3/DAY", "BARSA"}},
		{"STARTDAT", sumio.IntValues{1, 1, 2015}},
	})
	writeRecords(t, base+".UNSMRY", []caseRec{
		{"SEQHDR", sumio.IntValues{1}},
		{"STEPTIME", sumio.DoubleValues{31}},
		{"PARAMS", sumio.RealValues{100, 250}},
		{"SEQHDR", sumio.IntValues{2}},
		{"STEPTIME", sumio.DoubleValues{59}},
		{"PARAMS", sumio.RealValues{90, 245}},
	})
	return base
}

func writeRecords(t *testing.T, path string, recs []caseRec) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create(%s) returned error: %s", path, err.Error())
	}
	defer f.Close()
	w := sumio.NewWriter(f)
	for i := range recs {
		if err := w.WriteRecord(recs[i].name, recs[i].data); err != nil {
			t.Fatalf("WriteRecord(%s) returned error: %s",
				recs[i].name, err.Error())
		}
	}
}

func TestRunExtractCSV(t *testing.T) {
	dir := t.TempDir()
	base := writeCase(t, dir)
	out := filepath.Join(dir, "CASE.csv")

	if err := runExtract(base+".UNSMRY", out); err != nil {
		t.Fatalf("runExtract() returned error: %s", err.Error())
	}

	text, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() returned error: %s", err.Error())
	}
	lines := strings.Split(strings.TrimSpace(string(text)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and 2 rows, got %d lines.", len(lines))
	}
	if lines[0] != "DATE,TIME,FOPR,WBHP:PROD" {
		t.Errorf("expected the header DATE,TIME,FOPR,WBHP:PROD, got %q.",
			lines[0])
	}
}

func TestRunExtractMissingCase(t *testing.T) {
	dir := t.TempDir()
	err := runExtract(filepath.Join(dir, "MISSING"),
		filepath.Join(dir, "OUT.csv"))
	if err == nil {
		t.Fatalf("expected a missing case to fail.")
	}
}

func TestRunVectors(t *testing.T) {
	base := writeCase(t, t.TempDir())

	buf := &bytes.Buffer{}
	if err := runVectors(base, buf); err != nil {
		t.Fatalf("runVectors() returned error: %s", err.Error())
	}
	out := buf.String()
	for _, want := range []string{
		"2 vectors on a 10x10x3 grid", "METRIC units",
		"FOPR", "WBHP:PROD", "BARSA",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected the listing to mention %q, got:\n%s",
				want, out)
		}
	}
}

func TestRunStats(t *testing.T) {
	base := writeCase(t, t.TempDir())

	buf := &bytes.Buffer{}
	if err := runStats(base, nil, buf); err != nil {
		t.Fatalf("runStats() returned error: %s", err.Error())
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and 2 vector rows, got %d lines:\n%s",
			len(lines), out)
	}
	if !strings.Contains(lines[1], "FOPR") ||
		!strings.Contains(lines[1], "95") {
		t.Errorf("expected the FOPR row to report a mean of 95, got %q.",
			lines[1])
	}
}

func TestRunStatsUnknownColumn(t *testing.T) {
	base := writeCase(t, t.TempDir())
	err := runStats(base, []string{"FOPR", "NOPE"}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected an unknown column to be rejected.")
	}
}

func TestRunStatsColumnFilter(t *testing.T) {
	base := writeCase(t, t.TempDir())

	buf := &bytes.Buffer{}
	if err := runStats(base, []string{"WBHP:PROD"}, buf); err != nil {
		t.Fatalf("runStats() returned error: %s", err.Error())
	}
	out := buf.String()
	if strings.Contains(out, "FOPR") || !strings.Contains(out, "WBHP:PROD") {
		t.Errorf("expected only the WBHP:PROD row, got:\n%s", out)
	}
}
