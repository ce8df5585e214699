package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/DataDog/zstd"
	"github.com/parquet-go/parquet-go"

	"github.com/rfarell/spe1-case1/lib/eq"
	"github.com/rfarell/spe1-case1/lib/summary"
	"github.com/rfarell/spe1-case1/lib/sumio"
)

// testTable returns a 2-vector, 3-step table for a case starting on
// 2015-01-01.
func testTable() *Table {
	spec := summary.Spec{
		{Mnemonic: "FOPR", Unit: "SM3/DAY"},
		{Mnemonic: "WBHP", Qual: summary.WellQual("PROD"), Unit: "BARSA"},
	}
	day := func(m time.Month) time.Time {
		return time.Date(2015, m, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Table{
		Spec: spec,
		Rows: []sumio.Row{
			{Step: 1, Time: 31, Date: day(time.February), Values: []float64{100, 50}},
			{Step: 2, Time: 59, Date: day(time.March), Values: []float64{95, 52}},
			{Step: 3, Time: 90, Date: day(time.April), Values: []float64{90, 55}},
		},
	}
}

type rec struct {
	name string
	data sumio.Values
}

func streamBytes(t *testing.T, recs []rec) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := sumio.NewWriter(buf)
	for _, r := range recs {
		if err := w.WriteRecord(r.name, r.data); err != nil {
			t.Fatalf("WriteRecord(%s) returned error: %s",
				r.name, err.Error())
		}
	}
	return buf.Bytes()
}

func specRecords() []rec {
	return []rec{
		{"KEYWORDS", sumio.CharValues{"FOPR", "WBHP"}},
		{"WGNAMES", sumio.CharValues{sumio.WGPlaceholder, "PROD"}},
		{"NUMS", sumio.IntValues{0, 0}},
		{"UNITS", sumio.CharValues{"SM3/DAY", "BARSA"}},
		{"DIMENS", sumio.IntValues{2, 10, 10, 3, 0, 0}},
		{"STARTDAT", sumio.IntValues{1, 1, 2015}},
	}
}

func dataRecords() []rec {
	times := []float64{31, 59, 90}
	vals := []sumio.RealValues{{100, 50}, {95, 52}, {90, 55}}
	var recs []rec
	for i := range times {
		recs = append(recs,
			rec{"SEQHDR", sumio.IntValues{int32(i + 1)}},
			rec{"STEPTIME", sumio.DoubleValues{times[i]}},
			rec{"PARAMS", vals[i]},
		)
	}
	return recs
}

func TestColumns(t *testing.T) {
	tab := testTable()
	got := tab.Columns()
	want := []string{"DATE", "TIME", "FOPR", "WBHP:PROD"}
	if !eq.Strings(got, want) {
		t.Fatalf("expected the columns %v, got %v.", want, got)
	}
}

func TestColumn(t *testing.T) {
	tab := testTable()

	vals, ok := tab.Column("WBHP:PROD")
	if !ok {
		t.Fatalf("expected to find the column WBHP:PROD.")
	}
	if want := []float64{50, 52, 55}; !eq.Float64s(vals, want) {
		t.Errorf("expected the column %v, got %v.", want, vals)
	}

	elapsed, ok := tab.Column("TIME")
	if !ok || len(elapsed) != 3 || elapsed[2] != 90 {
		t.Errorf("expected the TIME column to end at 90 days, got %v.",
			elapsed)
	}

	if _, ok := tab.Column("FWCT"); ok {
		t.Errorf("expected the lookup of an unrecorded column to fail.")
	}
}

func TestCollect(t *testing.T) {
	ix := &sumio.Index{
		Vectors: testTable().Spec,
		Dims:    [3]int{10, 10, 3},
		Start:   time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	data := streamBytes(t, dataRecords())

	tab, err := Collect(sumio.NewAssembler(ix, bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Collect() returned error: %s", err.Error())
	}
	if len(tab.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d.", len(tab.Rows))
	}
	for _, row := range tab.Rows {
		if len(row.Values) != len(tab.Spec) {
			t.Errorf("step %d) expected %d values, got %d.",
				row.Step, len(tab.Spec), len(row.Values))
		}
	}
}

func TestCollectDiscardsPartialTable(t *testing.T) {
	ix := &sumio.Index{Vectors: testTable().Spec}
	recs := dataRecords()
	recs[len(recs)-1] = rec{"PARAMS", sumio.RealValues{90, 55, 7}}
	data := streamBytes(t, recs)

	tab, err := Collect(sumio.NewAssembler(ix, bytes.NewReader(data)))
	if err == nil {
		t.Fatalf("expected a malformed final step to fail.")
	}
	merr := &sumio.CountMismatchError{}
	if !errors.As(err, &merr) {
		t.Errorf("expected a *CountMismatchError, got %T: %s",
			err, err.Error())
	}
	if tab != nil {
		t.Errorf("expected no table alongside the error.")
	}
}

func TestReadPair(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "SPE1CASE1.SMSPEC")
	dataPath := filepath.Join(dir, "SPE1CASE1.UNSMRY")
	writeFile(t, specPath, streamBytes(t, specRecords()))
	writeFile(t, dataPath, streamBytes(t, dataRecords()))

	tab, err := Read(specPath, dataPath)
	if err != nil {
		t.Fatalf("Read() returned error: %s", err.Error())
	}

	cols := tab.Columns()
	want := []string{"DATE", "TIME", "FOPR", "WBHP:PROD"}
	if !eq.Strings(cols, want) {
		t.Errorf("expected the columns %v, got %v.", want, cols)
	}
	if len(tab.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d.", len(tab.Rows))
	}
	if tab.Rows[0].Values[0] != 100 || tab.Rows[2].Values[1] != 55 {
		t.Errorf("expected the payloads to land positionally, got %v and %v.",
			tab.Rows[0].Values, tab.Rows[2].Values)
	}
	feb := time.Date(2015, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !tab.Rows[0].Date.Equal(feb) {
		t.Errorf("expected the first step to fall on %v, got %v.",
			feb, tab.Rows[0].Date)
	}
}

func TestReadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "GONE.SMSPEC")
	dataPath := filepath.Join(dir, "GONE.UNSMRY")

	if _, err := Read(specPath, dataPath); err == nil {
		t.Errorf("expected a missing specification file to fail.")
	}

	writeFile(t, specPath, streamBytes(t, specRecords()))
	_, err := Read(specPath, dataPath)
	if err == nil {
		t.Fatalf("expected a missing data file to fail.")
	}
	perr := &fs.PathError{}
	if !errors.As(err, &perr) {
		t.Errorf("expected a *fs.PathError, got %T: %s", err, err.Error())
	}
}

func TestWriteCSV(t *testing.T) {
	tab := testTable()
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(tab, path); err != nil {
		t.Fatalf("Write() returned error: %s", err.Error())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not reopen the output: %s", err.Error())
	}
	defer f.Close()
	checkCSV(t, tab, f)
}

func TestWriteCSVZst(t *testing.T) {
	tab := testTable()
	path := filepath.Join(t.TempDir(), "out.csv.zst")
	if err := Write(tab, path); err != nil {
		t.Fatalf("Write() returned error: %s", err.Error())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not reopen the output: %s", err.Error())
	}
	defer f.Close()
	zr := zstd.NewReader(f)
	defer zr.Close()
	checkCSV(t, tab, zr)
}

// checkCSV decodes csv text from r and compares it cell by cell against the
// table it was written from.
func checkCSV(t *testing.T, tab *Table, r io.Reader) {
	t.Helper()

	recs, err := csv.NewReader(r).ReadAll()
	if err != nil {
		t.Fatalf("could not decode the csv text: %s", err.Error())
	}
	if len(recs) != 1+len(tab.Rows) {
		t.Fatalf("expected %d csv records, got %d.",
			1+len(tab.Rows), len(recs))
	}

	header := tab.Columns()
	for i := range header {
		if recs[0][i] != header[i] {
			t.Errorf("expected header column %s, got %s.",
				header[i], recs[0][i])
		}
	}

	for i, row := range tab.Rows {
		got := recs[1+i]
		if got[0] != row.Date.UTC().Format(time.RFC3339) {
			t.Errorf("row %d) expected the date %s, got %s.",
				i, row.Date.UTC().Format(time.RFC3339), got[0])
		}
		cells := append([]float64{row.Time}, row.Values...)
		for j, want := range cells {
			v, err := strconv.ParseFloat(got[1+j], 64)
			if err != nil || v != want {
				t.Errorf("row %d, cell %d) expected %g, got %s.",
					i, j, want, got[1+j])
			}
		}
	}
}

func TestWriteParquet(t *testing.T) {
	tab := testTable()
	path := filepath.Join(t.TempDir(), "out.parquet")
	if err := Write(tab, path); err != nil {
		t.Fatalf("Write() returned error: %s", err.Error())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not reopen the output: %s", err.Error())
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		t.Fatalf("could not stat the output: %s", err.Error())
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		t.Fatalf("could not open the parquet file: %s", err.Error())
	}

	if pf.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d.", pf.NumRows())
	}
	schema := pf.Schema()
	cols := map[string]int{}
	for _, name := range tab.Columns() {
		leaf, ok := schema.Lookup(name)
		if !ok {
			t.Fatalf("expected the file to contain a %s column.", name)
		}
		cols[name] = leaf.ColumnIndex
	}

	rows := pf.RowGroups()[0].Rows()
	defer rows.Close()
	buf := make([]parquet.Row, 4)
	n, err := rows.ReadRows(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("could not read the parquet rows: %s", err.Error())
	}
	if n != 3 {
		t.Fatalf("expected to read 3 rows, got %d.", n)
	}

	names := tab.Spec.Columns()
	for i, row := range tab.Rows {
		if got := cellValue(t, buf[i], cols["DATE"]).Int64(); got != row.Date.UnixMilli() {
			t.Errorf("row %d) expected the date %d ms, got %d.",
				i, row.Date.UnixMilli(), got)
		}
		if got := cellValue(t, buf[i], cols["TIME"]).Double(); got != row.Time {
			t.Errorf("row %d) expected %g elapsed days, got %g.",
				i, row.Time, got)
		}
		for j, name := range names {
			if got := cellValue(t, buf[i], cols[name]).Double(); got != row.Values[j] {
				t.Errorf("row %d) expected %s = %g, got %g.",
					i, name, row.Values[j], got)
			}
		}
	}
}

// cellValue returns the value a parquet row holds in the given column.
func cellValue(t *testing.T, row parquet.Row, col int) parquet.Value {
	t.Helper()
	for _, v := range row {
		if v.Column() == col {
			return v
		}
	}
	t.Fatalf("the row holds no value for column %d.", col)
	return parquet.Value{}
}

func TestWriteUnknownExtension(t *testing.T) {
	tab := testTable()
	if err := Write(tab, filepath.Join(t.TempDir(), "out.xlsx")); err == nil {
		t.Errorf("expected an unsupported extension to fail.")
	}
}

func TestWriteIOError(t *testing.T) {
	tab := testTable()
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := Write(tab, path)
	if err == nil {
		t.Fatalf("expected writing into a missing directory to fail.")
	}
	perr := &fs.PathError{}
	if !errors.As(err, &perr) {
		t.Errorf("expected a *fs.PathError, got %T: %s", err, err.Error())
	}
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatalf("could not write %s: %s", path, err.Error())
	}
}
