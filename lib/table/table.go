/*package table materialises the time series assembled from a summary file
pair and persists it as a columnar table.

A Table holds one row per report step and one value column per recorded
vector, in specification order, preceded by a calendar date column and an
elapsed-time column. Write chooses the on-disk encoding from the destination
extension: Apache Parquet for .parquet, plain comma-separated text for .csv,
and zstd-compressed text for .csv.zst.
*/
package table

import (
	"fmt"
	"os"
	"strings"

	"github.com/rfarell/spe1-case1/lib/summary"
	"github.com/rfarell/spe1-case1/lib/sumio"
)

// Names of the two leading metadata columns. A recorded TIME vector, which
// most simulators emit as their first mnemonic, carries the same elapsed
// days as the TIME column here.
const (
	DateColumn = "DATE"
	TimeColumn = "TIME"
)

// Table is the reconstructed output of one simulation case. Rows are report
// steps in file order and every row holds exactly one value per vector in
// Spec.
type Table struct {
	Spec summary.Spec
	Rows []sumio.Row
}

// Collect drains a and materialises its rows. A decoding error discards the
// table: partial results are never returned, since a misaligned row would
// poison every later column.
func Collect(a *sumio.Assembler) (*Table, error) {
	var rows []sumio.Row
	for a.Next() {
		rows = append(rows, a.Row())
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return &Table{Spec: a.Index().Vectors, Rows: rows}, nil
}

// Read assembles the full table for the case described by the specification
// file at specPath and the data file at dataPath.
func Read(specPath, dataPath string) (*Table, error) {
	ix, err := sumio.ReadSpec(specPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Collect(sumio.NewAssembler(ix, f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataPath, err)
	}
	return t, nil
}

// Columns returns the full header: DATE, TIME, then one name per vector in
// specification order.
func (t *Table) Columns() []string {
	cols := make([]string, 0, 2+len(t.Spec))
	cols = append(cols, DateColumn, TimeColumn)
	return append(cols, t.Spec.Columns()...)
}

// Column returns the series recorded under the column name, with TIME
// resolving to the elapsed-time column. The second return is false if no
// such column exists.
func (t *Table) Column(name string) ([]float64, bool) {
	if name == TimeColumn {
		out := make([]float64, len(t.Rows))
		for i := range t.Rows {
			out[i] = t.Rows[i].Time
		}
		return out, true
	}

	j := t.Spec.FindColumn(name)
	if j < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Rows[i].Values[j]
	}
	return out, true
}

// Write persists t to path, choosing the encoding from the extension.
func Write(t *Table, path string) error {
	switch {
	case strings.HasSuffix(path, ".csv.zst"):
		return writeCSVZst(t, path)
	case strings.HasSuffix(path, ".csv"):
		return writeCSV(t, path)
	case strings.HasSuffix(path, ".parquet"):
		return writeParquet(t, path)
	}
	return fmt.Errorf("'%s' does not end in a supported table extension: "+
		"use .parquet, .csv, or .csv.zst", path)
}
