package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/DataDog/zstd"
)

func writeCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeCSVTo(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSVZst(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zstd.NewWriterLevel(f, 1)
	if err := writeCSVTo(t, zw); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeCSVTo streams the header row and one record per report step. Dates
// are RFC 3339 and floats use the shortest representation that survives a
// round trip through ParseFloat.
func writeCSVTo(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}

	rec := make([]string, 0, 2+len(t.Spec))
	for _, row := range t.Rows {
		rec = rec[:0]
		rec = append(rec, row.Date.UTC().Format(time.RFC3339))
		rec = append(rec, formatFloat(row.Time))
		for _, v := range row.Values {
			rec = append(rec, formatFloat(v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
