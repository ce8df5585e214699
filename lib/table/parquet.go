package table

import (
	"os"

	"github.com/parquet-go/parquet-go"
)

// writeParquet persists t with one required DOUBLE column per vector, a
// DOUBLE elapsed-time column, and a millisecond TIMESTAMP column, all
// zstd-compressed. Parquet stores group fields sorted by name, so readers
// must address columns by name rather than position.
func writeParquet(t *Table, path string) error {
	group := parquet.Group{
		DateColumn: parquet.Timestamp(parquet.Millisecond),
		TimeColumn: parquet.Leaf(parquet.DoubleType),
	}
	names := t.Spec.Columns()
	for _, name := range names {
		group[name] = parquet.Leaf(parquet.DoubleType)
	}
	schema := parquet.NewSchema("summary", group)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewWriter(f, schema, parquet.Compression(&parquet.Zstd))

	row := make(map[string]any, 2+len(names))
	for _, r := range t.Rows {
		row[DateColumn] = r.Date.UnixMilli()
		row[TimeColumn] = r.Time
		for i, name := range names {
			row[name] = r.Values[i]
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
