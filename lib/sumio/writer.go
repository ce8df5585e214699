package sumio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes tagged records in the layout Reader decodes: a 16-byte
// header block followed by marker-framed payload blocks of at most 1000
// elements, or 105 for character data. The summary files the pipeline's
// tests decode are produced with it, as are synthetic file pairs.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter returns a Writer encoding records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, 0, 8008)}
}

// WriteRecord writes one logical record. Keywords longer than 8 characters
// and character elements longer than 8 characters do not fit the format and
// are rejected.
func (w *Writer) WriteRecord(name string, data Values) error {
	if len(name) == 0 || len(name) > 8 {
		return fmt.Errorf("'%s' cannot be a record keyword: keywords are "+
			"1 to 8 characters long", name)
	}
	if chars, ok := data.(CharValues); ok {
		for _, s := range chars {
			if len(s) > 8 {
				return fmt.Errorf("'%s' cannot be a character element: "+
					"elements are at most 8 characters long", s)
			}
		}
	}

	dt := data.Type()
	count := data.Len()

	w.buf = w.buf[:0]
	w.buf = appendMarker(w.buf, headerSize)
	w.buf = append(w.buf, fmt.Sprintf("%-8s", name)...)
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(count))
	w.buf = append(w.buf, dt.Tag()...)
	w.buf = appendMarker(w.buf, headerSize)
	if _, err := w.w.Write(w.buf); err != nil {
		return err
	}
	if dt == Mess {
		return nil
	}

	for start := 0; start < count; start += dt.blockLen() {
		end := start + dt.blockLen()
		if end > count {
			end = count
		}
		n := (end - start) * dt.size()

		w.buf = w.buf[:0]
		w.buf = appendMarker(w.buf, n)
		w.buf = appendElems(w.buf, data, start, end)
		w.buf = appendMarker(w.buf, n)
		if _, err := w.w.Write(w.buf); err != nil {
			return err
		}
	}
	return nil
}

func appendMarker(buf []byte, n int) []byte {
	return binary.BigEndian.AppendUint32(buf, uint32(n))
}

func appendElems(buf []byte, data Values, start, end int) []byte {
	switch x := data.(type) {
	case IntValues:
		for _, v := range x[start:end] {
			buf = binary.BigEndian.AppendUint32(buf, uint32(v))
		}
	case RealValues:
		for _, v := range x[start:end] {
			buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(v))
		}
	case DoubleValues:
		for _, v := range x[start:end] {
			buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
		}
	case BoolValues:
		for _, v := range x[start:end] {
			b := uint32(0)
			if v {
				b = 1
			}
			buf = binary.BigEndian.AppendUint32(buf, b)
		}
	case CharValues:
		for _, v := range x[start:end] {
			buf = append(buf, fmt.Sprintf("%-8s", v)...)
		}
	}
	return buf
}
