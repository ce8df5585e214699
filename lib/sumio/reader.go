package sumio

import (
	"encoding/binary"
	"io"
	"math"
	"strings"
)

// headerSize is the byte length of a record header block: an 8-character
// keyword, an int32 element count, and a 4-character datatype tag.
const headerSize = 16

// Reader decodes a stream of tagged records lazily. The usual loop is
//
//	r := sumio.NewReader(f)
//	for r.Next() {
//	    rec := r.Record()
//	    ...
//	}
//	if err := r.Err(); err != nil { ... }
//
// Next returns false at the first clean end of stream or error; Err reports
// the error, if any. The Values held by the returned Records are freshly
// allocated and remain valid after further Next calls.
type Reader struct {
	r    *countingReader
	rec  Record
	err  error
	done bool
	buf  []byte
}

// NewReader returns a Reader decoding the tagged-record stream r.
func NewReader(r io.Reader) *Reader {
	// 8000 bytes is the largest physical block the format allows: 1000
	// doubles.
	return &Reader{r: &countingReader{r: r}, buf: make([]byte, 8000)}
}

// Next advances to the next logical record. It returns false when the
// stream ends cleanly at a record boundary or an error occurs.
func (r *Reader) Next() bool {
	if r.err != nil || r.done {
		return false
	}
	rec, err := r.read()
	if err == io.EOF {
		r.done = true
		return false
	}
	if err != nil {
		r.err = err
		return false
	}
	r.rec = rec
	return true
}

// Record returns the record read by the last successful Next.
func (r *Reader) Record() Record { return r.rec }

// Err returns the error that stopped Next, or nil after a clean end of
// stream. A stream that cannot be decoded for any reason, corruption or a
// failing read, reports a *FormatError locating the position it died at.
func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed from the stream so far.
func (r *Reader) Offset() int64 { return r.r.n }

// read decodes one logical record. It returns io.EOF only when the stream
// ends cleanly before the record's header block.
func (r *Reader) read() (Record, error) {
	offset := r.r.n

	header, err := r.block(headerSize, "record header")
	if err != nil {
		return Record{}, err
	}

	name := strings.TrimRight(string(header[0:8]), " ")
	count := int(int32(binary.BigEndian.Uint32(header[8:12])))
	tag := string(header[12:16])
	dt, ok := parseTag(tag)
	if !ok {
		return Record{}, formatErr(offset,
			"'%s' is not a known datatype tag", tag)
	}
	if count < 0 {
		return Record{}, formatErr(offset,
			"the record %s declares a negative element count %d",
			name, count)
	}

	data, err := r.payload(dt, count)
	if err == io.EOF {
		return Record{}, formatErr(offset,
			"the stream ends inside the payload of the record %s, which "+
				"declares %d %s elements", name, count, dt.Tag())
	}
	if err != nil {
		return Record{}, err
	}
	return Record{Name: name, Data: data, Offset: offset}, nil
}

// payload reads and decodes a record's payload blocks. io.EOF means the
// stream ended where a payload block was required; the caller attaches the
// record context. The buffer grows one verified block at a time: the
// declared element count is untrusted until every block marker it implies
// has checked out, so it must never size an allocation up front.
func (r *Reader) payload(dt DataType, count int) (Values, error) {
	if dt == Mess {
		return MessValue{}, nil
	}

	var raw []byte
	for remaining := count; remaining > 0; {
		n := dt.blockLen()
		if remaining < n {
			n = remaining
		}
		buf, err := r.block(n*dt.size(), "payload")
		if err != nil {
			return nil, err
		}
		raw = append(raw, buf...)
		remaining -= n
	}
	return decodeValues(raw, dt, count), nil
}

// block reads one physical block of exactly want payload bytes, verifying
// that its leading and trailing length markers agree. It returns io.EOF
// only when the stream ends cleanly before the leading marker.
func (r *Reader) block(want int, what string) ([]byte, error) {
	offset := r.r.n
	lead, eof, err := r.marker()
	if eof {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	if int(lead) != want {
		return nil, markerErr(offset, int64(want), int64(lead),
			"unexpected "+what+" block length")
	}

	buf := r.scratch(want)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, formatErr(offset, "the stream ends inside a %s block "+
			"declared to hold %d bytes", what, want)
	}

	tailOffset := r.r.n
	tail, eof, err := r.marker()
	if eof || err != nil {
		return nil, formatErr(tailOffset, "the stream ends before the "+
			"trailing length marker of a %s block", what)
	}
	if tail != lead {
		return nil, markerErr(tailOffset, int64(lead), int64(tail),
			"the trailing block length marker disagrees with the "+
				"leading one")
	}
	return buf, nil
}

// marker reads one big-endian int32 block length marker. eof is true when
// the stream ends cleanly before the marker's first byte.
func (r *Reader) marker() (int32, bool, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		if err == io.EOF {
			return 0, true, nil
		}
		return 0, false, formatErr(r.r.n,
			"the stream ends inside a block length marker")
	}
	return int32(binary.BigEndian.Uint32(b[:])), false, nil
}

func (r *Reader) scratch(n int) []byte {
	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	return r.buf[:n]
}

func decodeValues(raw []byte, dt DataType, count int) Values {
	switch dt {
	case Inte:
		out := make(IntValues, count)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(raw[4*i:]))
		}
		return out
	case Real:
		out := make(RealValues, count)
		for i := range out {
			out[i] = math.Float32frombits(
				binary.BigEndian.Uint32(raw[4*i:]))
		}
		return out
	case Doub:
		out := make(DoubleValues, count)
		for i := range out {
			out[i] = math.Float64frombits(
				binary.BigEndian.Uint64(raw[8*i:]))
		}
		return out
	case Logi:
		out := make(BoolValues, count)
		for i := range out {
			out[i] = binary.BigEndian.Uint32(raw[4*i:]) != 0
		}
		return out
	case Char:
		out := make(CharValues, count)
		for i := range out {
			out[i] = strings.TrimRight(string(raw[8*i:8*i+8]), " ")
		}
		return out
	}
	return MessValue{}
}

// countingReader tracks the byte offset of everything read through it, so
// errors can point at the exact position of the corruption.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
