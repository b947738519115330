package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/internal/pool"
)

// MaxStringLength is the longest string accepted by WriteString and ReadString.
const MaxStringLength = 1<<16 - 1

// Zigzag maps a signed value to an unsigned one: 0, -1, 1, -2 become 0, 1, 2, 3.
func Zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
}

// Unzigzag reverses Zigzag.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}

// UvarintLen returns the number of bytes binary.PutUvarint uses for v.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// Writer appends varint-encoded values to a pooled buffer.
//
// Note: Writer is NOT thread-safe and must not be used after Finish.
type Writer struct {
	buf  *pool.ByteBuffer
	temp [binary.MaxVarintLen64]byte
}

// NewWriter creates a Writer backed by a pooled field buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetFieldBuffer()}
}

// WriteByte appends a single byte. It never fails.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteBool appends 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		_ = w.buf.WriteByte(1)
		return
	}
	_ = w.buf.WriteByte(0)
}

// WriteUvarint appends v as an unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	n := binary.PutUvarint(w.temp[:], v)
	w.buf.MustWrite(w.temp[:n])
}

// WriteVarint appends v as a zigzag varint.
func (w *Writer) WriteVarint(v int64) {
	w.WriteUvarint(Zigzag(v))
}

// WriteString appends s with a uvarint length prefix.
//
// Returns:
//   - error: ErrStringTooLong if s exceeds MaxStringLength bytes
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes exceeds maximum %d", errs.ErrStringTooLong, len(s), MaxStringLength)
	}

	w.buf.Grow(UvarintLen(uint64(len(s))) + len(s))
	w.WriteUvarint(uint64(len(s)))
	_, _ = w.buf.WriteString(s)

	return nil
}

// WriteRaw appends data verbatim.
func (w *Writer) WriteRaw(data []byte) {
	w.buf.MustWrite(data)
}

// Bytes returns the encoded bytes. The slice is only valid until the next write or Finish.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset discards the written bytes but keeps the buffer.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Finish returns the buffer to the pool. The Writer must not be used afterwards.
func (w *Writer) Finish() {
	if w.buf != nil {
		pool.PutFieldBuffer(w.buf)
		w.buf = nil
	}
}

// Reader decodes values written by Writer from an in-memory payload.
//
// The base offset is added to every reported position so that nested payloads can
// name their position within the enclosing stream.
type Reader struct {
	data   []byte
	offset int
	base   int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// NewReaderAt creates a Reader over data that reports positions relative to base.
func NewReaderAt(data []byte, base int) *Reader {
	return &Reader{data: data, base: base}
}

// Offset returns the absolute position of the next unread byte.
func (r *Reader) Offset() int {
	return r.base + r.offset
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// Done reports whether all bytes have been consumed.
func (r *Reader) Done() bool {
	return r.offset >= len(r.data)
}

func (r *Reader) truncated(what string, need int) error {
	return fmt.Errorf("%w: reading %s at offset %d (need %d bytes, have %d)",
		errs.ErrTruncated, what, r.Offset(), need, r.Remaining())
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, r.truncated("byte", 1)
	}
	b := r.data[r.offset]
	r.offset++

	return b, nil
}

// ReadBool reads a byte written by WriteBool. Any value other than 0 or 1 is malformed.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}

	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid boolean 0x%02x at offset %d", errs.ErrMalformedField, b, r.Offset()-1)
	}
}

// ReadUvarint reads an unsigned varint.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.offset:])
	if n == 0 {
		return 0, r.truncated("varint", 1)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: varint overflows 64 bits at offset %d", errs.ErrMalformedVarint, r.Offset())
	}
	r.offset += n

	return v, nil
}

// ReadVarint reads a zigzag varint.
func (r *Reader) ReadVarint() (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}

	return Unzigzag(u), nil
}

// ReadLength reads a uvarint that must not exceed the remaining bytes times unit.
// It guards allocations driven by corrupted counts.
func (r *Reader) ReadLength(what string, unit int) (int, error) {
	start := r.Offset()
	v, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if unit < 1 {
		unit = 1
	}
	if v > uint64(r.Remaining()/unit) { //nolint:gosec
		return 0, fmt.Errorf("%w: %s %d at offset %d exceeds remaining %d bytes",
			errs.ErrTruncated, what, v, start, r.Remaining())
	}

	return int(v), nil //nolint:gosec
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadLength("string length", 1)
	if err != nil {
		return "", err
	}
	if n > MaxStringLength {
		return "", fmt.Errorf("%w: %d bytes at offset %d", errs.ErrStringTooLong, n, r.Offset())
	}

	s := string(r.data[r.offset : r.offset+n])
	r.offset += n

	return s, nil
}

// ReadRaw returns the next n bytes without copying.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, r.truncated("raw bytes", n)
	}
	p := r.data[r.offset : r.offset+n]
	r.offset += n

	return p, nil
}
