package section

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
)

// FieldHeader is the kind and declared payload length of one record.
type FieldHeader struct {
	Kind   format.FieldKind
	Length int
}

// Size returns the encoded size of the header itself.
func (h FieldHeader) Size() int {
	n := 1
	for v := uint64(h.Length); v >= 0x80; v >>= 7 { //nolint:gosec
		n++
	}

	return n + 1
}

// Bytes encodes the header.
func (h FieldHeader) Bytes() []byte {
	return h.Append(make([]byte, 0, h.Size()))
}

// Append appends the encoded header to dst.
func (h FieldHeader) Append(dst []byte) []byte {
	dst = append(dst, byte(h.Kind))
	return binary.AppendUvarint(dst, uint64(h.Length)) //nolint:gosec
}

// Parse decodes a header from the beginning of data and returns the number of header
// bytes consumed. The declared payload must fit within data.
func (h *FieldHeader) Parse(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("%w: field header needs at least 2 bytes, have %d", errs.ErrTruncated, len(data))
	}

	length, n := binary.Uvarint(data[1:])
	if n == 0 {
		return 0, fmt.Errorf("%w: field length", errs.ErrTruncated)
	}
	if n < 0 || length > MaxFieldLength {
		return 0, fmt.Errorf("%w: field length", errs.ErrMalformedVarint)
	}

	size := 1 + n
	if uint64(len(data)-size) < length {
		return 0, fmt.Errorf("%w: %s field declares %d bytes, have %d",
			errs.ErrTruncated, format.FieldKind(data[0]), length, len(data)-size)
	}

	h.Kind = format.FieldKind(data[0])
	h.Length = int(length) //nolint:gosec

	return size, nil
}

// Field is one framed record as it appears in a stream.
type Field struct {
	FieldHeader

	// Offset is the position of the kind byte relative to the enclosing sequence base.
	Offset int
	// Raw is the whole record: header followed by payload.
	Raw []byte
	// Payload aliases the payload portion of Raw.
	Payload []byte
}

// PayloadOffset returns the position of the first payload byte.
func (f Field) PayloadOffset() int {
	return f.Offset + len(f.Raw) - len(f.Payload)
}

// AppendField appends a complete record to dst.
func AppendField(dst []byte, kind format.FieldKind, payload []byte) []byte {
	h := FieldHeader{Kind: kind, Length: len(payload)}
	dst = h.Append(dst)

	return append(dst, payload...)
}

// Fields returns an iterator over the records in data. Offsets are reported relative
// to base. Iteration stops after the first framing error, which is yielded with the
// offset of the offending header.
func Fields(data []byte, base int) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		pos := 0
		for pos < len(data) {
			var h FieldHeader
			n, err := h.Parse(data[pos:])
			if err != nil {
				yield(Field{Offset: base + pos}, err)
				return
			}

			end := pos + n + h.Length
			f := Field{
				FieldHeader: h,
				Offset:      base + pos,
				Raw:         data[pos:end],
				Payload:     data[pos+n : end],
			}
			if !yield(f, nil) {
				return
			}
			pos = end
		}
	}
}
