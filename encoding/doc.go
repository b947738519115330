// Package encoding provides the primitive codecs of the zone stream format.
//
// Everything in a zone stream is built from three primitives:
//
//   - Unsigned varints (binary.PutUvarint layout) for counts, lengths and pool indices
//   - Zigzag varints for signed values such as offsets and years, so that small
//     negative numbers stay small on the wire
//   - Length-prefixed UTF-8 strings (uvarint length followed by the bytes)
//
// Transition instants are stored as first differences: the first instant as a zigzag
// varint, every following one as the unsigned gap to its predecessor. Transitions are
// strictly increasing and usually months apart, so most gaps fit in three or four bytes
// instead of eight.
//
// # Writing
//
//	w := encoding.NewWriter()
//	defer w.Finish()
//	w.WriteUvarint(3)
//	w.WriteVarint(-28800)
//	w.WriteString("PST")
//	payload := w.Bytes()
//
// # Reading
//
//	r := encoding.NewReader(payload)
//	n, err := r.ReadUvarint()
//	off, err := r.ReadVarint()
//	name, err := r.ReadString()
//
// Reader errors wrap errs.ErrTruncated or errs.ErrMalformedVarint and name the byte
// offset at which decoding failed.
package encoding
