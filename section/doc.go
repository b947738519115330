// Package section defines the record framing of the zone stream format.
//
// A zone stream is a flat sequence of records:
//
//	┌───────────┬──────────────────┬─────────────────────────┐
//	│ kind (1B) │ length (uvarint) │ payload (length bytes)  │
//	└───────────┴──────────────────┴─────────────────────────┘
//
// The kind byte is one of the format.FieldKind values. Because every record declares
// its own length, a reader can step over kinds it does not understand, which keeps
// older readers working against streams produced by newer writers.
//
// Two record kinds have a payload layout defined here rather than in the stream
// package:
//
//   - Checksum: 8 bytes, the little-endian xxHash64 of every stream byte preceding the
//     record header
//   - Compressed: one format.CompressionType byte followed by the compressed bytes of a
//     nested record sequence
//
// The package works on plain byte slices and has no knowledge of zones or string pools.
package section
