// Package stream reads and writes the binary zone stream.
//
// A stream is a flat sequence of records, each framed as
//
//	kind (1 byte) | payload length (uvarint) | payload
//
// Record kinds:
//
//	StringPool    uvarint count, then length-prefixed strings
//	TimeZone      one compiled zone, strings referenced by pool index
//	Version       raw data version string
//	TzdbIdMap     alias id to canonical id pairs
//	PlatformIdMap platform id to canonical id pairs
//	Checksum      little-endian xxHash64 of every preceding byte of the sequence
//	Compressed    compression type byte followed by a compressed nested sequence
//
// Decoders skip kinds they do not know by their declared length, so newer writers
// can add records without breaking older readers. The string pool must precede every
// record that references it.
//
// # Writing
//
//	w, err := stream.NewWriter(stream.WithCompression(format.CompressionZstd), stream.WithChecksum(true))
//	w.SetVersion("2024a")
//	err = w.AddZone("America/Los_Angeles", m)
//	err = w.AddAliases(map[string]string{"US/Pacific": "America/Los_Angeles"})
//	data, err := w.Bytes()
//
// # Reading
//
// Decode parses every record, zone payloads included, and fails as a whole on the
// first malformed one. The returned Container re-encodes to exactly the bytes it was
// decoded from and serves as a registry.Source.
package stream
