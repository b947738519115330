// Package endian provides the byte order engine used for the fixed-width parts of the
// zone stream format.
//
// Almost everything in a zone stream is varint encoded and therefore byte order free.
// The only fixed-width value is the 8-byte checksum record, which is always written
// little-endian regardless of the host.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// StreamEngine returns the engine used for fixed-width stream values.
func StreamEngine() EndianEngine {
	return binary.LittleEndian
}
