package section

import "math"

const (
	MaxFieldLength      = math.MaxInt32 // largest payload a single field may declare
	ChecksumPayloadSize = 8             // xxHash64, little-endian
	CompressedTypeSize  = 1             // compression type byte leading a Compressed payload
	MaxHeaderSize       = 1 + 5         // kind byte + uvarint of MaxFieldLength
)
