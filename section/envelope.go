package section

import (
	"fmt"

	"github.com/arloliu/zonemap/endian"
	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/internal/hash"
)

// AppendChecksum appends a Checksum record covering every byte already in dst.
func AppendChecksum(dst []byte) []byte {
	sum := hash.Checksum(dst)
	h := FieldHeader{Kind: format.FieldChecksum, Length: ChecksumPayloadSize}
	dst = h.Append(dst)

	return endian.StreamEngine().AppendUint64(dst, sum)
}

// VerifyChecksum checks a Checksum payload against the bytes that preceded its record.
func VerifyChecksum(payload []byte, preceding []byte) error {
	if len(payload) != ChecksumPayloadSize {
		return fmt.Errorf("%w: checksum payload is %d bytes, want %d",
			errs.ErrMalformedField, len(payload), ChecksumPayloadSize)
	}

	want := endian.StreamEngine().Uint64(payload)
	if !hash.Verify(preceding, want) {
		return fmt.Errorf("%w: stored 0x%016x, computed 0x%016x",
			errs.ErrChecksumMismatch, want, hash.Checksum(preceding))
	}

	return nil
}

// AppendCompressed appends a Compressed record holding data compressed with ctype.
func AppendCompressed(dst []byte, ctype format.CompressionType, compressed []byte) []byte {
	h := FieldHeader{Kind: format.FieldCompressed, Length: CompressedTypeSize + len(compressed)}
	dst = h.Append(dst)
	dst = append(dst, byte(ctype))

	return append(dst, compressed...)
}

// ParseCompressed splits a Compressed payload into its compression type and the
// compressed bytes.
func ParseCompressed(payload []byte) (format.CompressionType, []byte, error) {
	if len(payload) < CompressedTypeSize {
		return 0, nil, fmt.Errorf("%w: compressed payload has no type byte", errs.ErrTruncated)
	}

	return format.CompressionType(payload[0]), payload[CompressedTypeSize:], nil
}
