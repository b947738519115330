package compress

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
)

// Compressor compresses the nested field sequence of a compressed stream envelope.
//
// Zone streams are small (a full tzdb set is a few hundred KiB) and written once,
// so implementations favour ratio and determinism: the same input must always
// produce the same output, otherwise re-encoding a decoded container would not be
// byte-identical.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes or an error if data is corrupted or
	// was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2 or LZ4)
//   - target: Description of the payload, used in error messages
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression %s (0x%02x)",
			errs.ErrUnsupportedCompression, target, compressionType, uint8(compressionType))
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnsupportedCompression, compressionType, uint8(compressionType))
}

// IsSupported reports whether compressionType has a built-in codec.
func IsSupported(compressionType format.CompressionType) bool {
	_, ok := builtinCodecs[compressionType]
	return ok
}
