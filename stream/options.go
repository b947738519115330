package stream

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/zonemap/compress"
	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/internal/options"
)

type config struct {
	// compression is the envelope type; zero writes the records unwrapped.
	compression format.CompressionType
	checksum    bool
	logger      *slog.Logger
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures a Writer or Decode.
type Option = options.Option[*config]

// WithCompression wraps every record in one Compressed envelope using ctype.
// CompressionNone still writes the envelope, with the records stored verbatim.
// Decode ignores this option.
func WithCompression(ctype format.CompressionType) Option {
	return options.New(func(c *config) error {
		if !compress.IsSupported(ctype) {
			return fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnsupportedCompression, ctype, uint8(ctype))
		}
		c.compression = ctype

		return nil
	})
}

// WithChecksum appends a Checksum record covering the whole stream.
// Decode ignores this option: checksums present in a stream are always verified.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.checksum = enabled
	})
}

// WithLogger sets the logger. A nil logger keeps the default, which discards output.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
