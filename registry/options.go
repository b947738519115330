package registry

import (
	"log/slog"

	"github.com/arloliu/zonemap/internal/options"
	"github.com/arloliu/zonemap/zone"
)

type config struct {
	logger    *slog.Logger
	cache     bool
	cacheOpts []zone.CacheOption
}

// Option configures a Registry.
type Option = options.Option[*config]

// WithLogger sets the logger. A nil logger keeps the default, which discards output.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithCacheOptions sets the options of the zone.Cached wrapper placed around loaded
// zones.
func WithCacheOptions(opts ...zone.CacheOption) Option {
	return options.NoError(func(c *config) {
		c.cache = true
		c.cacheOpts = opts
	})
}

// WithoutCache returns loaded zones as the source provides them.
func WithoutCache() Option {
	return options.NoError(func(c *config) {
		c.cache = false
		c.cacheOpts = nil
	})
}
