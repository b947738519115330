package zone

import (
	"fmt"
	"sync/atomic"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/internal/options"
)

// Cache defaults.
const (
	DefaultCacheSlots  = 8
	DefaultBucketShift = 23 // buckets of 2^23 seconds, about 97 days
	bucketCount        = 512
)

// Cached wraps a map with a bounded, lock-free cache of recently returned intervals.
//
// Readers never block: the cache state is swapped atomically and a lost update only
// costs a recomputation on a later query. A cold and a warm cache return identical
// results for the same query.
type Cached struct {
	inner Map
	cache intervalCache
}

var _ Map = (*Cached)(nil)

type intervalCache interface {
	get(inner Map, t Instant) Interval
}

type cacheConfig struct {
	slots int
	shift int
}

// CacheOption configures NewCached.
type CacheOption = options.Option[*cacheConfig]

// WithCacheSlots sets the number of most recently used intervals kept by the default
// LRU strategy.
func WithCacheSlots(n int) CacheOption {
	return options.New(func(c *cacheConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: cache slots must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.slots = n

		return nil
	})
}

// WithBucketCache switches to a hash cache keyed by instant >> shift. Each bucket
// remembers every interval overlapping its range of 2^shift seconds.
func WithBucketCache(shift int) CacheOption {
	return options.New(func(c *cacheConfig) error {
		if shift < 1 || shift > 40 {
			return fmt.Errorf("%w: bucket shift must be in [1, 40], got %d", errs.ErrInvalidOption, shift)
		}
		c.shift = shift

		return nil
	})
}

// NewCached wraps m in a cache. Fixed maps are returned unchanged and an already cached
// map is not wrapped twice.
func NewCached(m Map, opts ...CacheOption) (Map, error) {
	cfg := &cacheConfig{slots: DefaultCacheSlots}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	switch m := m.(type) {
	case *Fixed, *Cached:
		return m, nil
	}

	c := &Cached{inner: m}
	if cfg.shift > 0 {
		c.cache = &bucketCache{shift: uint(cfg.shift)} //nolint:gosec
	} else {
		c.cache = newLRUCache(cfg.slots)
	}

	return c, nil
}

// Inner returns the wrapped map.
func (c *Cached) Inner() Map {
	return c.inner
}

// IntervalAt answers from the cache, asking the wrapped map on a miss.
func (c *Cached) IntervalAt(t Instant) Interval {
	return c.cache.get(c.inner, t)
}

// IntervalAtLocal implements Map. Local lookups go through the cached IntervalAt.
func (c *Cached) IntervalAtLocal(l LocalInstant) (Interval, bool) {
	return intervalAtLocal(c, l)
}

func (*Cached) sealed() {}

// lruCache keeps the most recently returned intervals, most recent first, in an
// immutable snapshot that is replaced with compare-and-swap.
type lruCache struct {
	slots int
	snap  atomic.Pointer[[]Interval]
}

func newLRUCache(slots int) *lruCache {
	c := &lruCache{slots: slots}
	empty := make([]Interval, 0)
	c.snap.Store(&empty)

	return c
}

func (c *lruCache) get(inner Map, t Instant) Interval {
	cur := c.snap.Load()
	entries := *cur

	for i, iv := range entries {
		if !iv.Contains(t) {
			continue
		}
		if i > 0 {
			promoted := make([]Interval, len(entries))
			promoted[0] = iv
			copy(promoted[1:], entries[:i])
			copy(promoted[i+1:], entries[i+1:])
			c.snap.CompareAndSwap(cur, &promoted)
		}

		return iv
	}

	iv := inner.IntervalAt(t)

	keep := min(len(entries), c.slots-1)
	next := make([]Interval, keep+1)
	next[0] = iv
	copy(next[1:], entries[:keep])
	c.snap.CompareAndSwap(cur, &next)

	return iv
}

// bucketCache is a fixed array of atomic bucket nodes. A node covers one period of the
// instant axis and holds every interval overlapping that period.
type bucketCache struct {
	shift   uint
	buckets [bucketCount]atomic.Pointer[bucketNode]
}

type bucketNode struct {
	period    int64
	intervals []Interval
}

func (c *bucketCache) get(inner Map, t Instant) Interval {
	period := int64(t) >> c.shift
	slot := &c.buckets[uint64(period)%bucketCount] //nolint:gosec

	node := slot.Load()
	if node == nil || node.period != period {
		node = c.build(inner, period)
		slot.Store(node)
	}

	for _, iv := range node.intervals {
		if iv.Contains(t) {
			return iv
		}
	}

	// EndOfTime is the only instant no half-open interval contains.
	return node.intervals[len(node.intervals)-1]
}

func (c *bucketCache) build(inner Map, period int64) *bucketNode {
	start := Instant(period << c.shift)
	last := Instant(addSaturating(int64(start), int64(1)<<c.shift-1))

	node := &bucketNode{period: period}
	iv := inner.IntervalAt(start)
	node.intervals = append(node.intervals, iv)
	for iv.HasEnd() && iv.End <= last {
		iv = inner.IntervalAt(iv.End)
		node.intervals = append(node.intervals, iv)
	}

	return node
}
