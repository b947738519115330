package registry

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/internal/options"
	"github.com/arloliu/zonemap/zone"
)

// Registry provides zones by id.
//
// Note: Registry is safe for concurrent use. Each canonical zone is loaded from the
// source until one load succeeds; concurrent callers racing on the first load may
// each load it, and all but one result is discarded.
type Registry struct {
	source Source
	cfg    *config

	canonical   map[string]struct{}
	aliases     map[string]string
	platform    map[string]string
	platformErr error

	zones sync.Map // canonical id -> zone.Map
}

// New creates a Registry over source. Ids and id maps are read once, here; zones are
// loaded on first request.
//
// Parameters:
//   - source: Zone data provider
//   - opts: WithLogger, WithCacheOptions, WithoutCache
//
// Returns:
//   - *Registry: Registry ready for lookups
//   - error: Option error, or a platform id error other than ErrPlatformIDsUnsupported
func New(source Source, opts ...Option) (*Registry, error) {
	cfg := &config{logger: slog.New(slog.DiscardHandler), cache: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r := &Registry{
		source:    source,
		cfg:       cfg,
		canonical: make(map[string]struct{}),
		aliases:   source.Aliases(),
	}
	for _, id := range source.ZoneIDs() {
		r.canonical[id] = struct{}{}
	}
	if r.aliases == nil {
		r.aliases = map[string]string{}
	}

	r.platform, r.platformErr = source.PlatformIDs()
	if r.platformErr != nil && !isUnsupported(r.platformErr) {
		return nil, r.platformErr
	}

	cfg.logger.Info("zone registry created",
		"version", source.Version(), "zones", len(r.canonical), "aliases", len(r.aliases),
		"platform_ids", len(r.platform))

	return r, nil
}

// Version returns the data version of the source.
func (r *Registry) Version() string {
	return r.source.Version()
}

// CanonicalIDs returns the canonical ids, sorted.
func (r *Registry) CanonicalIDs() []string {
	return slices.Sorted(maps.Keys(r.canonical))
}

// IDs returns every id the source knows, canonical and aliases, sorted. Fixed-offset
// ids are not listed.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.canonical)+len(r.aliases))
	ids = slices.AppendSeq(ids, maps.Keys(r.canonical))
	for alias := range r.aliases {
		if _, ok := r.canonical[alias]; !ok {
			ids = append(ids, alias)
		}
	}
	slices.Sort(ids)

	return ids
}

// Aliases returns the alias to canonical id map. The map must not be modified.
func (r *Registry) Aliases() map[string]string {
	return r.aliases
}

// CanonicalID returns the canonical id for id, following an alias if needed.
func (r *Registry) CanonicalID(id string) (string, bool) {
	if _, ok := r.canonical[id]; ok {
		return id, true
	}
	target, ok := r.aliases[id]
	if !ok {
		return "", false
	}
	if _, ok := r.canonical[target]; !ok {
		return "", false
	}

	return target, true
}

// Zone returns the zone for id.
//
// Fixed-offset ids ("UTC", "UTC+05:30") are answered without the source. Aliases are
// resolved to their canonical id, so an alias and its target return the same map.
//
// Returns:
//   - zone.Map: The zone, wrapped in zone.Cached unless WithoutCache is set
//   - error: ErrUnknownZone, ErrInvalidOffset for a malformed fixed id, or the
//     source's load error
func (r *Registry) Zone(id string) (zone.Map, error) {
	if f, ok, err := ParseFixedID(id); ok {
		if err != nil {
			return nil, err
		}

		return f, nil
	}

	canonical, ok := r.CanonicalID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownZone, id)
	}

	if m, ok := r.zones.Load(canonical); ok {
		return m.(zone.Map), nil //nolint:forcetypeassert
	}

	m, err := r.load(canonical)
	if err != nil {
		return nil, err
	}

	actual, loaded := r.zones.LoadOrStore(canonical, m)
	if !loaded {
		r.cfg.logger.Debug("zone loaded", "id", canonical, "requested", id)
	}

	return actual.(zone.Map), nil //nolint:forcetypeassert
}

func (r *Registry) load(id string) (zone.Map, error) {
	m, err := r.source.LoadZone(id)
	if err != nil {
		r.cfg.logger.Warn("zone load failed", "id", id, "error", err)
		return nil, fmt.Errorf("load zone %q: %w", id, err)
	}
	if !r.cfg.cache {
		return m, nil
	}

	return zone.NewCached(m, r.cfg.cacheOpts...)
}

// MustZone is like Zone but panics on error. It is meant for ids known at compile
// time.
func (r *Registry) MustZone(id string) zone.Map {
	m, err := r.Zone(id)
	if err != nil {
		panic(err)
	}

	return m
}

// PlatformID returns the canonical id for a platform id such as a Windows zone name.
//
// Returns:
//   - string: Canonical id
//   - error: ErrPlatformIDsUnsupported if the source has no platform ids,
//     ErrUnknownZone if the platform id is not mapped
func (r *Registry) PlatformID(pid string) (string, error) {
	if r.platformErr != nil {
		return "", r.platformErr
	}
	id, ok := r.platform[pid]
	if !ok {
		return "", fmt.Errorf("%w: platform id %q", errs.ErrUnknownZone, pid)
	}

	return id, nil
}

// ZoneForPlatformID returns the zone mapped to a platform id.
func (r *Registry) ZoneForPlatformID(pid string) (zone.Map, error) {
	id, err := r.PlatformID(pid)
	if err != nil {
		return nil, err
	}

	return r.Zone(id)
}

// Loaded returns the number of zones loaded so far.
func (r *Registry) Loaded() int {
	n := 0
	r.zones.Range(func(any, any) bool {
		n++
		return true
	})

	return n
}
