package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/zone"
)

// MapSource is an in-memory Source over already compiled zones.
type MapSource struct {
	version  string
	zones    map[string]zone.Map
	aliases  map[string]string
	platform map[string]string
}

var _ Source = (*MapSource)(nil)

// NewMapSource creates a source serving zones. The maps are copied. A nil platform map
// makes PlatformIDs report ErrPlatformIDsUnsupported.
func NewMapSource(version string, zones map[string]zone.Map, aliases, platform map[string]string) *MapSource {
	s := &MapSource{
		version: version,
		zones:   maps.Clone(zones),
		aliases: maps.Clone(aliases),
	}
	if platform != nil {
		s.platform = maps.Clone(platform)
	}
	if s.zones == nil {
		s.zones = map[string]zone.Map{}
	}

	return s
}

// Version returns the data version given to NewMapSource.
func (s *MapSource) Version() string {
	return s.version
}

// ZoneIDs returns the canonical ids, sorted.
func (s *MapSource) ZoneIDs() []string {
	return slices.Sorted(maps.Keys(s.zones))
}

// LoadZone returns the zone stored under id, or ErrUnknownZone.
func (s *MapSource) LoadZone(id string) (zone.Map, error) {
	m, ok := s.zones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownZone, id)
	}

	return m, nil
}

// Aliases returns a copy of the alias map.
func (s *MapSource) Aliases() map[string]string {
	return maps.Clone(s.aliases)
}

// PlatformIDs returns a copy of the platform id map, or ErrPlatformIDsUnsupported
// when the source was built without one.
func (s *MapSource) PlatformIDs() (map[string]string, error) {
	if s.platform == nil {
		return nil, errs.ErrPlatformIDsUnsupported
	}

	return maps.Clone(s.platform), nil
}

func isUnsupported(err error) bool {
	return errors.Is(err, errs.ErrPlatformIDsUnsupported)
}
