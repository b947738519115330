package registry

import "github.com/arloliu/zonemap/zone"

// Source supplies zone data to a Registry.
//
// Implementations must be safe for concurrent use. The registry calls LoadZone at
// most once per successfully loaded id, but may call it concurrently for different ids
// or, when two callers race, twice for the same id.
type Source interface {
	// Version returns the data version, for example "2024a".
	Version() string
	// ZoneIDs returns the canonical zone ids.
	ZoneIDs() []string
	// LoadZone returns the map for a canonical id, or an error wrapping
	// errs.ErrUnknownZone.
	LoadZone(id string) (zone.Map, error)
	// Aliases maps non-canonical ids to canonical ones.
	Aliases() map[string]string
	// PlatformIDs maps platform ids (such as Windows zone names) to canonical ids.
	// Sources without such a mapping return errs.ErrPlatformIDsUnsupported.
	PlatformIDs() (map[string]string, error)
}
