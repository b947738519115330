package collision

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
)

// Tracker tracks the ids written to one stream and detects clashes between canonical
// zone ids and aliases.
type Tracker struct {
	zones   map[string]struct{}
	aliases map[string]string
	order   []string
}

// NewTracker creates a new id tracker.
func NewTracker() *Tracker {
	return &Tracker{
		zones:   make(map[string]struct{}),
		aliases: make(map[string]string),
	}
}

// TrackZone records a canonical zone id.
//
// Returns:
//   - error: ErrDuplicateZone if id was tracked before, ErrIDConflict if id is
//     already an alias
func (t *Tracker) TrackZone(id string) error {
	if _, ok := t.zones[id]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateZone, id)
	}
	if target, ok := t.aliases[id]; ok {
		return fmt.Errorf("%w: %q is an alias of %q", errs.ErrIDConflict, id, target)
	}

	t.zones[id] = struct{}{}
	t.order = append(t.order, id)

	return nil
}

// TrackAlias records an alias. Adding the same alias again with the same target is
// a no-op and reports false.
//
// Returns:
//   - bool: Whether the alias is new
//   - error: ErrIDConflict if alias is a canonical id, maps to itself, or was tracked
//     with another target
func (t *Tracker) TrackAlias(alias, target string) (bool, error) {
	if alias == target {
		return false, fmt.Errorf("%w: %q maps to itself", errs.ErrIDConflict, alias)
	}
	if _, ok := t.zones[alias]; ok {
		return false, fmt.Errorf("%w: %q is a canonical zone id", errs.ErrIDConflict, alias)
	}
	if prev, ok := t.aliases[alias]; ok {
		if prev != target {
			return false, fmt.Errorf("%w: %q maps to both %q and %q", errs.ErrIDConflict, alias, prev, target)
		}

		return false, nil
	}

	t.aliases[alias] = target

	return true, nil
}

// ZoneIDs returns the canonical ids in the order they were tracked.
func (t *Tracker) ZoneIDs() []string {
	return t.order
}

// Count returns the number of tracked zones.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked ids, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.zones)
	clear(t.aliases)
	t.order = t.order[:0]
}
