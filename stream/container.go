package stream

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	ienc "github.com/arloliu/zonemap/internal/encoding"
	"github.com/arloliu/zonemap/registry"
	"github.com/arloliu/zonemap/section"
	"github.com/arloliu/zonemap/zone"
)

// FieldInfo describes one record of a decoded stream.
type FieldInfo struct {
	Kind   format.FieldKind
	Offset int
	Length int
	// Nested is set for records inside a Compressed envelope; their offsets are
	// positions in the decompressed sequence.
	Nested bool
}

// Container is a decoded zone stream.
//
// A Container is immutable and safe for concurrent use. Every zone is decoded by
// Decode, so lookups never fail on payload content.
type Container struct {
	raw    []byte
	top    []section.Field
	fields []FieldInfo

	strings     []string
	version     string
	hasVersion  bool
	zoneIDs     []string
	zones       map[string]zone.Map
	aliases     []ienc.IDPair
	platform    []ienc.IDPair
	hasPlatform bool
	compression format.CompressionType
	checksummed bool
}

var _ registry.Source = (*Container)(nil)

// Version returns the data version, or "" when the stream has no Version record.
func (c *Container) Version() string {
	return c.version
}

// HasVersion reports whether the stream carries a Version record.
func (c *Container) HasVersion() bool {
	return c.hasVersion
}

// ZoneIDs returns the canonical zone ids in stream order.
func (c *Container) ZoneIDs() []string {
	return slices.Clone(c.zoneIDs)
}

// Zone returns the zone with the given canonical id.
//
// Returns:
//   - zone.Map: A *zone.Fixed or *zone.Precomputed
//   - error: ErrUnknownZone
func (c *Container) Zone(id string) (zone.Map, error) {
	m, ok := c.zones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownZone, id)
	}

	return m, nil
}

// LoadZone implements registry.Source.
func (c *Container) LoadZone(id string) (zone.Map, error) {
	return c.Zone(id)
}

// Aliases returns the alias to canonical id map. When an alias appears more than once
// the last mapping wins.
func (c *Container) Aliases() map[string]string {
	return pairsToMap(c.aliases)
}

// PlatformIDs returns the platform id map, or ErrPlatformIDsUnsupported when the
// stream has no PlatformIdMap record.
func (c *Container) PlatformIDs() (map[string]string, error) {
	if !c.hasPlatform {
		return nil, errs.ErrPlatformIDsUnsupported
	}

	return pairsToMap(c.platform), nil
}

// Compression returns the type of the outermost Compressed envelope, if any.
func (c *Container) Compression() (format.CompressionType, bool) {
	return c.compression, c.compression != 0
}

// Checksummed reports whether the stream ends in a verified Checksum record.
func (c *Container) Checksummed() bool {
	return c.checksummed
}

// Fields returns every decoded record, outer records before the records of the
// envelope they contain.
func (c *Container) Fields() []FieldInfo {
	return slices.Clone(c.fields)
}

// Strings returns a copy of the string pool.
func (c *Container) Strings() []string {
	return slices.Clone(c.strings)
}

// Encode returns the stream the container was decoded from. Unknown records,
// compressed envelopes and checksums are reproduced exactly.
func (c *Container) Encode() []byte {
	out := make([]byte, 0, len(c.raw))
	for _, f := range c.top {
		out = append(out, f.Raw...)
	}

	return out
}

// Source returns the container as a registry.Source.
func (c *Container) Source() registry.Source {
	return c
}

func pairsToMap(pairs []ienc.IDPair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}

	return m
}

// Equal reports whether two containers hold the same zones and id maps, comparing
// zones by their intervals.
func (c *Container) Equal(other *Container) bool {
	if c.version != other.version || !slices.Equal(c.zoneIDs, other.zoneIDs) {
		return false
	}
	if !maps.Equal(c.Aliases(), other.Aliases()) || c.hasPlatform != other.hasPlatform ||
		!maps.Equal(pairsToMap(c.platform), pairsToMap(other.platform)) {
		return false
	}

	for _, id := range c.zoneIDs {
		if !SameZone(c.zones[id], other.zones[id]) {
			return false
		}
	}

	return true
}

// SameZone reports whether two serialisable maps describe the same intervals and
// tail.
func SameZone(a, b zone.Map) bool {
	switch x := a.(type) {
	case *zone.Fixed:
		y, ok := b.(*zone.Fixed)
		return ok && x.Interval().Equal(y.Interval())
	case *zone.Precomputed:
		y, ok := b.(*zone.Precomputed)
		if !ok || !slices.EqualFunc(x.Intervals(), y.Intervals(), zone.Interval.Equal) {
			return false
		}
		xt, yt := x.Tail(), y.Tail()
		if xt == nil || yt == nil {
			return xt == nil && yt == nil
		}
		xs, xd := xt.Recurrences()
		ys, yd := yt.Recurrences()

		return xt.Standard() == yt.Standard() && xs == ys && xd == yd
	}

	return false
}
