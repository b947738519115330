// Package zonemap answers "what offset and abbreviation apply here, at this instant?"
// and "which instant does this wall-clock reading denote?" for time zones compiled
// from tz-style rule sets.
//
// # Core Features
//
//   - Compiles rule sets into zone interval maps, with a computed tail for the
//     rules that repeat forever
//   - Resolves local date/times with explicit handling of skipped and repeated readings
//   - Compact binary stream with string pooling, first-difference transitions,
//     optional compression (None, Zstd, S2, LZ4) and xxHash64 checksums
//   - Registry with alias, fixed-offset and platform id lookup
//   - Lock-free interval caches
//
// # Basic Usage
//
// Compiling a rule-set document and writing a stream:
//
//	compiled, _ := zonemap.CompileYAML(data)
//	stream, _ := zonemap.EncodeCompiled(compiled)
//
// Loading a stream and resolving a local time:
//
//	reg, _ := zonemap.RegistryFromStream(stream)
//	la, _ := reg.Zone("America/Los_Angeles")
//	res, err := zonemap.Resolve(la, zone.LocalDateTime{Year: 2024, Month: 3, Day: 10, Hour: 2, Minute: 30})
//	// res.Instant is 2024-03-10T10:30:00Z: 02:30 never happened and was shifted forward.
//
// # Package Structure
//
// This package wraps the most common paths through the subpackages. Use them directly
// for finer control:
//
//   - zone: scalars, intervals and the zone map family
//   - compiler: rule sets to zone maps
//   - resolve: local date/time resolution policies
//   - stream: binary stream codec
//   - registry: zone lookup by id
//   - ruleset: YAML and CBOR rule-set documents
package zonemap

import (
	"maps"
	"slices"
	"time"

	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/registry"
	"github.com/arloliu/zonemap/resolve"
	"github.com/arloliu/zonemap/ruleset"
	"github.com/arloliu/zonemap/stream"
	"github.com/arloliu/zonemap/zone"
)

var defaultStreamOptions = []stream.Option{
	stream.WithCompression(format.CompressionZstd),
	stream.WithChecksum(true),
}

// CompileYAML parses a YAML rule-set document and compiles every zone in it.
//
// Like ruleset.Document.Compile, a zone that fails to compile is reported in the
// error while the others are still returned.
func CompileYAML(data []byte) (*ruleset.Compiled, error) {
	doc, err := ruleset.ParseYAML(data)
	if err != nil {
		return nil, err
	}

	return doc.Compile()
}

// CompileCBOR parses a CBOR rule-set document and compiles every zone in it.
func CompileCBOR(data []byte) (*ruleset.Compiled, error) {
	doc, err := ruleset.ParseCBOR(data)
	if err != nil {
		return nil, err
	}

	return doc.Compile()
}

// NewStreamWriter creates a stream writer with custom options.
//
// Available options:
//   - stream.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - stream.WithChecksum(true|false)
//   - stream.WithLogger(logger)
func NewStreamWriter(opts ...stream.Option) (*stream.Writer, error) {
	return stream.NewWriter(opts...)
}

// NewDefaultStreamWriter creates a stream writer with recommended settings:
// Zstd compression and a trailing checksum.
func NewDefaultStreamWriter() (*stream.Writer, error) {
	return stream.NewWriter(defaultStreamOptions...)
}

// EncodeCompiled writes every compiled zone, ordered by id, plus the aliases and
// platform ids into a stream.
//
// Parameters:
//   - c: Compiled document
//   - opts: Stream options; the defaults of NewDefaultStreamWriter apply when empty
//
// Returns:
//   - []byte: Encoded stream
//   - error: Writer or encoding error
func EncodeCompiled(c *ruleset.Compiled, opts ...stream.Option) ([]byte, error) {
	if len(opts) == 0 {
		opts = defaultStreamOptions
	}

	w, err := stream.NewWriter(opts...)
	if err != nil {
		return nil, err
	}

	if c.Version != "" {
		w.SetVersion(c.Version)
	}
	for _, id := range slices.Sorted(maps.Keys(c.Zones)) {
		if err := w.AddZone(id, c.Zones[id]); err != nil {
			return nil, err
		}
	}
	if err := w.AddAliases(c.Aliases); err != nil {
		return nil, err
	}
	if c.PlatformIDs != nil {
		w.AddPlatformIDs(c.PlatformIDs)
	}

	return w.Bytes()
}

// DecodeStream decodes a stream into a container.
func DecodeStream(data []byte, opts ...stream.Option) (*stream.Container, error) {
	return stream.Decode(data, opts...)
}

// RegistryFromStream decodes a stream and builds a registry over it. A stream with
// any malformed record yields no registry.
func RegistryFromStream(data []byte, opts ...registry.Option) (*registry.Registry, error) {
	c, err := stream.Decode(data)
	if err != nil {
		return nil, err
	}

	return registry.New(c.Source(), opts...)
}

// Resolve maps a local date/time onto m leniently: a repeated reading picks the earlier
// instant and a skipped reading is shifted forward by the length of the gap.
func Resolve(m zone.Map, ldt zone.LocalDateTime) (resolve.Result, error) {
	return resolve.Lenient.ResolveDateTime(m, ldt)
}

// ResolveStrict maps a local date/time onto m and fails with a *resolve.Error when the
// reading is repeated or skipped.
func ResolveStrict(m zone.Map, ldt zone.LocalDateTime) (resolve.Result, error) {
	return resolve.Strict.ResolveDateTime(m, ldt)
}

// At returns the interval of m in force at t.
func At(m zone.Map, t time.Time) zone.Interval {
	return m.IntervalAt(zone.InstantOf(t))
}

// In converts t to the wall-clock time of m, as a time.Time carrying a fixed zone
// named after the interval.
func In(m zone.Map, t time.Time) time.Time {
	iv := At(m, t)
	return t.In(time.FixedZone(iv.Name, iv.Wall.Seconds()))
}
