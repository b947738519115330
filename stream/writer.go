package stream

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/zonemap/compress"
	"github.com/arloliu/zonemap/encoding"
	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/internal/collision"
	ienc "github.com/arloliu/zonemap/internal/encoding"
	"github.com/arloliu/zonemap/internal/pool"
	"github.com/arloliu/zonemap/section"
	"github.com/arloliu/zonemap/zone"
)

type pendingZone struct {
	id string
	m  zone.Map
}

// Writer builds a zone stream.
//
// Records are written in a fixed order: string pool, version, zones in the order they
// were added, alias map, platform id map. Writing the same content in the same order
// always produces the same bytes.
//
// Note: Writer is NOT thread-safe.
type Writer struct {
	cfg *config

	pool       *ienc.StringPool
	version    string
	hasVersion bool
	zones      []pendingZone
	ids        *collision.Tracker
	aliases    []ienc.IDPair
	platform   []ienc.IDPair
}

// NewWriter creates a Writer.
//
// Parameters:
//   - opts: WithCompression, WithChecksum and WithLogger
//
// Returns:
//   - *Writer: Empty writer
//   - error: Option validation error
func NewWriter(opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Writer{
		cfg:  cfg,
		pool: ienc.NewStringPool(),
		ids:  collision.NewTracker(),
	}, nil
}

// SetVersion sets the data version written in the Version record.
func (w *Writer) SetVersion(version string) {
	w.version = version
	w.hasVersion = true
}

// AddZone adds a compiled zone under id.
//
// Maps other than Fixed and Precomputed are flattened first. Cached maps are written
// as the map they wrap.
//
// Returns:
//   - error: ErrDuplicateZone if id was added before, ErrIDConflict if id is an alias,
//     ErrUnserializableMap if m cannot be flattened, ErrStringTooLong for an oversized
//     id or name
func (w *Writer) AddZone(id string, m zone.Map) error {
	if len(id) > encoding.MaxStringLength {
		return fmt.Errorf("%w: zone id of %d bytes", errs.ErrStringTooLong, len(id))
	}

	sm, err := serializable(m)
	if err != nil {
		return fmt.Errorf("zone %q: %w", id, err)
	}
	if err := w.ids.TrackZone(id); err != nil {
		return err
	}

	w.zones = append(w.zones, pendingZone{id: id, m: sm})
	poolZoneStrings(w.pool, id, sm)
	w.cfg.logger.Debug("zone added", "id", id, "kind", fmt.Sprintf("%T", sm))

	return nil
}

// AddAlias maps a non-canonical id to a canonical one. Repeating an alias with the
// same target is ignored.
//
// Returns:
//   - error: ErrIDConflict if alias is a zone id or already maps elsewhere
func (w *Writer) AddAlias(alias, canonical string) error {
	added, err := w.ids.TrackAlias(alias, canonical)
	if err != nil || !added {
		return err
	}

	w.aliases = append(w.aliases, ienc.IDPair{Key: alias, Value: canonical})
	w.pool.Add(alias)
	w.pool.Add(canonical)

	return nil
}

// AddAliases adds every alias in m, ordered by alias. It stops at the first conflict.
func (w *Writer) AddAliases(m map[string]string) error {
	for _, alias := range slices.Sorted(maps.Keys(m)) {
		if err := w.AddAlias(alias, m[alias]); err != nil {
			return err
		}
	}

	return nil
}

// AddPlatformIDs adds platform id mappings, ordered by platform id. Calling it, even
// with an empty map, makes the stream carry a PlatformIdMap record.
func (w *Writer) AddPlatformIDs(m map[string]string) {
	if w.platform == nil {
		w.platform = make([]ienc.IDPair, 0, len(m))
	}
	for _, pid := range slices.Sorted(maps.Keys(m)) {
		w.platform = append(w.platform, ienc.IDPair{Key: pid, Value: m[pid]})
		w.pool.Add(pid)
		w.pool.Add(m[pid])
	}
}

// ZoneCount returns the number of zones added.
func (w *Writer) ZoneCount() int {
	return w.ids.Count()
}

// Bytes encodes the stream.
//
// Returns:
//   - []byte: Encoded stream, owned by the caller
//   - error: Encoding or compression error
func (w *Writer) Bytes() ([]byte, error) {
	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	records, err := w.appendRecords(buf.B[:0])
	if err != nil {
		return nil, err
	}
	buf.B = records

	if w.cfg.compression != 0 {
		codec, err := compress.GetCodec(w.cfg.compression)
		if err != nil {
			return nil, err
		}
		compressed, err := codec.Compress(buf.B)
		if err != nil {
			return nil, fmt.Errorf("compress stream: %w", err)
		}
		w.cfg.logger.Debug("stream compressed",
			"compression", w.cfg.compression.String(), "raw", len(buf.B), "compressed", len(compressed))
		// compressed may share memory with buf.B.
		envelope := section.AppendCompressed(make([]byte, 0, section.MaxHeaderSize+1+len(compressed)), w.cfg.compression, compressed)
		buf.B = append(buf.B[:0], envelope...)
	}

	if w.cfg.checksum {
		buf.B = section.AppendChecksum(buf.B)
	}

	return bytes.Clone(buf.B), nil
}

func (w *Writer) appendRecords(dst []byte) ([]byte, error) {
	fw := encoding.NewWriter()
	defer fw.Finish()

	if err := ienc.EncodeStringPool(fw, w.pool.Strings()); err != nil {
		return nil, err
	}
	dst = section.AppendField(dst, format.FieldStringPool, fw.Bytes())

	if w.hasVersion {
		dst = section.AppendField(dst, format.FieldVersion, []byte(w.version))
	}

	for _, z := range w.zones {
		fw.Reset()
		if err := encodeZone(fw, w.pool, z.id, z.m); err != nil {
			return nil, fmt.Errorf("zone %q: %w", z.id, err)
		}
		dst = section.AppendField(dst, format.FieldTimeZone, fw.Bytes())
	}

	if len(w.aliases) > 0 {
		fw.Reset()
		if err := ienc.EncodeIDMap(fw, w.pool, w.aliases); err != nil {
			return nil, err
		}
		dst = section.AppendField(dst, format.FieldTzdbIDMap, fw.Bytes())
	}

	if w.platform != nil {
		fw.Reset()
		if err := ienc.EncodeIDMap(fw, w.pool, w.platform); err != nil {
			return nil, err
		}
		dst = section.AppendField(dst, format.FieldPlatformIDMap, fw.Bytes())
	}

	return dst, nil
}
