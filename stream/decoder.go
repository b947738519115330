package stream

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/zonemap/compress"
	"github.com/arloliu/zonemap/encoding"
	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	ienc "github.com/arloliu/zonemap/internal/encoding"
	"github.com/arloliu/zonemap/section"
	"github.com/arloliu/zonemap/zone"
)

// maxNesting bounds how deep Compressed envelopes may be nested.
const maxNesting = 4

// Decode parses a zone stream.
//
// Every record, zone payloads included, is decoded before Decode returns, so a
// malformed record anywhere in the stream fails the whole stream. Checksum records are
// verified against the bytes preceding them in their sequence.
//
// Parameters:
//   - data: Encoded stream. It is copied, so the caller may reuse it.
//   - opts: WithLogger; writer options are accepted and ignored
//
// Returns:
//   - *Container: Decoded container
//   - error: *DecodeError describing the first failure; no container is returned
func Decode(data []byte, opts ...Option) (*Container, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	c := &Container{
		raw:   bytes.Clone(data),
		zones: make(map[string]zone.Map),
	}
	d := &decoder{c: c, logger: cfg.logger}
	if err := d.sequence(c.raw, 0); err != nil {
		return nil, err
	}

	cfg.logger.Debug("stream decoded",
		"bytes", len(data), "zones", len(c.zoneIDs), "aliases", len(c.aliases), "version", c.version)

	return c, nil
}

type decoder struct {
	c       *Container
	logger  *slog.Logger
	hasPool bool
}

func (d *decoder) sequence(data []byte, depth int) error {
	nested := depth > 0
	for f, err := range section.Fields(data, 0) {
		if err != nil {
			kind := format.FieldKind(0xff)
			if f.Offset < len(data) {
				kind = format.FieldKind(data[f.Offset])
			}

			return &DecodeError{Offset: f.Offset, Kind: kind, Nested: nested, Err: err}
		}

		if !nested {
			d.c.top = append(d.c.top, f)
		}
		d.c.fields = append(d.c.fields, FieldInfo{Kind: f.Kind, Offset: f.Offset, Length: f.Length, Nested: nested})

		if err := d.field(data, f, depth); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return err
			}

			return &DecodeError{Offset: f.Offset, Kind: f.Kind, Nested: nested, Err: err}
		}
	}

	return nil
}

func (d *decoder) field(data []byte, f section.Field, depth int) error {
	r := encoding.NewReaderAt(f.Payload, f.PayloadOffset())

	switch f.Kind {
	case format.FieldStringPool:
		if d.hasPool {
			return errs.ErrDuplicatePool
		}
		strings, err := ienc.DecodeStringPool(r)
		if err != nil {
			return err
		}
		if err := requireDone(r); err != nil {
			return err
		}
		d.c.strings = strings
		d.hasPool = true

	case format.FieldTimeZone:
		if !d.hasPool {
			return errs.ErrPoolMissing
		}
		id, err := readZoneID(r, d.c.strings)
		if err != nil {
			return err
		}
		if _, dup := d.c.zones[id]; dup {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateZone, id)
		}
		m, err := decodeZoneBody(r, d.c.strings)
		if err != nil {
			return fmt.Errorf("zone %q: %w", id, err)
		}
		d.c.zones[id] = m
		d.c.zoneIDs = append(d.c.zoneIDs, id)

	case format.FieldVersion:
		d.c.version = string(f.Payload)
		d.c.hasVersion = true

	case format.FieldTzdbIDMap:
		pairs, err := d.idMap(r)
		if err != nil {
			return err
		}
		d.c.aliases = append(d.c.aliases, pairs...)

	case format.FieldPlatformIDMap:
		pairs, err := d.idMap(r)
		if err != nil {
			return err
		}
		d.c.platform = append(d.c.platform, pairs...)
		d.c.hasPlatform = true

	case format.FieldChecksum:
		if err := section.VerifyChecksum(f.Payload, data[:f.Offset]); err != nil {
			return err
		}
		if depth == 0 {
			d.c.checksummed = true
		}

	case format.FieldCompressed:
		return d.compressed(f, depth)

	default:
		d.logger.Debug("skipping unknown field",
			"kind", uint8(f.Kind), "offset", f.Offset, "length", f.Length, "nested", depth > 0)
	}

	return nil
}

func (d *decoder) idMap(r *encoding.Reader) ([]ienc.IDPair, error) {
	if !d.hasPool {
		return nil, errs.ErrPoolMissing
	}
	pairs, err := ienc.DecodeIDMap(r, d.c.strings)
	if err != nil {
		return nil, err
	}

	return pairs, requireDone(r)
}

func (d *decoder) compressed(f section.Field, depth int) error {
	if depth >= maxNesting {
		return fmt.Errorf("%w: compressed envelopes nested deeper than %d", errs.ErrMalformedField, maxNesting)
	}

	ctype, body, err := section.ParseCompressed(f.Payload)
	if err != nil {
		return err
	}
	codec, err := compress.GetCodec(ctype)
	if err != nil {
		return err
	}
	plain, err := codec.Decompress(body)
	if err != nil {
		return fmt.Errorf("%s envelope: %w", ctype, err)
	}
	if depth == 0 && d.c.compression == 0 {
		d.c.compression = ctype
	}
	d.logger.Debug("decoding compressed envelope",
		"compression", ctype.String(), "compressed", len(body), "raw", len(plain))

	return d.sequence(plain, depth+1)
}

func requireDone(r *encoding.Reader) error {
	if !r.Done() {
		return fmt.Errorf("%w: %d trailing bytes at offset %d", errs.ErrMalformedField, r.Remaining(), r.Offset())
	}

	return nil
}
