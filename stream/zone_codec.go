package stream

import (
	"fmt"
	"math"

	"github.com/arloliu/zonemap/encoding"
	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	ienc "github.com/arloliu/zonemap/internal/encoding"
	"github.com/arloliu/zonemap/zone"
)

// serializable returns the form of m a TimeZone record can hold: a *zone.Fixed or a
// *zone.Precomputed.
func serializable(m zone.Map) (zone.Map, error) {
	if c, ok := m.(*zone.Cached); ok {
		m = c.Inner()
	}
	if f, ok := m.(*zone.Fixed); ok {
		return f, nil
	}

	p, err := zone.Flatten(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUnserializableMap, err)
	}

	return p, nil
}

// poolZoneStrings adds every string a zone record references.
func poolZoneStrings(pool *ienc.StringPool, id string, m zone.Map) {
	pool.Add(id)
	switch v := m.(type) {
	case *zone.Fixed:
		pool.Add(v.Name())
	case *zone.Precomputed:
		for _, iv := range v.Intervals() {
			pool.Add(iv.Name)
		}
		if tail := v.Tail(); tail != nil {
			std, dst := tail.Recurrences()
			pool.Add(std.Name)
			pool.Add(dst.Name)
		}
	}
}

// encodeZone writes a TimeZone payload.
//
// Precomputed layout: interval count, then per interval pooled name, wall and
// standard offsets, then the tail flag, then the start of every interval but the
// first followed by the tail start as first differences, then the tail.
func encodeZone(w *encoding.Writer, pool *ienc.StringPool, id string, m zone.Map) error {
	if err := ienc.WritePooled(w, pool, id); err != nil {
		return err
	}

	switch v := m.(type) {
	case *zone.Fixed:
		_ = w.WriteByte(byte(format.MapFixed))
		iv := v.Interval()
		if err := ienc.WritePooled(w, pool, iv.Name); err != nil {
			return err
		}
		w.WriteVarint(int64(iv.Wall))
		w.WriteVarint(int64(iv.Standard))

		return nil
	case *zone.Precomputed:
		_ = w.WriteByte(byte(format.MapPrecomputed))
		return encodePrecomputed(w, pool, v)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnserializableMap, m)
	}
}

func encodePrecomputed(w *encoding.Writer, pool *ienc.StringPool, p *zone.Precomputed) error {
	intervals := p.Intervals()
	w.WriteUvarint(uint64(len(intervals)))
	for _, iv := range intervals {
		if err := ienc.WritePooled(w, pool, iv.Name); err != nil {
			return err
		}
		w.WriteVarint(int64(iv.Wall))
		w.WriteVarint(int64(iv.Standard))
	}

	tail := p.Tail()
	w.WriteBool(tail != nil)

	enc := encoding.NewTransitionDeltaEncoder(w)
	for _, iv := range intervals[1:] {
		if err := enc.Write(int64(iv.Start)); err != nil {
			return err
		}
	}
	if tail == nil {
		return nil
	}
	if err := enc.Write(int64(p.TailStart())); err != nil {
		return err
	}

	w.WriteVarint(int64(tail.Standard()))
	std, dst := tail.Recurrences()
	for _, r := range []zone.Recurrence{std, dst} {
		if err := encodeRecurrence(w, pool, r); err != nil {
			return err
		}
	}

	return nil
}

func encodeRecurrence(w *encoding.Writer, pool *ienc.StringPool, r zone.Recurrence) error {
	if err := ienc.WritePooled(w, pool, r.Name); err != nil {
		return err
	}
	y := r.YearOffset
	w.WriteVarint(int64(r.Savings))
	_ = w.WriteByte(byte(y.Mode))
	_ = w.WriteByte(byte(y.Month)) //nolint:gosec
	w.WriteVarint(int64(y.DayOfMonth))
	_ = w.WriteByte(byte(y.DayOfWeek)) //nolint:gosec
	w.WriteBool(y.AdvanceDayOfWeek)
	w.WriteUvarint(uint64(y.TimeOfDay)) //nolint:gosec
	w.WriteBool(y.AddDay)
	w.WriteVarint(int64(r.FromYear))
	w.WriteVarint(int64(r.ToYear))

	return nil
}

// readZoneID reads the pooled id at the start of a TimeZone payload.
func readZoneID(r *encoding.Reader, strings []string) (string, error) {
	return ienc.ReadPooled(r, strings)
}

// decodeZoneBody decodes the rest of a TimeZone payload after its id.
func decodeZoneBody(r *encoding.Reader, strings []string) (zone.Map, error) {
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	var m zone.Map
	switch format.MapKind(kind) {
	case format.MapFixed:
		m, err = decodeFixed(r, strings)
	case format.MapPrecomputed:
		m, err = decodePrecomputed(r, strings)
	default:
		return nil, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrUnknownMapKind, kind, r.Offset()-1)
	}
	if err != nil {
		return nil, err
	}
	if !r.Done() {
		return nil, fmt.Errorf("%w: %d trailing bytes at offset %d", errs.ErrMalformedField, r.Remaining(), r.Offset())
	}

	return m, nil
}

func decodeFixed(r *encoding.Reader, strings []string) (zone.Map, error) {
	name, err := ienc.ReadPooled(r, strings)
	if err != nil {
		return nil, err
	}
	wall, err := readOffset(r)
	if err != nil {
		return nil, err
	}
	std, err := readOffset(r)
	if err != nil {
		return nil, err
	}

	f, err := zone.NewFixed(name, wall, std)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func decodePrecomputed(r *encoding.Reader, strings []string) (zone.Map, error) {
	// Each interval takes at least three bytes: name index, wall and standard.
	count, err := r.ReadLength("interval count", 3)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: precomputed zone without intervals at offset %d", errs.ErrMalformedField, r.Offset())
	}

	intervals := make([]zone.Interval, count)
	for i := range intervals {
		iv := &intervals[i]
		if iv.Name, err = ienc.ReadPooled(r, strings); err != nil {
			return nil, err
		}
		if iv.Wall, err = readOffset(r); err != nil {
			return nil, err
		}
		if iv.Standard, err = readOffset(r); err != nil {
			return nil, err
		}
	}

	hasTail, err := r.ReadBool()
	if err != nil {
		return nil, err
	}

	boundaries := count - 1
	if hasTail {
		boundaries++
	}
	starts, err := encoding.NewTransitionDeltaDecoder(r).Decode(boundaries)
	if err != nil {
		return nil, err
	}

	for i := range intervals {
		intervals[i].Start = zone.StartOfTime
		if i > 0 {
			intervals[i].Start = zone.Instant(starts[i-1])
		}
		intervals[i].End = zone.EndOfTime
		if i < len(starts) {
			intervals[i].End = zone.Instant(starts[i])
		}
	}

	var tail *zone.AlternatingMap
	if hasTail {
		if tail, err = decodeTail(r, strings); err != nil {
			return nil, err
		}
	}

	p, err := zone.NewPrecomputed(intervals, tail)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func decodeTail(r *encoding.Reader, strings []string) (*zone.AlternatingMap, error) {
	standard, err := readOffset(r)
	if err != nil {
		return nil, err
	}

	var rules [2]zone.Recurrence
	for i := range rules {
		if rules[i], err = decodeRecurrence(r, strings); err != nil {
			return nil, err
		}
	}

	return zone.NewAlternatingMap(standard, rules[0], rules[1])
}

func decodeRecurrence(r *encoding.Reader, strings []string) (zone.Recurrence, error) {
	var (
		rec zone.Recurrence
		err error
	)

	if rec.Name, err = ienc.ReadPooled(r, strings); err != nil {
		return rec, err
	}
	if rec.Savings, err = readOffset(r); err != nil {
		return rec, err
	}

	y := &rec.YearOffset
	b, err := r.ReadByte()
	if err != nil {
		return rec, err
	}
	y.Mode = format.TransitionMode(b)
	if b, err = r.ReadByte(); err != nil {
		return rec, err
	}
	y.Month = int(b)
	if y.DayOfMonth, err = readInt(r); err != nil {
		return rec, err
	}
	if b, err = r.ReadByte(); err != nil {
		return rec, err
	}
	y.DayOfWeek = int(b)
	if y.AdvanceDayOfWeek, err = r.ReadBool(); err != nil {
		return rec, err
	}
	tod, err := r.ReadUvarint()
	if err != nil {
		return rec, err
	}
	if tod > math.MaxInt32 {
		return rec, fmt.Errorf("%w: time of day %d at offset %d", errs.ErrMalformedField, tod, r.Offset())
	}
	y.TimeOfDay = int(tod)
	if y.AddDay, err = r.ReadBool(); err != nil {
		return rec, err
	}
	if rec.FromYear, err = readInt(r); err != nil {
		return rec, err
	}
	if rec.ToYear, err = readInt(r); err != nil {
		return rec, err
	}

	return rec, rec.Validate()
}

// readOffset reads a zigzag varint that must be a valid offset.
func readOffset(r *encoding.Reader) (zone.Offset, error) {
	at := r.Offset()
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 || !zone.Offset(v).Valid() {
		return 0, fmt.Errorf("%w: %d seconds at offset %d", errs.ErrInvalidOffset, v, at)
	}

	return zone.Offset(v), nil
}

// readInt reads a zigzag varint bounded to 32 bits.
func readInt(r *encoding.Reader) (int, error) {
	at := r.Offset()
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: integer %d out of range at offset %d", errs.ErrMalformedField, v, at)
	}

	return int(v), nil
}
