package zone

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
)

// AlternatingMap is a zone that alternates forever between standard time and daylight
// time, driven by two infinite recurrences. One recurrence must have zero savings.
type AlternatingMap struct {
	standard Offset
	std      Recurrence
	dst      Recurrence
}

var _ Map = (*AlternatingMap)(nil)

// NewAlternatingMap builds the map from the standard offset and the two recurrences,
// given in either order.
func NewAlternatingMap(standard Offset, a, b Recurrence) (*AlternatingMap, error) {
	if !standard.Valid() {
		return nil, fmt.Errorf("%w: standard offset %d", errs.ErrInvalidOffset, standard)
	}
	for _, r := range []Recurrence{a, b} {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if !r.Infinite() {
			return nil, fmt.Errorf("%w: recurrence %q ends in %d", errs.ErrUnsupportedTail, r.Name, r.ToYear)
		}
	}

	m := &AlternatingMap{standard: standard}
	switch {
	case a.Savings == 0 && b.Savings != 0:
		m.std, m.dst = a, b
	case b.Savings == 0 && a.Savings != 0:
		m.std, m.dst = b, a
	default:
		return nil, fmt.Errorf("%w: exactly one of %q and %q must have zero savings",
			errs.ErrUnsupportedTail, a.Name, b.Name)
	}

	return m, nil
}

// Standard returns the standard offset.
func (m *AlternatingMap) Standard() Offset {
	return m.standard
}

// Recurrences returns the standard (zero savings) and daylight recurrences.
func (m *AlternatingMap) Recurrences() (std Recurrence, dst Recurrence) {
	return m.std, m.dst
}

// next returns the next transition after t together with the recurrence producing it.
// Entering daylight time happens from standard time and vice versa, which fixes the
// savings in force before each transition.
func (m *AlternatingMap) next(t Instant) (Transition, *Recurrence) {
	toDst, dstOK := m.dst.Next(t, m.standard, 0)
	toStd, stdOK := m.std.Next(t, m.standard, m.dst.Savings)

	switch {
	case !dstOK && !stdOK:
		return Transition{At: EndOfTime}, nil
	case !stdOK || (dstOK && toDst.At < toStd.At):
		return toDst, &m.dst
	default:
		return toStd, &m.std
	}
}

// IntervalAt returns the interval between the recurrence transitions around t.
func (m *AlternatingMap) IntervalAt(t Instant) Interval {
	next, rec := m.next(t)

	// The clock currently runs on the recurrence that is not about to fire.
	current, prevSavings := &m.std, m.dst.Savings
	if rec == &m.std {
		current, prevSavings = &m.dst, 0
	}
	if rec == nil {
		// Past the last supported year: the later of the two final transitions wins.
		toDst, dstOK := m.dst.PreviousOrSame(t, m.standard, 0)
		toStd, stdOK := m.std.PreviousOrSame(t, m.standard, m.dst.Savings)
		if dstOK && (!stdOK || toDst.At > toStd.At) {
			current, prevSavings = &m.dst, 0
		}
	}

	start := StartOfTime
	if prev, ok := current.PreviousOrSame(t, m.standard, prevSavings); ok {
		start = prev.At
	}

	return Interval{
		Start:    start,
		End:      next.At,
		Wall:     m.standard + current.Savings,
		Standard: m.standard,
		Name:     current.Name,
	}
}

// IntervalAtLocal implements Map.
func (m *AlternatingMap) IntervalAtLocal(l LocalInstant) (Interval, bool) {
	return intervalAtLocal(m, l)
}

func (*AlternatingMap) sealed() {}
