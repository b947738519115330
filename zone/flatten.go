package zone

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
)

// MaxFlattenIntervals bounds the number of explicit intervals Flatten will produce.
const MaxFlattenIntervals = 1 << 20

// Flatten converts m into a Precomputed map answering every query identically, except
// that no interval spans the instant at which a tail takes over.
//
// A Precomputed map is returned as is and a Cached map is unwrapped. For a Composite
// whose last part ends in an AlternatingMap tail, the explicit intervals stop where
// that tail takes over and the tail is carried over. Every other map is walked to
// EndOfTime.
func Flatten(m Map) (*Precomputed, error) {
	switch v := m.(type) {
	case *Precomputed:
		return v, nil
	case *Cached:
		return Flatten(v.inner)
	case *Fixed:
		return NewPrecomputed([]Interval{v.interval}, nil)
	case *AlternatingMap:
		first := v.IntervalAt(StartOfTime)
		if !first.HasEnd() {
			return NewPrecomputed([]Interval{first}, nil)
		}

		return NewPrecomputed([]Interval{first}, v)
	}

	tail, tailStart := trailingTail(m)

	var intervals []Interval
	for iv := range Intervals(m, StartOfTime, tailStart) {
		if iv.End > tailStart {
			iv.End = tailStart
		}
		intervals = append(intervals, iv)
		if len(intervals) > MaxFlattenIntervals {
			return nil, fmt.Errorf("%w: more than %d intervals", errs.ErrUnserializableMap, MaxFlattenIntervals)
		}
	}

	return NewPrecomputed(intervals, tail)
}

// trailingTail finds the AlternatingMap that answers for the end of the time line, if
// any, and the instant from which it does.
func trailingTail(m Map) (*AlternatingMap, Instant) {
	switch v := m.(type) {
	case *Cached:
		return trailingTail(v.inner)
	case *Precomputed:
		return v.tail, v.tailStart
	case *AlternatingMap:
		return v, v.IntervalAt(StartOfTime).End
	case *Composite:
		last := v.parts[len(v.parts)-1]
		tail, start := trailingTail(last.Map)
		if tail == nil {
			return nil, EndOfTime
		}
		if start < last.Start {
			start = last.Start
		}
		if start == StartOfTime {
			// The tail also answers the start of the time line; keep one explicit
			// interval in front of it.
			start = tail.IntervalAt(StartOfTime).End
		}

		return tail, start
	}

	return nil, EndOfTime
}
