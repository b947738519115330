package zone

import (
	"fmt"
	"sort"

	"github.com/arloliu/zonemap/errs"
)

// Precomputed is a zone described by an explicit list of contiguous intervals,
// optionally followed by an AlternatingMap tail that answers every query at or after
// TailStart.
//
// Lookups in the explicit part binary-search the interval list. Lookups in the tail
// compute the enclosing interval from the two tail rules and never materialise future
// transitions.
type Precomputed struct {
	intervals []Interval
	tail      *AlternatingMap
	tailStart Instant
}

var _ Map = (*Precomputed)(nil)

// NewPrecomputed validates intervals and builds the map.
//
// The first interval must start at StartOfTime and each interval must end where the
// next one starts. Without a tail the last interval must end at EndOfTime; with a tail
// the tail takes over at the end of the last interval.
func NewPrecomputed(intervals []Interval, tail *AlternatingMap) (*Precomputed, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: no intervals", errs.ErrInvalidInterval)
	}
	if intervals[0].HasStart() {
		return nil, fmt.Errorf("%w: first interval starts at %s, not StartOfTime", errs.ErrInvalidInterval, intervals[0].Start)
	}

	for i, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return nil, fmt.Errorf("interval %d: %w", i, err)
		}
		if i > 0 && intervals[i-1].End != iv.Start {
			return nil, fmt.Errorf("%w: interval %d starts at %s but interval %d ends at %s",
				errs.ErrInvalidInterval, i, iv.Start, i-1, intervals[i-1].End)
		}
	}

	last := intervals[len(intervals)-1]
	if tail == nil && last.HasEnd() {
		return nil, fmt.Errorf("%w: last interval ends at %s without a tail", errs.ErrInvalidInterval, last.End)
	}
	if tail != nil && !last.HasEnd() {
		return nil, fmt.Errorf("%w: tail follows an interval ending at EndOfTime", errs.ErrInvalidInterval)
	}

	p := &Precomputed{
		intervals: append([]Interval(nil), intervals...),
		tail:      tail,
		tailStart: EndOfTime,
	}
	if tail != nil {
		p.tailStart = last.End
	}

	return p, nil
}

// Intervals returns the explicit intervals. The slice must not be modified.
func (p *Precomputed) Intervals() []Interval {
	return p.intervals
}

// Tail returns the tail map, or nil if the explicit intervals cover all time.
func (p *Precomputed) Tail() *AlternatingMap {
	return p.tail
}

// TailStart returns the instant from which the tail answers queries, or EndOfTime.
func (p *Precomputed) TailStart() Instant {
	return p.tailStart
}

// Transitions returns the starts of every explicit interval after the first.
func (p *Precomputed) Transitions() []Instant {
	out := make([]Instant, 0, len(p.intervals)-1)
	for _, iv := range p.intervals[1:] {
		out = append(out, iv.Start)
	}

	return out
}

// IntervalAt binary-searches the explicit intervals and defers to the tail from
// TailStart on.
func (p *Precomputed) IntervalAt(t Instant) Interval {
	if p.tail != nil && t >= p.tailStart {
		iv := p.tail.IntervalAt(t)
		if iv.Start < p.tailStart {
			iv = iv.WithStart(p.tailStart)
		}

		return iv
	}

	i := sort.Search(len(p.intervals), func(i int) bool {
		return p.intervals[i].End > t
	})
	if i == len(p.intervals) {
		// Only EndOfTime itself falls past the last exclusive end.
		i--
	}

	return p.intervals[i]
}

// IntervalAtLocal implements Map.
func (p *Precomputed) IntervalAtLocal(l LocalInstant) (Interval, bool) {
	return intervalAtLocal(p, l)
}

func (*Precomputed) sealed() {}
