package zone

import "iter"

// Map answers which interval of a zone covers a point on the time line.
//
// The set of implementations is closed: Fixed, Precomputed, Composite, AlternatingMap
// and Cached. All of them are immutable after construction and safe for concurrent use.
type Map interface {
	// IntervalAt returns the interval containing t. It is total: every instant,
	// including the sentinels, is covered.
	IntervalAt(t Instant) Interval

	// IntervalAtLocal returns the earliest interval whose local span contains l and
	// true. For a skipped wall-clock reading it returns the interval starting after
	// the gap and false.
	IntervalAtLocal(l LocalInstant) (Interval, bool)

	sealed()
}

// Name returns the display name in force at t.
func Name(m Map, t Instant) string {
	return m.IntervalAt(t).Name
}

// OffsetAt returns the wall offset in force at t.
func OffsetAt(m Map, t Instant) Offset {
	return m.IntervalAt(t).Wall
}

// Intervals returns an iterator over the intervals of m overlapping [from, to), in
// order. The first and last intervals are not clipped.
func Intervals(m Map, from, to Instant) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if from >= to {
			return
		}

		iv := m.IntervalAt(from)
		for {
			if !yield(iv) {
				return
			}
			if !iv.HasEnd() || iv.End >= to {
				return
			}
			iv = m.IntervalAt(iv.End)
		}
	}
}

// LocalMatch describes how a wall-clock reading maps onto a zone.
type LocalMatch struct {
	// Matches holds every interval whose local span contains the reading, in order.
	Matches []Interval
	// Before and After bound the gap when Matches is empty.
	Before Interval
	After  Interval
}

// Candidates returns every interval whose local span contains l, in order.
func Candidates(m Map, l LocalInstant) []Interval {
	return MatchLocal(m, l).Matches
}

// MatchLocal scans the intervals that can possibly contain l and reports the matches,
// or the two intervals bordering the gap when there are none.
//
// No valid offset exceeds 18 hours, so only intervals overlapping
// [l-18h, l+18h] on the instant axis need to be inspected.
func MatchLocal(m Map, l LocalInstant) LocalMatch {
	var res LocalMatch

	lo := Instant(l.Add(-int64(MaxOffset)))
	hi := Instant(l.Add(int64(MaxOffset)))
	switch l {
	case MinLocal:
		lo, hi = StartOfTime, StartOfTime
	case MaxLocal:
		lo, hi = EndOfTime, EndOfTime
	}

	iv := m.IntervalAt(lo)
	var prev Interval
	hasPrev := false
	for {
		if iv.ContainsLocal(l) {
			res.Matches = append(res.Matches, iv)
		} else if hasPrev && len(res.Matches) == 0 && prev.LocalEnd() <= l && l < iv.LocalStart() {
			res.Before, res.After = prev, iv
		}

		if !iv.HasEnd() || iv.End > hi {
			break
		}
		prev, hasPrev = iv, true
		iv = m.IntervalAt(iv.End)
	}

	return res
}

// intervalAtLocal implements Map.IntervalAtLocal on top of MatchLocal.
func intervalAtLocal(m Map, l LocalInstant) (Interval, bool) {
	match := MatchLocal(m, l)
	if len(match.Matches) > 0 {
		return match.Matches[0], true
	}

	return match.After, false
}
