package zone

import (
	"fmt"
	"sort"

	"github.com/arloliu/zonemap/errs"
)

// Part is one piece of a Composite: Map answers for [Start, next part's Start).
type Part struct {
	Start Instant
	Map   Map
}

// Composite delegates to one of several maps by date. It models a zone whose history
// switches wholesale between definitions, such as a region adopting another rule set.
//
// Intervals are clipped to their part's range. Adjacent intervals on either side of a
// part boundary that share offsets and name are merged into one.
type Composite struct {
	parts []Part
}

var _ Map = (*Composite)(nil)

// NewComposite validates parts and builds the map. The first part must start at
// StartOfTime and starts must strictly increase.
func NewComposite(parts []Part) (*Composite, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: composite has no parts", errs.ErrInvalidInterval)
	}
	if parts[0].Start != StartOfTime {
		return nil, fmt.Errorf("%w: first part starts at %s", errs.ErrInvalidInterval, parts[0].Start)
	}
	for i, p := range parts {
		if p.Map == nil {
			return nil, fmt.Errorf("%w: part %d has no map", errs.ErrInvalidInterval, i)
		}
		if i > 0 && p.Start <= parts[i-1].Start {
			return nil, fmt.Errorf("%w: part %d starts at %s, not after %s",
				errs.ErrInvalidInterval, i, p.Start, parts[i-1].Start)
		}
	}

	return &Composite{parts: append([]Part(nil), parts...)}, nil
}

// Parts returns the parts. The slice must not be modified.
func (c *Composite) Parts() []Part {
	return c.parts
}

func (c *Composite) partEnd(i int) Instant {
	if i+1 < len(c.parts) {
		return c.parts[i+1].Start
	}

	return EndOfTime
}

// partIndex returns the part owning t.
func (c *Composite) partIndex(t Instant) int {
	return sort.Search(len(c.parts), func(i int) bool {
		return c.parts[i].Start > t
	}) - 1
}

// clipped returns the interval of part i containing t, clipped to the part range.
func (c *Composite) clipped(i int, t Instant) Interval {
	iv := c.parts[i].Map.IntervalAt(t)
	if iv.Start < c.parts[i].Start {
		iv.Start = c.parts[i].Start
	}
	if end := c.partEnd(i); iv.End > end {
		iv.End = end
	}

	return iv
}

// IntervalAt asks the part covering t and merges neighbouring parts that continue
// the same rules.
func (c *Composite) IntervalAt(t Instant) Interval {
	i := c.partIndex(t)
	iv := c.clipped(i, t)

	// Merge backwards across part boundaries.
	for j := i; j > 0 && iv.Start == c.parts[j].Start; j-- {
		prev := c.clipped(j-1, iv.Start-1)
		if !prev.SameRules(iv) {
			break
		}
		iv.Start = prev.Start
	}

	// Merge forwards across part boundaries.
	for j := i; j+1 < len(c.parts) && iv.End == c.parts[j+1].Start; j++ {
		next := c.clipped(j+1, iv.End)
		if !next.SameRules(iv) {
			break
		}
		iv.End = next.End
	}

	return iv
}

// IntervalAtLocal implements Map.
func (c *Composite) IntervalAtLocal(l LocalInstant) (Interval, bool) {
	return intervalAtLocal(c, l)
}

func (*Composite) sealed() {}
