package zone

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
)

// Interval is a maximal span of the time line during which a zone keeps the same
// offsets and name. Start is inclusive, End exclusive.
type Interval struct {
	Start    Instant
	End      Instant
	Wall     Offset
	Standard Offset
	Name     string
}

// NewInterval validates and returns an interval.
func NewInterval(name string, start, end Instant, wall, standard Offset) (Interval, error) {
	iv := Interval{Start: start, End: end, Wall: wall, Standard: standard, Name: name}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}

	return iv, nil
}

// Validate checks the bounds and offsets of the interval.
func (iv Interval) Validate() error {
	if iv.Start >= iv.End {
		return fmt.Errorf("%w: %q start %s is not before end %s", errs.ErrInvalidInterval, iv.Name, iv.Start, iv.End)
	}
	if !iv.Wall.Valid() {
		return fmt.Errorf("%w: %q wall offset %d", errs.ErrInvalidOffset, iv.Name, iv.Wall)
	}
	if !iv.Standard.Valid() {
		return fmt.Errorf("%w: %q standard offset %d", errs.ErrInvalidOffset, iv.Name, iv.Standard)
	}

	return nil
}

// Savings returns the daylight adjustment in force.
func (iv Interval) Savings() Offset {
	return iv.Wall - iv.Standard
}

// HasStart reports whether the interval has a finite start.
func (iv Interval) HasStart() bool {
	return iv.Start != StartOfTime
}

// HasEnd reports whether the interval has a finite end.
func (iv Interval) HasEnd() bool {
	return iv.End != EndOfTime
}

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t Instant) bool {
	return iv.Start <= t && t < iv.End
}

// LocalStart returns Start as a wall-clock reading of this interval.
func (iv Interval) LocalStart() LocalInstant {
	return iv.Start.Plus(iv.Wall)
}

// LocalEnd returns End as a wall-clock reading of this interval.
func (iv Interval) LocalEnd() LocalInstant {
	return iv.End.Plus(iv.Wall)
}

// ContainsLocal reports whether the wall-clock reading l maps, under this interval's
// offset, to an instant inside the interval.
func (iv Interval) ContainsLocal(l LocalInstant) bool {
	if iv.HasStart() && l < iv.LocalStart() {
		return false
	}
	if iv.HasEnd() && l >= iv.LocalEnd() {
		return false
	}

	return true
}

// WithStart returns a copy of the interval starting at t.
func (iv Interval) WithStart(t Instant) Interval {
	iv.Start = t
	return iv
}

// WithEnd returns a copy of the interval ending at t.
func (iv Interval) WithEnd(t Instant) Interval {
	iv.End = t
	return iv
}

// Equal reports whether both intervals have the same bounds, offsets and name.
func (iv Interval) Equal(other Interval) bool {
	return iv == other
}

// SameRules reports whether both intervals have the same offsets and name, ignoring bounds.
func (iv Interval) SameRules(other Interval) bool {
	return iv.Wall == other.Wall && iv.Standard == other.Standard && iv.Name == other.Name
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s: [%s, %s) %s (%s)", iv.Name, iv.Start, iv.End, iv.Wall, iv.Standard)
}
