package zone

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/internal/calendar"
)

// Year bounds for recurrences. A recurrence whose ToYear is MaxYear never ends.
const (
	MinYear = calendar.MinYear
	MaxYear = calendar.MaxYear
)

// YearOffset selects one local date and time within a year, such as "last Sunday of
// March at 01:00 UTC" or "first Sunday on or after April 8 at 02:00 standard time".
type YearOffset struct {
	// Mode tells which clock TimeOfDay is read on.
	Mode format.TransitionMode
	// Month is 1-12.
	Month int
	// DayOfMonth is 1-31, or -1..-31 counting back from the last day of the month.
	DayOfMonth int
	// DayOfWeek is 0 for "exactly DayOfMonth", otherwise 1 (Monday) to 7 (Sunday).
	DayOfWeek int
	// AdvanceDayOfWeek moves to DayOfWeek on or after DayOfMonth instead of on or before.
	AdvanceDayOfWeek bool
	// TimeOfDay is seconds into the day, in [0, 86400).
	TimeOfDay int
	// AddDay moves the result one day later, expressing a time of 24:00.
	AddDay bool
}

// Validate checks every selector.
func (y YearOffset) Validate() error {
	switch {
	case y.Mode > format.ModeStandard:
		return fmt.Errorf("%w: transition mode %d", errs.ErrInvalidRule, y.Mode)
	case y.Month < 1 || y.Month > 12:
		return fmt.Errorf("%w: month %d", errs.ErrInvalidRule, y.Month)
	case y.DayOfMonth == 0 || y.DayOfMonth < -31 || y.DayOfMonth > 31:
		return fmt.Errorf("%w: day of month %d", errs.ErrInvalidRule, y.DayOfMonth)
	case y.DayOfMonth > 0 && y.DayOfMonth > calendar.DaysInMonth(2000, y.Month):
		return fmt.Errorf("%w: day %d does not exist in month %d", errs.ErrInvalidRule, y.DayOfMonth, y.Month)
	case y.DayOfWeek < 0 || y.DayOfWeek > 7:
		return fmt.Errorf("%w: day of week %d", errs.ErrInvalidRule, y.DayOfWeek)
	case y.TimeOfDay < 0 || y.TimeOfDay >= calendar.SecondsPerDay:
		return fmt.Errorf("%w: time of day %d seconds", errs.ErrInvalidRule, y.TimeOfDay)
	}

	return nil
}

// OccurrenceForYear returns the local date and time the selector picks in year.
// The reading is on the clock named by Mode.
func (y YearOffset) OccurrenceForYear(year int) LocalInstant {
	day := y.DayOfMonth
	if day < 0 {
		day = calendar.DaysInMonth(year, y.Month) + day + 1
	}
	if y.Month == 2 && day == 29 && !calendar.IsLeapYear(year) {
		day = 28
	}

	if y.DayOfWeek != 0 {
		current := calendar.Weekday(year, y.Month, day)
		if diff := y.DayOfWeek - current; diff != 0 {
			if diff > 0 && !y.AdvanceDayOfWeek {
				diff -= 7
			} else if diff < 0 && y.AdvanceDayOfWeek {
				diff += 7
			}
			day += diff
		}
	}
	if y.AddDay {
		day++
	}

	// Days outside the month roll over into the neighbouring month.
	return LocalInstant(calendar.Seconds(year, y.Month, day, int64(y.TimeOfDay)))
}

// RuleOffset returns the offset that turns an occurrence into an instant, given the
// standard offset and the savings in force just before the transition.
func (y YearOffset) RuleOffset(standard, previousSavings Offset) Offset {
	switch y.Mode {
	case format.ModeStandard:
		return standard
	case format.ModeWall:
		return standard + previousSavings
	default:
		return 0
	}
}

// Transition is a change of wall offset at an instant.
type Transition struct {
	At   Instant
	Wall Offset
}

// Recurrence is a rule producing at most one transition per year within
// [FromYear, ToYear]. ToYear == MaxYear means the rule never ends.
type Recurrence struct {
	Name       string
	Savings    Offset
	YearOffset YearOffset
	FromYear   int
	ToYear     int
}

// Validate checks the selector, the year range and the savings.
func (r Recurrence) Validate() error {
	if err := r.YearOffset.Validate(); err != nil {
		return fmt.Errorf("recurrence %q: %w", r.Name, err)
	}
	if r.FromYear < MinYear || r.ToYear > MaxYear || r.FromYear > r.ToYear {
		return fmt.Errorf("%w: recurrence %q years %d-%d", errs.ErrInvalidYearRange, r.Name, r.FromYear, r.ToYear)
	}
	if !r.Savings.Valid() {
		return fmt.Errorf("%w: recurrence %q savings %d", errs.ErrInvalidOffset, r.Name, r.Savings)
	}

	return nil
}

// Infinite reports whether the recurrence never ends.
func (r Recurrence) Infinite() bool {
	return r.ToYear == MaxYear
}

// WithName returns a copy of the recurrence with a different name.
func (r Recurrence) WithName(name string) Recurrence {
	r.Name = name
	return r
}

// OccurrenceForYear returns the local reading of the transition in year, on the clock
// named by the selector's mode. The year range is not checked.
func (r Recurrence) OccurrenceForYear(year int) LocalInstant {
	return r.YearOffset.OccurrenceForYear(year)
}

// TransitionForYear returns the instant of the transition in year, or false when the
// year is outside the recurrence's range or its occurrence falls outside the range's
// calendar years.
func (r Recurrence) TransitionForYear(year int, standard, previousSavings Offset) (Instant, bool) {
	l, ok := r.occurrence(year)
	if !ok {
		return 0, false
	}

	return l.Minus(r.YearOffset.RuleOffset(standard, previousSavings)), true
}

// occurrence returns the local reading for year. A reading that rolls back before
// FromYear or forward past ToYear is dropped.
func (r Recurrence) occurrence(year int) (LocalInstant, bool) {
	if year < r.FromYear || year > r.ToYear {
		return 0, false
	}

	l := r.OccurrenceForYear(year)
	if l < r.minLocal() || l >= r.maxLocal() {
		return 0, false
	}

	return l, true
}

// Next returns the first transition strictly after t.
func (r Recurrence) Next(t Instant, standard, previousSavings Offset) (Transition, bool) {
	ruleOffset := r.YearOffset.RuleOffset(standard, previousSavings)
	wall := standard + r.Savings
	local := t.Plus(ruleOffset)

	var year int
	switch {
	case local < r.minLocal():
		year = r.FromYear
	case local >= r.maxLocal():
		return Transition{}, false
	default:
		year = yearOf(local)
	}

	// An occurrence may roll up to a week into the neighbouring year.
	for y := year - 1; y <= year+2; y++ {
		l, ok := r.occurrence(y)
		if !ok {
			continue
		}
		if at := l.Minus(ruleOffset); at > t {
			return Transition{At: at, Wall: wall}, true
		}
	}

	return Transition{}, false
}

// PreviousOrSame returns the last transition at or before t.
func (r Recurrence) PreviousOrSame(t Instant, standard, previousSavings Offset) (Transition, bool) {
	ruleOffset := r.YearOffset.RuleOffset(standard, previousSavings)
	wall := standard + r.Savings
	local := t.Plus(ruleOffset)

	var year int
	switch {
	case local >= r.maxLocal():
		year = r.ToYear
	case local < r.minLocal():
		return Transition{}, false
	default:
		year = yearOf(local)
	}

	for y := year + 1; y >= year-2; y-- {
		l, ok := r.occurrence(y)
		if !ok {
			continue
		}
		if at := l.Minus(ruleOffset); at <= t {
			return Transition{At: at, Wall: wall}, true
		}
	}

	return Transition{}, false
}

// minLocal is the first local reading of FromYear.
func (r Recurrence) minLocal() LocalInstant {
	if r.FromYear <= MinYear {
		return MinLocal
	}

	return LocalInstant(calendar.StartOfYear(r.FromYear))
}

// maxLocal is the first local reading after ToYear.
func (r Recurrence) maxLocal() LocalInstant {
	if r.ToYear >= MaxYear {
		return MaxLocal
	}

	return LocalInstant(calendar.StartOfYear(r.ToYear + 1))
}

var (
	firstLocal = LocalInstant(calendar.StartOfYear(MinYear))
	lastLocal  = LocalInstant(calendar.StartOfYear(MaxYear+1) - 1)
)

// yearOf returns the year of l, clamped to the supported range.
func yearOf(l LocalInstant) int {
	switch {
	case l < firstLocal:
		return MinYear
	case l > lastLocal:
		return MaxYear
	}

	return calendar.YearOf(int64(l))
}
