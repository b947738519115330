package zone

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/internal/calendar"
)

// Instant is a point on the time line in seconds since 1970-01-01T00:00:00Z.
type Instant int64

// LocalInstant is a wall-clock reading in seconds since local 1970-01-01T00:00:00.
type LocalInstant int64

// Offset is a UTC offset in seconds east of Greenwich.
type Offset int32

// Sentinels for the open ends of the time line.
const (
	StartOfTime Instant = math.MinInt64
	EndOfTime   Instant = math.MaxInt64

	MinLocal LocalInstant = math.MinInt64
	MaxLocal LocalInstant = math.MaxInt64
)

// Offset bounds. Valid offsets lie in (-MaxOffset, MaxOffset].
const (
	MaxOffset Offset = 18 * 3600
	UTCOffset Offset = 0
)

// NewOffset validates an offset given in seconds.
func NewOffset(seconds int) (Offset, error) {
	if seconds <= -int(MaxOffset) || seconds > int(MaxOffset) {
		return 0, fmt.Errorf("%w: %d seconds", errs.ErrInvalidOffset, seconds)
	}

	return Offset(seconds), nil //nolint:gosec
}

// HoursMinutes builds an offset from hours and minutes. The sign of hours applies to
// minutes as well, so HoursMinutes(-3, 30) is -03:30. The result is not validated.
func HoursMinutes(hours, minutes int) Offset {
	if hours < 0 {
		minutes = -minutes
	}

	return Offset(hours*3600 + minutes*60) //nolint:gosec
}

// Valid reports whether o is within (-18h, +18h].
func (o Offset) Valid() bool {
	return o > -MaxOffset && o <= MaxOffset
}

// Seconds returns the offset in seconds.
func (o Offset) Seconds() int {
	return int(o)
}

// String formats the offset as ±HH:MM, or ±HH:MM:SS when it has a seconds part.
func (o Offset) String() string {
	sign := '+'
	v := int(o)
	if v < 0 {
		sign = '-'
		v = -v
	}
	if v%60 != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, v/3600, v/60%60, v%60)
	}

	return fmt.Sprintf("%c%02d:%02d", sign, v/3600, v/60%60)
}

// addSaturating adds b to a, clamping at the int64 limits.
func addSaturating(a, b int64) int64 {
	s := a + b
	if b > 0 && s < a {
		return math.MaxInt64
	}
	if b < 0 && s > a {
		return math.MinInt64
	}

	return s
}

// Plus converts an instant to local time using offset o. The sentinels map to the
// local sentinels.
func (t Instant) Plus(o Offset) LocalInstant {
	switch t {
	case StartOfTime:
		return MinLocal
	case EndOfTime:
		return MaxLocal
	}

	return LocalInstant(addSaturating(int64(t), int64(o)))
}

// Add returns t moved by the given number of seconds, saturating at the sentinels.
func (t Instant) Add(seconds int64) Instant {
	if t == StartOfTime || t == EndOfTime {
		return t
	}

	return Instant(addSaturating(int64(t), seconds))
}

// Time converts t to a time.Time in UTC. The sentinels have no meaningful
// representation and are clamped to the supported calendar range.
func (t Instant) Time() time.Time {
	switch {
	case t <= Instant(calendar.StartOfYear(calendar.MinYear)):
		return time.Unix(calendar.StartOfYear(calendar.MinYear), 0).UTC()
	case t >= Instant(calendar.StartOfYear(calendar.MaxYear+1)):
		return time.Unix(calendar.StartOfYear(calendar.MaxYear+1)-1, 0).UTC()
	}

	return time.Unix(int64(t), 0).UTC()
}

// InstantOf converts a time.Time, discarding sub-second precision.
func InstantOf(t time.Time) Instant {
	return Instant(t.Unix())
}

func (t Instant) String() string {
	switch t {
	case StartOfTime:
		return "StartOfTime"
	case EndOfTime:
		return "EndOfTime"
	}

	return t.Time().Format(time.RFC3339)
}

// Minus converts a local reading to an instant using offset o. The sentinels map to
// the instant sentinels.
func (l LocalInstant) Minus(o Offset) Instant {
	switch l {
	case MinLocal:
		return StartOfTime
	case MaxLocal:
		return EndOfTime
	}

	return Instant(addSaturating(int64(l), -int64(o)))
}

// Add returns l moved by the given number of seconds, saturating at the sentinels.
func (l LocalInstant) Add(seconds int64) LocalInstant {
	if l == MinLocal || l == MaxLocal {
		return l
	}

	return LocalInstant(addSaturating(int64(l), seconds))
}

// DateTime splits l into its calendar fields.
func (l LocalInstant) DateTime() LocalDateTime {
	y, mo, d, sod := calendar.Date(int64(l))

	return LocalDateTime{
		Year:   y,
		Month:  mo,
		Day:    d,
		Hour:   int(sod / 3600),
		Minute: int(sod / 60 % 60),
		Second: int(sod % 60),
	}
}

func (l LocalInstant) String() string {
	switch l {
	case MinLocal:
		return "MinLocal"
	case MaxLocal:
		return "MaxLocal"
	}

	return l.DateTime().String()
}

// LocalDateTime is a civil date and time of day in the ISO calendar, without a zone.
type LocalDateTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

// NewLocalDateTime validates the fields and returns the local date/time.
func NewLocalDateTime(year, month, day, hour, minute, second int) (LocalDateTime, error) {
	ldt := LocalDateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
	if err := ldt.Validate(); err != nil {
		return LocalDateTime{}, err
	}

	return ldt, nil
}

// Validate checks every field against the calendar.
func (ldt LocalDateTime) Validate() error {
	switch {
	case ldt.Year < calendar.MinYear || ldt.Year > calendar.MaxYear:
		return fmt.Errorf("%w: year %d", errs.ErrInvalidLocal, ldt.Year)
	case ldt.Month < 1 || ldt.Month > 12:
		return fmt.Errorf("%w: month %d", errs.ErrInvalidLocal, ldt.Month)
	case ldt.Day < 1 || ldt.Day > calendar.DaysInMonth(ldt.Year, ldt.Month):
		return fmt.Errorf("%w: day %d of %04d-%02d", errs.ErrInvalidLocal, ldt.Day, ldt.Year, ldt.Month)
	case ldt.Hour < 0 || ldt.Hour > 23:
		return fmt.Errorf("%w: hour %d", errs.ErrInvalidLocal, ldt.Hour)
	case ldt.Minute < 0 || ldt.Minute > 59:
		return fmt.Errorf("%w: minute %d", errs.ErrInvalidLocal, ldt.Minute)
	case ldt.Second < 0 || ldt.Second > 59:
		return fmt.Errorf("%w: second %d", errs.ErrInvalidLocal, ldt.Second)
	}

	return nil
}

// LocalInstant converts the date/time to local seconds. Fields are not validated.
func (ldt LocalDateTime) LocalInstant() LocalInstant {
	sod := int64(ldt.Hour*3600 + ldt.Minute*60 + ldt.Second)
	return LocalInstant(calendar.Seconds(ldt.Year, ldt.Month, ldt.Day, sod))
}

func (ldt LocalDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", ldt.Year, ldt.Month, ldt.Day, ldt.Hour, ldt.Minute, ldt.Second)
}
