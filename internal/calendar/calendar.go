// Package calendar is the proleptic Gregorian (ISO) calendar collaborator used when
// interpreting recurrence rules. All values are plain integers; local date/times are
// counted in seconds from the local epoch 1970-01-01T00:00:00.
package calendar

import "time"

// Supported year range for rule evaluation.
const (
	MinYear = -9998
	MaxYear = 9999

	SecondsPerDay = 86400
)

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month (1-12) of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}

		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// DaysSinceEpoch returns the number of days between 1970-01-01 and the given date.
func DaysSinceEpoch(year, month, day int) int64 {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Unix() / SecondsPerDay
}

// Weekday returns the ISO day of week (1 = Monday ... 7 = Sunday) of the given date.
func Weekday(year, month, day int) int {
	wd := int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
	if wd == 0 {
		return 7
	}

	return wd
}

// Seconds returns the local seconds for a date plus a number of seconds into that day.
// secondOfDay may fall outside [0, 86400); the excess rolls into neighbouring days.
func Seconds(year, month, day int, secondOfDay int64) int64 {
	return DaysSinceEpoch(year, month, day)*SecondsPerDay + secondOfDay
}

// Date splits local seconds into year, month, day and the second of day.
func Date(seconds int64) (year, month, day int, secondOfDay int64) {
	t := time.Unix(seconds, 0).UTC()
	y, m, d := t.Date()

	return y, int(m), d, int64(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// YearOf returns the calendar year containing the given local seconds.
func YearOf(seconds int64) int {
	return time.Unix(seconds, 0).UTC().Year()
}

// StartOfYear returns the local seconds of January 1st, 00:00 of year.
func StartOfYear(year int) int64 {
	return Seconds(year, 1, 1, 0)
}
