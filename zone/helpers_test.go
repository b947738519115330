package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/format"
)

func utc(year, month, day, hour, minute int) Instant {
	return InstantOf(time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC))
}

func local(year, month, day, hour, minute int) LocalInstant {
	return LocalDateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}.LocalInstant()
}

// pacificRules returns US Pacific recurrences in force since 2007.
func pacificRules() (std, dst Recurrence) {
	std = Recurrence{
		Name:    "PST",
		Savings: 0,
		YearOffset: YearOffset{
			Mode: format.ModeWall, Month: 11, DayOfMonth: 1, DayOfWeek: 7,
			AdvanceDayOfWeek: true, TimeOfDay: 2 * 3600,
		},
		FromYear: 2007,
		ToYear:   MaxYear,
	}
	dst = Recurrence{
		Name:    "PDT",
		Savings: HoursMinutes(1, 0),
		YearOffset: YearOffset{
			Mode: format.ModeWall, Month: 3, DayOfMonth: 8, DayOfWeek: 7,
			AdvanceDayOfWeek: true, TimeOfDay: 2 * 3600,
		},
		FromYear: 2007,
		ToYear:   MaxYear,
	}

	return std, dst
}

func pacificTail(t *testing.T) *AlternatingMap {
	t.Helper()

	std, dst := pacificRules()
	m, err := NewAlternatingMap(HoursMinutes(-8, 0), std, dst)
	require.NoError(t, err)

	return m
}

// pacificPrecomputed has a local-mean-time interval, one fixed PST interval and the
// alternating tail from the 2007 spring transition.
func pacificPrecomputed(t *testing.T) *Precomputed {
	t.Helper()

	lmtEnd := utc(1883, 11, 18, 20, 0)
	tailStart := utc(2007, 3, 11, 10, 0)
	intervals := []Interval{
		{Start: StartOfTime, End: lmtEnd, Wall: -28378, Standard: -28378, Name: "LMT"},
		{Start: lmtEnd, End: tailStart, Wall: HoursMinutes(-8, 0), Standard: HoursMinutes(-8, 0), Name: "PST"},
	}

	p, err := NewPrecomputed(intervals, pacificTail(t))
	require.NoError(t, err)

	return p
}

// sweep returns instants spread across several centuries plus both sentinels.
func sweep() []Instant {
	out := []Instant{StartOfTime, EndOfTime, EndOfTime - 1, StartOfTime + 1}
	for year := 1850; year <= 2200; year += 7 {
		for month := 1; month <= 12; month += 2 {
			out = append(out, utc(year, month, 10, 9, 30), utc(year, month, 1, 0, 0))
		}
	}

	return out
}

// requireCoverage walks m from StartOfTime to EndOfTime and checks the intervals are
// contiguous and non-empty.
func requireCoverage(t *testing.T, m Map, until Instant) {
	t.Helper()

	prev := Interval{End: StartOfTime}
	count := 0
	for iv := range Intervals(m, StartOfTime, until) {
		require.Equal(t, prev.End, iv.Start, "gap or overlap before %s", iv)
		require.Less(t, iv.Start, iv.End)
		prev = iv
		count++
	}
	require.Positive(t, count)
}
