package zone

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/errs"
)

func TestAlternatingMap_IntervalAt(t *testing.T) {
	m := pacificTail(t)
	pst, pdt := HoursMinutes(-8, 0), HoursMinutes(-7, 0)

	summer := m.IntervalAt(utc(2024, 7, 1, 0, 0))
	require.Equal(t, Interval{
		Start: utc(2024, 3, 10, 10, 0), End: utc(2024, 11, 3, 9, 0),
		Wall: pdt, Standard: pst, Name: "PDT",
	}, summer)

	winter := m.IntervalAt(utc(2024, 12, 1, 0, 0))
	require.Equal(t, Interval{
		Start: utc(2024, 11, 3, 9, 0), End: utc(2025, 3, 9, 10, 0),
		Wall: pst, Standard: pst, Name: "PST",
	}, winter)

	// Transition instants belong to the interval they start.
	require.Equal(t, summer, m.IntervalAt(summer.Start))
	require.Equal(t, winter, m.IntervalAt(summer.End))
	require.Equal(t, summer, m.IntervalAt(summer.End-1))
}

func TestAlternatingMap_Extremes(t *testing.T) {
	m := pacificTail(t)

	first := m.IntervalAt(StartOfTime)
	require.Equal(t, StartOfTime, first.Start)
	require.Equal(t, utc(2007, 3, 11, 10, 0), first.End)
	require.Equal(t, "PST", first.Name)

	last := m.IntervalAt(EndOfTime)
	require.Equal(t, EndOfTime, last.End)
	require.Equal(t, "PST", last.Name)
	require.Equal(t, last, m.IntervalAt(EndOfTime-1))
	require.True(t, last.Contains(EndOfTime-1))
}

func TestAlternatingMap_Coverage(t *testing.T) {
	requireCoverage(t, pacificTail(t), utc(2200, 1, 1, 0, 0))
}

func TestAlternatingMap_SouthernHemisphere(t *testing.T) {
	// Daylight time spans the turn of the year.
	std := Recurrence{
		Name: "AEST", YearOffset: YearOffset{Month: 4, DayOfMonth: 1, DayOfWeek: 7, AdvanceDayOfWeek: true, TimeOfDay: 3 * 3600},
		FromYear: 2008, ToYear: MaxYear,
	}
	dst := Recurrence{
		Name: "AEDT", Savings: HoursMinutes(1, 0),
		YearOffset: YearOffset{Month: 10, DayOfMonth: 1, DayOfWeek: 7, AdvanceDayOfWeek: true, TimeOfDay: 2 * 3600},
		FromYear:   2008, ToYear: MaxYear,
	}
	m, err := NewAlternatingMap(HoursMinutes(10, 0), dst, std)
	require.NoError(t, err)

	iv := m.IntervalAt(utc(2024, 1, 15, 0, 0))
	require.Equal(t, "AEDT", iv.Name)
	require.Equal(t, HoursMinutes(11, 0), iv.Wall)
	// 2023-10-01 02:00 AEST and 2024-04-07 03:00 AEDT.
	require.Equal(t, utc(2023, 9, 30, 16, 0), iv.Start)
	require.Equal(t, utc(2024, 4, 6, 16, 0), iv.End)

	requireCoverage(t, m, utc(2100, 1, 1, 0, 0))
}

func TestNewAlternatingMap_Errors(t *testing.T) {
	std, dst := pacificRules()
	pst := HoursMinutes(-8, 0)

	finite := dst
	finite.ToYear = 2030
	_, err := NewAlternatingMap(pst, std, finite)
	require.ErrorIs(t, err, errs.ErrUnsupportedTail)

	_, err = NewAlternatingMap(pst, std, std)
	require.ErrorIs(t, err, errs.ErrUnsupportedTail)

	_, err = NewAlternatingMap(pst, dst, dst)
	require.ErrorIs(t, err, errs.ErrUnsupportedTail)

	_, err = NewAlternatingMap(MaxOffset+1, std, dst)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)

	m, err := NewAlternatingMap(pst, dst, std)
	require.NoError(t, err)
	gotStd, gotDst := m.Recurrences()
	require.Equal(t, std, gotStd)
	require.Equal(t, dst, gotDst)
	require.Equal(t, pst, m.Standard())
}
