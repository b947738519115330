package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/zone"
)

func utc(year, month, day, hour, minute int) zone.Instant {
	return zone.InstantOf(time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC))
}

// pacific returns Los Angeles with local mean time, one standard-time interval and
// the alternating tail from 2007.
func pacific(t *testing.T) *zone.Precomputed {
	t.Helper()

	pst := zone.HoursMinutes(-8, 0)
	std := zone.Recurrence{
		Name: "PST", FromYear: 2007, ToYear: zone.MaxYear,
		YearOffset: zone.YearOffset{Mode: format.ModeWall, Month: 11, DayOfMonth: 1, DayOfWeek: 7, AdvanceDayOfWeek: true, TimeOfDay: 7200},
	}
	dst := zone.Recurrence{
		Name: "PDT", Savings: zone.HoursMinutes(1, 0), FromYear: 2007, ToYear: zone.MaxYear,
		YearOffset: zone.YearOffset{Mode: format.ModeWall, Month: 3, DayOfMonth: 8, DayOfWeek: 7, AdvanceDayOfWeek: true, TimeOfDay: 7200},
	}
	tail, err := zone.NewAlternatingMap(pst, std, dst)
	require.NoError(t, err)

	lmtEnd, tailStart := utc(1883, 11, 18, 20, 0), utc(2007, 3, 11, 10, 0)
	p, err := zone.NewPrecomputed([]zone.Interval{
		{Start: zone.StartOfTime, End: lmtEnd, Wall: -28378, Standard: -28378, Name: "LMT"},
		{Start: lmtEnd, End: tailStart, Wall: pst, Standard: pst, Name: "PST"},
	}, tail)
	require.NoError(t, err)

	return p
}

// kolkata is a composite of local mean time and a fixed standard offset.
func kolkata(t *testing.T) *zone.Composite {
	t.Helper()

	lmt, err := zone.FixedOffset("LMT", 21208)
	require.NoError(t, err)
	ist, err := zone.FixedOffset("IST", zone.HoursMinutes(5, 30))
	require.NoError(t, err)

	c, err := zone.NewComposite([]zone.Part{
		{Start: zone.StartOfTime, Map: lmt},
		{Start: utc(1941, 9, 30, 18, 6), Map: ist},
	})
	require.NoError(t, err)

	return c
}

func newTestWriter(t *testing.T, opts ...Option) *Writer {
	t.Helper()

	w, err := NewWriter(opts...)
	require.NoError(t, err)

	w.SetVersion("2024a")
	require.NoError(t, w.AddZone("America/Los_Angeles", pacific(t)))
	require.NoError(t, w.AddZone("Asia/Kolkata", kolkata(t)))
	require.NoError(t, w.AddZone("Etc/UTC", zone.UTC))
	require.NoError(t, w.AddAliases(map[string]string{
		"US/Pacific":    "America/Los_Angeles",
		"Asia/Calcutta": "Asia/Kolkata",
		"UTC":           "Etc/UTC",
	}))
	w.AddPlatformIDs(map[string]string{
		"Pacific Standard Time": "America/Los_Angeles",
		"India Standard Time":   "Asia/Kolkata",
	})

	return w
}

func encodeTestStream(t *testing.T, opts ...Option) []byte {
	t.Helper()

	data, err := newTestWriter(t, opts...).Bytes()
	require.NoError(t, err)

	return data
}

// queryPoints returns instants around the transitions of the test zones.
func queryPoints() []zone.Instant {
	out := []zone.Instant{zone.StartOfTime, zone.EndOfTime, utc(1883, 11, 18, 19, 59), utc(1941, 9, 30, 18, 6)}
	for year := 1850; year <= 2150; year += 3 {
		out = append(out, utc(year, 3, 15, 12, 0), utc(year, 11, 5, 12, 0))
	}

	return out
}
