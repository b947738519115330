package zone

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/errs"
)

func TestNewOffset(t *testing.T) {
	o, err := NewOffset(18 * 3600)
	require.NoError(t, err)
	require.Equal(t, MaxOffset, o)

	_, err = NewOffset(-18 * 3600)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)

	_, err = NewOffset(18*3600 + 1)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)

	o, err = NewOffset(-18*3600 + 1)
	require.NoError(t, err)
	require.True(t, o.Valid())
}

func TestOffset_String(t *testing.T) {
	require.Equal(t, "+00:00", UTCOffset.String())
	require.Equal(t, "-08:00", HoursMinutes(-8, 0).String())
	require.Equal(t, "+05:30", HoursMinutes(5, 30).String())
	require.Equal(t, "-03:30", HoursMinutes(-3, 30).String())
	require.Equal(t, "-07:52:58", Offset(-28378).String())
}

func TestInstant_PlusMinus(t *testing.T) {
	pst := HoursMinutes(-8, 0)
	at := utc(2024, 1, 15, 20, 0)

	l := at.Plus(pst)
	require.Equal(t, local(2024, 1, 15, 12, 0), l)
	require.Equal(t, at, l.Minus(pst))

	require.Equal(t, MinLocal, StartOfTime.Plus(pst))
	require.Equal(t, MaxLocal, EndOfTime.Plus(pst))
	require.Equal(t, StartOfTime, MinLocal.Minus(pst))
	require.Equal(t, EndOfTime, MaxLocal.Minus(pst))

	// Values next to the sentinels saturate instead of wrapping.
	require.Equal(t, MaxLocal, (EndOfTime - 1).Plus(HoursMinutes(1, 0)))
	require.Equal(t, EndOfTime, (EndOfTime - 10).Add(100))
	require.Equal(t, StartOfTime, StartOfTime.Add(100))
	require.Equal(t, MinLocal, (MinLocal + 1).Add(-100))
}

func TestInstant_String(t *testing.T) {
	require.Equal(t, "StartOfTime", StartOfTime.String())
	require.Equal(t, "EndOfTime", EndOfTime.String())
	require.Equal(t, "2024-03-10T10:00:00Z", utc(2024, 3, 10, 10, 0).String())
}

func TestLocalDateTime(t *testing.T) {
	ldt, err := NewLocalDateTime(2024, 2, 29, 23, 59, 59)
	require.NoError(t, err)
	require.Equal(t, "2024-02-29T23:59:59", ldt.String())
	require.Equal(t, ldt, ldt.LocalInstant().DateTime())

	before := LocalDateTime{Year: 1900, Month: 1, Day: 1}
	require.Equal(t, before, before.LocalInstant().DateTime())
	require.Negative(t, int64(before.LocalInstant()))

	invalid := [][6]int{
		{2023, 2, 29, 0, 0, 0},
		{2024, 13, 1, 0, 0, 0},
		{2024, 1, 0, 0, 0, 0},
		{2024, 1, 1, 24, 0, 0},
		{2024, 1, 1, 0, 60, 0},
		{2024, 1, 1, 0, 0, 60},
		{10000, 1, 1, 0, 0, 0},
	}
	for _, f := range invalid {
		_, err := NewLocalDateTime(f[0], f[1], f[2], f[3], f[4], f[5])
		require.ErrorIs(t, err, errs.ErrInvalidLocal, "%v", f)
	}
}

func TestInterval(t *testing.T) {
	start, end := utc(2024, 3, 10, 10, 0), utc(2024, 11, 3, 9, 0)
	iv, err := NewInterval("PDT", start, end, HoursMinutes(-7, 0), HoursMinutes(-8, 0))
	require.NoError(t, err)

	require.Equal(t, HoursMinutes(1, 0), iv.Savings())
	require.True(t, iv.HasStart())
	require.True(t, iv.HasEnd())
	require.True(t, iv.Contains(start))
	require.False(t, iv.Contains(end))
	require.Equal(t, local(2024, 3, 10, 3, 0), iv.LocalStart())
	require.Equal(t, local(2024, 11, 3, 2, 0), iv.LocalEnd())
	require.True(t, iv.ContainsLocal(local(2024, 3, 10, 3, 0)))
	require.False(t, iv.ContainsLocal(local(2024, 3, 10, 2, 59)))
	require.False(t, iv.ContainsLocal(local(2024, 11, 3, 2, 0)))

	other := iv.WithStart(start - 1).WithEnd(end + 1)
	require.True(t, iv.SameRules(other))
	require.False(t, iv.Equal(other))
	require.True(t, iv.Equal(iv))

	_, err = NewInterval("bad", end, start, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidInterval)

	_, err = NewInterval("bad", start, end, MaxOffset+1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)
}

func TestInterval_OpenEnds(t *testing.T) {
	iv := Interval{Start: StartOfTime, End: EndOfTime, Name: "UTC"}
	require.False(t, iv.HasStart())
	require.False(t, iv.HasEnd())
	require.True(t, iv.ContainsLocal(MinLocal))
	require.True(t, iv.ContainsLocal(MaxLocal))
	require.True(t, iv.Contains(StartOfTime))
}
