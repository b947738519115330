package registry

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/zone"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingSource counts LoadZone calls per id.
type countingSource struct {
	*MapSource
	loads sync.Map // id -> *atomic.Int64
	fail  error
}

func (s *countingSource) LoadZone(id string) (zone.Map, error) {
	n, _ := s.loads.LoadOrStore(id, new(atomic.Int64))
	n.(*atomic.Int64).Add(1) //nolint:forcetypeassert
	if s.fail != nil {
		return nil, s.fail
	}

	return s.MapSource.LoadZone(id)
}

func (s *countingSource) count(id string) int64 {
	n, ok := s.loads.Load(id)
	if !ok {
		return 0
	}

	return n.(*atomic.Int64).Load() //nolint:forcetypeassert
}

func testSource(t *testing.T) *countingSource {
	t.Helper()

	kolkata, err := zone.FixedOffset("IST", zone.HoursMinutes(5, 30))
	require.NoError(t, err)
	tokyo, err := zone.FixedOffset("JST", zone.HoursMinutes(9, 0))
	require.NoError(t, err)

	return &countingSource{MapSource: NewMapSource("2024a",
		map[string]zone.Map{"Asia/Kolkata": kolkata, "Asia/Tokyo": tokyo},
		map[string]string{"Asia/Calcutta": "Asia/Kolkata", "Japan": "Asia/Tokyo", "Broken": "Nowhere"},
		map[string]string{"India Standard Time": "Asia/Kolkata"},
	)}
}

func TestRegistry_Lookup(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := testSource(t)
	r, err := New(src, WithLogger(logger))
	require.NoError(t, err)

	require.Equal(t, "2024a", r.Version())
	require.Equal(t, []string{"Asia/Kolkata", "Asia/Tokyo"}, r.CanonicalIDs())
	require.Equal(t, []string{"Asia/Calcutta", "Asia/Kolkata", "Asia/Tokyo", "Broken", "Japan"}, r.IDs())

	id, ok := r.CanonicalID("Japan")
	require.True(t, ok)
	require.Equal(t, "Asia/Tokyo", id)
	_, ok = r.CanonicalID("Broken")
	require.False(t, ok)

	tokyo, err := r.Zone("Asia/Tokyo")
	require.NoError(t, err)
	require.Equal(t, zone.HoursMinutes(9, 0), zone.OffsetAt(tokyo, 0))

	japan, err := r.Zone("Japan")
	require.NoError(t, err)
	require.Same(t, tokyo, japan)
	require.Equal(t, int64(1), src.count("Asia/Tokyo"))
	require.Equal(t, 1, r.Loaded())

	_, err = r.Zone("Mars/Olympus_Mons")
	require.ErrorIs(t, err, errs.ErrUnknownZone)
	_, err = r.Zone("Broken")
	require.ErrorIs(t, err, errs.ErrUnknownZone)

	require.Contains(t, logs.String(), "zone registry created")
	require.Contains(t, logs.String(), "zone loaded")
}

func TestRegistry_FixedIDs(t *testing.T) {
	src := testSource(t)
	r, err := New(src)
	require.NoError(t, err)

	tests := []struct {
		id   string
		want zone.Offset
	}{
		{"UTC", 0},
		{"UTC+05:30", zone.HoursMinutes(5, 30)},
		{"UTC-08", zone.HoursMinutes(-8, 0)},
		{"UTC+18", zone.HoursMinutes(18, 0)},
		{"UTC-03:30:15", -(3*3600 + 30*60 + 15)},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			m, err := r.Zone(tt.id)
			require.NoError(t, err)
			require.Equal(t, tt.want, zone.OffsetAt(m, 0))
			require.Equal(t, tt.id, zone.Name(m, 0))
		})
	}

	for _, bad := range []string{"UTC+5", "UTC+05:3", "UTC-18", "UTC+19", "UTC+05:60", "UTC+01:02:03:04", "UTC+aa"} {
		_, err := r.Zone(bad)
		require.ErrorIs(t, err, errs.ErrInvalidOffset, bad)
	}

	_, err = r.Zone("UTCX")
	require.ErrorIs(t, err, errs.ErrUnknownZone)
	require.Zero(t, r.Loaded())
}

func TestFixedID(t *testing.T) {
	require.Equal(t, "UTC", FixedID(0))
	require.Equal(t, "UTC+05:30", FixedID(zone.HoursMinutes(5, 30)))
	require.Equal(t, "UTC-08", FixedID(zone.HoursMinutes(-8, 0)))
	require.Equal(t, "UTC-00:00:15", FixedID(-15))

	for _, o := range []zone.Offset{zone.HoursMinutes(5, 45), zone.HoursMinutes(-9, 30), 3600, -1} {
		f, ok, err := ParseFixedID(FixedID(o))
		require.True(t, ok)
		require.NoError(t, err)
		require.Equal(t, o, f.Offset())
	}
}

func TestRegistry_PlatformIDs(t *testing.T) {
	r, err := New(testSource(t))
	require.NoError(t, err)

	id, err := r.PlatformID("India Standard Time")
	require.NoError(t, err)
	require.Equal(t, "Asia/Kolkata", id)

	m, err := r.ZoneForPlatformID("India Standard Time")
	require.NoError(t, err)
	require.Equal(t, "IST", zone.Name(m, 0))

	_, err = r.PlatformID("Mars Standard Time")
	require.ErrorIs(t, err, errs.ErrUnknownZone)

	bare, err := New(NewMapSource("", nil, nil, nil))
	require.NoError(t, err)
	_, err = bare.PlatformID("India Standard Time")
	require.ErrorIs(t, err, errs.ErrPlatformIDsUnsupported)
	require.Empty(t, bare.IDs())
}

func TestRegistry_LoadFailure(t *testing.T) {
	src := testSource(t)
	boom := errors.New("disk on fire")
	src.fail = boom

	r, err := New(src)
	require.NoError(t, err)

	_, err = r.Zone("Asia/Tokyo")
	require.ErrorIs(t, err, boom)

	// Failures are not memoised.
	_, err = r.Zone("Asia/Tokyo")
	require.ErrorIs(t, err, boom)
	require.Equal(t, int64(2), src.count("Asia/Tokyo"))
	require.Zero(t, r.Loaded())
}

func TestRegistry_CacheOptions(t *testing.T) {
	pst, err := zone.FixedOffset("PST", zone.HoursMinutes(-8, 0))
	require.NoError(t, err)
	pdt, err := zone.NewFixed("PDT", zone.HoursMinutes(-7, 0), zone.HoursMinutes(-8, 0))
	require.NoError(t, err)
	comp, err := zone.NewComposite([]zone.Part{{Start: zone.StartOfTime, Map: pst}, {Start: 1_000_000, Map: pdt}})
	require.NoError(t, err)

	src := NewMapSource("", map[string]zone.Map{"Test/Zone": comp}, nil, nil)

	cached, err := New(src, WithCacheOptions(zone.WithBucketCache(20)))
	require.NoError(t, err)
	m, err := cached.Zone("Test/Zone")
	require.NoError(t, err)
	require.IsType(t, &zone.Cached{}, m)
	require.Equal(t, comp.IntervalAt(2_000_000), m.IntervalAt(2_000_000))

	raw, err := New(src, WithoutCache())
	require.NoError(t, err)
	m, err = raw.Zone("Test/Zone")
	require.NoError(t, err)
	require.Same(t, comp, m)
}

func TestRegistry_ConcurrentLoadsShareOneInstance(t *testing.T) {
	src := testSource(t)
	r, err := New(src)
	require.NoError(t, err)

	const workers = 32
	results := make([]zone.Map, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			id := "Asia/Kolkata"
			if i%2 == 1 {
				id = "Asia/Calcutta"
			}
			m, err := r.Zone(id)
			if err == nil {
				results[i] = m
			}
		}()
	}
	close(start)
	wg.Wait()

	for i := range results {
		require.NotNil(t, results[i])
		require.Same(t, results[0], results[i])
	}
	require.GreaterOrEqual(t, src.count("Asia/Kolkata"), int64(1))
	require.Equal(t, 1, r.Loaded())
}

func TestRegistry_MustZone(t *testing.T) {
	r, err := New(testSource(t))
	require.NoError(t, err)

	require.NotPanics(t, func() { r.MustZone("UTC") })
	require.Panics(t, func() { r.MustZone("Nowhere") })
}
