package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/errs"
)

func encodeTransitions(t *testing.T, instants []int64) []byte {
	t.Helper()

	w := NewWriter()
	t.Cleanup(w.Finish)

	enc := NewTransitionDeltaEncoder(w)
	require.NoError(t, enc.WriteSlice(instants))
	require.Equal(t, len(instants), enc.Len())

	return append([]byte(nil), w.Bytes()...)
}

func TestTransitionDelta_RoundTrip(t *testing.T) {
	cases := map[string][]int64{
		"single":         {1_700_000_000},
		"negative first": {-2_717_640_000, -1_633_269_600, -1_615_129_200},
		"dst pairs":      {1_678_615_200, 1_699_174_800, 1_710_064_800, 1_730_624_400},
		"extremes":       {math.MinInt64, 0, math.MaxInt64},
	}

	for name, instants := range cases {
		t.Run(name, func(t *testing.T) {
			data := encodeTransitions(t, instants)

			r := NewReader(data)
			got, err := NewTransitionDeltaDecoder(r).Decode(len(instants))
			require.NoError(t, err)
			require.Equal(t, instants, got)
			require.True(t, r.Done())
		})
	}
}

func TestTransitionDelta_Compact(t *testing.T) {
	// Half-year gaps fit in four bytes each.
	instants := []int64{1_678_615_200, 1_699_174_800, 1_710_064_800, 1_730_624_400}
	data := encodeTransitions(t, instants)
	require.LessOrEqual(t, len(data), 5+3*4)
}

func TestTransitionDelta_RejectsNonIncreasing(t *testing.T) {
	w := NewWriter()
	defer w.Finish()

	enc := NewTransitionDeltaEncoder(w)
	require.NoError(t, enc.Write(100))
	require.ErrorIs(t, enc.Write(100), errs.ErrInvalidInterval)
	require.ErrorIs(t, enc.Write(50), errs.ErrInvalidInterval)
	require.Equal(t, 1, enc.Len())
	require.Equal(t, int64(100), enc.Last())
}

func TestTransitionDelta_DecodeErrors(t *testing.T) {
	t.Run("zero gap", func(t *testing.T) {
		_, err := NewTransitionDeltaDecoder(NewReader([]byte{2, 0})).Decode(2)
		require.ErrorIs(t, err, errs.ErrMalformedField)
	})

	t.Run("overflowing gap", func(t *testing.T) {
		w := NewWriter()
		defer w.Finish()
		w.WriteVarint(math.MaxInt64 - 1)
		w.WriteUvarint(2)

		_, err := NewTransitionDeltaDecoder(NewReader(w.Bytes())).Decode(2)
		require.ErrorIs(t, err, errs.ErrMalformedField)
	})

	t.Run("count exceeds payload", func(t *testing.T) {
		_, err := NewTransitionDeltaDecoder(NewReader([]byte{2, 1})).Decode(3)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("truncated gap", func(t *testing.T) {
		_, err := NewTransitionDeltaDecoder(NewReader([]byte{2, 0x80, 0x80})).Decode(2)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}

func TestTransitionDelta_AllStopsEarly(t *testing.T) {
	data := encodeTransitions(t, []int64{10, 20, 30, 40})

	var got []int64
	for v, err := range NewTransitionDeltaDecoder(NewReader(data)).All(4) {
		require.NoError(t, err)
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []int64{10, 20}, got)
}

func TestTransitionDelta_DecodeZeroCount(t *testing.T) {
	got, err := NewTransitionDeltaDecoder(NewReader(nil)).Decode(0)
	require.NoError(t, err)
	require.Nil(t, got)
}
