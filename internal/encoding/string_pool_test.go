package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/encoding"
	"github.com/arloliu/zonemap/errs"
)

func TestStringPool_Add(t *testing.T) {
	p := NewStringPool()

	require.Equal(t, 0, p.Add("Europe/Paris"))
	require.Equal(t, 1, p.Add("CET"))
	require.Equal(t, 0, p.Add("Europe/Paris"))
	require.Equal(t, 2, p.Add("CEST"))

	require.Equal(t, 3, p.Len())
	require.Equal(t, []string{"Europe/Paris", "CET", "CEST"}, p.Strings())

	i, ok := p.Index("CEST")
	require.True(t, ok)
	require.Equal(t, 2, i)

	_, ok = p.Index("PST")
	require.False(t, ok)
}

func TestStringPool_EncodeDecode(t *testing.T) {
	strings := []string{"", "UTC", "America/New_York", "日本標準時"}

	w := encoding.NewWriter()
	defer w.Finish()
	require.NoError(t, EncodeStringPool(w, strings))

	r := encoding.NewReader(w.Bytes())
	got, err := DecodeStringPool(r)
	require.NoError(t, err)
	require.Equal(t, strings, got)
	require.True(t, r.Done())
}

func TestDecodeStringPool_Truncated(t *testing.T) {
	// Count 3 but only one string follows.
	_, err := DecodeStringPool(encoding.NewReader([]byte{3, 1, 'a', 0}))
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = DecodeStringPool(encoding.NewReader([]byte{9}))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestPooledReferences(t *testing.T) {
	p := NewStringPool()
	p.Add("PST")
	p.Add("PDT")

	w := encoding.NewWriter()
	defer w.Finish()
	require.NoError(t, WritePooled(w, p, "PDT"))
	require.ErrorIs(t, WritePooled(w, p, "MST"), errs.ErrPoolIndex)

	s, err := ReadPooled(encoding.NewReader(w.Bytes()), p.Strings())
	require.NoError(t, err)
	require.Equal(t, "PDT", s)

	_, err = ReadPooled(encoding.NewReader([]byte{2}), p.Strings())
	require.ErrorIs(t, err, errs.ErrPoolIndex)
}

func TestIDMap_EncodeDecode(t *testing.T) {
	pairs := []IDPair{
		{Key: "US/Pacific", Value: "America/Los_Angeles"},
		{Key: "Asia/Calcutta", Value: "Asia/Kolkata"},
		{Key: "US/Pacific-New", Value: "America/Los_Angeles"},
	}

	p := NewStringPool()
	for _, pair := range pairs {
		p.Add(pair.Key)
		p.Add(pair.Value)
	}

	w := encoding.NewWriter()
	defer w.Finish()
	require.NoError(t, EncodeIDMap(w, p, pairs))

	got, err := DecodeIDMap(encoding.NewReader(w.Bytes()), p.Strings())
	require.NoError(t, err)
	require.Equal(t, pairs, got)
}

func TestIDMap_UnpooledKey(t *testing.T) {
	w := encoding.NewWriter()
	defer w.Finish()

	err := EncodeIDMap(w, NewStringPool(), []IDPair{{Key: "a", Value: "b"}})
	require.ErrorIs(t, err, errs.ErrPoolIndex)
}
