package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
)

func TestFieldHeader_AppendParse(t *testing.T) {
	cases := []FieldHeader{
		{Kind: format.FieldStringPool, Length: 0},
		{Kind: format.FieldTimeZone, Length: 127},
		{Kind: format.FieldVersion, Length: 128},
		{Kind: format.FieldKind(0x42), Length: 70000},
	}

	for _, h := range cases {
		data := h.Bytes()
		require.Len(t, data, h.Size())

		data = append(data, make([]byte, h.Length)...)

		var got FieldHeader
		n, err := got.Parse(data)
		require.NoError(t, err)
		require.Equal(t, h, got)
		require.Equal(t, h.Size(), n)
	}
}

func TestFieldHeader_ParseErrors(t *testing.T) {
	var h FieldHeader

	_, err := h.Parse([]byte{byte(format.FieldVersion)})
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = h.Parse([]byte{byte(format.FieldVersion), 0x80})
	require.ErrorIs(t, err, errs.ErrTruncated)

	// Declares 4 bytes, carries 3.
	_, err = h.Parse([]byte{byte(format.FieldVersion), 4, 'a', 'b', 'c'})
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = h.Parse([]byte{byte(format.FieldVersion), 0xff, 0xff, 0xff, 0xff, 0x7f})
	require.ErrorIs(t, err, errs.ErrMalformedVarint)
}

func TestFields_Iterate(t *testing.T) {
	var data []byte
	data = AppendField(data, format.FieldVersion, []byte("2024a"))
	data = AppendField(data, format.FieldKind(0x30), []byte{1, 2, 3})
	data = AppendField(data, format.FieldStringPool, nil)

	var kinds []format.FieldKind
	var offsets []int
	for f, err := range Fields(data, 10) {
		require.NoError(t, err)
		kinds = append(kinds, f.Kind)
		offsets = append(offsets, f.Offset)
		require.Len(t, f.Payload, f.Length)
		require.Equal(t, data[f.Offset-10:f.Offset-10+len(f.Raw)], f.Raw)
	}

	require.Equal(t, []format.FieldKind{format.FieldVersion, 0x30, format.FieldStringPool}, kinds)
	require.Equal(t, []int{10, 17, 22}, offsets)
}

func TestFields_PayloadOffset(t *testing.T) {
	data := AppendField(nil, format.FieldVersion, []byte("x"))
	for f, err := range Fields(data, 100) {
		require.NoError(t, err)
		require.Equal(t, 102, f.PayloadOffset())
	}
}

func TestFields_StopsOnError(t *testing.T) {
	data := AppendField(nil, format.FieldVersion, []byte("ok"))
	data = append(data, byte(format.FieldVersion), 9, 'x')

	count := 0
	var lastErr error
	for f, err := range Fields(data, 0) {
		if err != nil {
			lastErr = err
			require.Equal(t, 4, f.Offset)
			continue
		}
		count++
	}

	require.Equal(t, 1, count)
	require.ErrorIs(t, lastErr, errs.ErrTruncated)
}
