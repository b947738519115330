package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.MustWrite([]byte("ab"))
	require.NoError(t, bb.WriteByte('c'))
	n, err := bb.WriteString("de")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = bb.Write([]byte("f"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.Equal(t, []byte("abcdef"), bb.Bytes())

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), written)
	require.Equal(t, "abcdef", out.String())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(FieldBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no growth when capacity suffices", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, bb.Cap())
	})

	t.Run("small buffers grow by fixed increment", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.MustWrite(make([]byte, 16))
		bb.Grow(1)
		require.GreaterOrEqual(t, bb.Cap(), 16+growSmallBufferIncrement)
		require.Equal(t, 16, bb.Len())
	})

	t.Run("large requests are honoured", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(1 << 20)
		require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1<<20)
	})

	t.Run("growth keeps content", func(t *testing.T) {
		bb := NewByteBuffer(2)
		bb.MustWrite([]byte("xy"))
		bb.Grow(100)
		require.Equal(t, []byte("xy"), bb.Bytes())
	})
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are reset", func(t *testing.T) {
		p := NewByteBufferPool(128, 1024)
		bb := p.Get()
		bb.MustWrite([]byte("payload"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		bb := p.Get()
		bb.Grow(1024)
		p.Put(bb) // must not panic, buffer discarded
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		p.Put(nil)
	})

	t.Run("concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					bb := GetFieldBuffer()
					bb.MustWrite([]byte("zone"))
					PutFieldBuffer(bb)

					sb := GetStreamBuffer()
					sb.MustWrite([]byte("stream"))
					PutStreamBuffer(sb)
				}
			}()
		}
		wg.Wait()
	})
}
