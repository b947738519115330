package encoding

import (
	"fmt"

	"github.com/arloliu/zonemap/encoding"
	"github.com/arloliu/zonemap/errs"
)

// StringPool assigns stable indices to distinct strings in insertion order.
//
// Note: StringPool is NOT thread-safe.
type StringPool struct {
	strings []string
	index   map[string]int
}

// NewStringPool creates an empty pool.
func NewStringPool() *StringPool {
	return &StringPool{index: make(map[string]int)}
}

// Add returns the index of s, inserting it if it is not pooled yet.
func (p *StringPool) Add(s string) int {
	if i, ok := p.index[s]; ok {
		return i
	}

	i := len(p.strings)
	p.strings = append(p.strings, s)
	p.index[s] = i

	return i
}

// Index returns the index of s and whether it is pooled.
func (p *StringPool) Index(s string) (int, bool) {
	i, ok := p.index[s]
	return i, ok
}

// Len returns the number of pooled strings.
func (p *StringPool) Len() int {
	return len(p.strings)
}

// Strings returns the pooled strings in index order. The slice must not be modified.
func (p *StringPool) Strings() []string {
	return p.strings
}

// EncodeStringPool writes a string pool payload: uvarint count followed by that many
// length-prefixed strings.
func EncodeStringPool(w *encoding.Writer, strings []string) error {
	w.WriteUvarint(uint64(len(strings)))
	for i, s := range strings {
		if err := w.WriteString(s); err != nil {
			return fmt.Errorf("pool string %d: %w", i, err)
		}
	}

	return nil
}

// DecodeStringPool reads a payload written by EncodeStringPool.
func DecodeStringPool(r *encoding.Reader) ([]string, error) {
	// Every string takes at least its one-byte length prefix.
	count, err := r.ReadLength("pool count", 1)
	if err != nil {
		return nil, err
	}

	strings := make([]string, count)
	for i := range strings {
		if strings[i], err = r.ReadString(); err != nil {
			return nil, err
		}
	}

	return strings, nil
}

// WritePooled writes the pool index of s. The string must already be pooled.
func WritePooled(w *encoding.Writer, pool *StringPool, s string) error {
	i, ok := pool.Index(s)
	if !ok {
		return fmt.Errorf("%w: %q is not pooled", errs.ErrPoolIndex, s)
	}
	w.WriteUvarint(uint64(i)) //nolint:gosec

	return nil
}

// ReadPooled reads a pool index and returns the referenced string.
func ReadPooled(r *encoding.Reader, strings []string) (string, error) {
	at := r.Offset()
	i, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	if i >= uint64(len(strings)) {
		return "", fmt.Errorf("%w: index %d at offset %d, pool has %d strings", errs.ErrPoolIndex, i, at, len(strings))
	}

	return strings[i], nil
}
