package encoding

import (
	"fmt"

	"github.com/arloliu/zonemap/encoding"
)

// IDPair is one entry of an id map: a non-canonical or platform id and its target.
type IDPair struct {
	Key   string
	Value string
}

// EncodeIDMap writes an id map payload: uvarint count followed by pooled key and
// value indices, in the given order.
func EncodeIDMap(w *encoding.Writer, pool *StringPool, pairs []IDPair) error {
	w.WriteUvarint(uint64(len(pairs)))
	for i, p := range pairs {
		if err := WritePooled(w, pool, p.Key); err != nil {
			return fmt.Errorf("id map entry %d key: %w", i, err)
		}
		if err := WritePooled(w, pool, p.Value); err != nil {
			return fmt.Errorf("id map entry %d value: %w", i, err)
		}
	}

	return nil
}

// DecodeIDMap reads a payload written by EncodeIDMap, resolving indices against strings.
func DecodeIDMap(r *encoding.Reader, strings []string) ([]IDPair, error) {
	count, err := r.ReadLength("id map count", 2)
	if err != nil {
		return nil, err
	}

	pairs := make([]IDPair, count)
	for i := range pairs {
		if pairs[i].Key, err = ReadPooled(r, strings); err != nil {
			return nil, err
		}
		if pairs[i].Value, err = ReadPooled(r, strings); err != nil {
			return nil, err
		}
	}

	return pairs, nil
}
