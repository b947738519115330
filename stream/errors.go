package stream

import (
	"fmt"

	"github.com/arloliu/zonemap/format"
)

// DecodeError reports where decoding failed.
//
// Offset is the position of the record within its sequence. Records inside a
// Compressed envelope report positions within the decompressed sequence, and Nested
// is set.
type DecodeError struct {
	Offset int
	Kind   format.FieldKind
	Nested bool
	Err    error
}

func (e *DecodeError) Error() string {
	where := "stream"
	if e.Nested {
		where = "compressed sequence"
	}

	return fmt.Sprintf("%s: %s field at offset %d: %v", where, e.Kind, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
