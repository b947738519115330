package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/zonemap/errs"
)

// TransitionDeltaEncoder writes a strictly increasing sequence of instants as first
// differences.
//
// The first instant is written as a zigzag varint; every following instant as the
// unsigned gap to its predecessor. Gaps must be positive, so a zero or negative gap is
// rejected rather than encoded.
type TransitionDeltaEncoder struct {
	w     *Writer
	prev  int64
	count int
}

// NewTransitionDeltaEncoder creates an encoder appending to w.
func NewTransitionDeltaEncoder(w *Writer) *TransitionDeltaEncoder {
	return &TransitionDeltaEncoder{w: w}
}

// Write appends a single instant.
//
// Returns:
//   - error: ErrInvalidInterval if instant is not greater than the previous one
func (e *TransitionDeltaEncoder) Write(instant int64) error {
	if e.count == 0 {
		e.w.WriteVarint(instant)
		e.prev = instant
		e.count++

		return nil
	}

	if instant <= e.prev {
		return fmt.Errorf("%w: transition %d at index %d does not follow %d",
			errs.ErrInvalidInterval, instant, e.count, e.prev)
	}

	e.w.WriteUvarint(uint64(instant) - uint64(e.prev)) //nolint:gosec
	e.prev = instant
	e.count++

	return nil
}

// WriteSlice appends all instants in order.
func (e *TransitionDeltaEncoder) WriteSlice(instants []int64) error {
	for _, t := range instants {
		if err := e.Write(t); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of instants written.
func (e *TransitionDeltaEncoder) Len() int {
	return e.count
}

// Last returns the most recently written instant. It is meaningless when Len is zero.
func (e *TransitionDeltaEncoder) Last() int64 {
	return e.prev
}

// TransitionDeltaDecoder reads instants written by TransitionDeltaEncoder.
type TransitionDeltaDecoder struct {
	r *Reader
}

// NewTransitionDeltaDecoder creates a decoder reading from r.
func NewTransitionDeltaDecoder(r *Reader) TransitionDeltaDecoder {
	return TransitionDeltaDecoder{r: r}
}

// Decode reads count instants.
//
// Returns:
//   - []int64: the decoded instants, strictly increasing
//   - error: a Reader error, or ErrMalformedField if a gap is zero or overflows int64
func (d TransitionDeltaDecoder) Decode(count int) ([]int64, error) {
	if count <= 0 {
		return nil, nil
	}

	// Every instant takes at least one byte.
	if count > d.r.Remaining() {
		return nil, fmt.Errorf("%w: %d transitions at offset %d exceeds remaining %d bytes",
			errs.ErrTruncated, count, d.r.Offset(), d.r.Remaining())
	}

	out := make([]int64, 0, count)
	for t, err := range d.All(count) {
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}

// All returns an iterator over count decoded instants. Iteration stops after the first
// error, which is yielded together with a zero instant.
func (d TransitionDeltaDecoder) All(count int) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		if count <= 0 {
			return
		}

		first, err := d.r.ReadVarint()
		if err != nil {
			yield(0, err)
			return
		}
		if !yield(first, nil) {
			return
		}

		cur := first
		for i := 1; i < count; i++ {
			at := d.r.Offset()
			gap, err := d.r.ReadUvarint()
			if err != nil {
				yield(0, err)
				return
			}
			if gap == 0 || gap > uint64(math.MaxInt64)-uint64(cur) { //nolint:gosec
				yield(0, fmt.Errorf("%w: transition gap %d at offset %d", errs.ErrMalformedField, gap, at))
				return
			}
			cur += int64(gap) //nolint:gosec
			if !yield(cur, nil) {
				return
			}
		}
	}
}
