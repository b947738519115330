package resolve

import (
	"fmt"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/zone"
)

// Error rejects an ambiguous or skipped reading. It matches errs.ErrAmbiguousLocalTime
// or errs.ErrSkippedLocalTime with errors.Is.
type Error struct {
	Kind    Kind
	Local   zone.LocalInstant
	Earlier zone.Interval
	Later   zone.Interval
}

func newError(mp Mapping) *Error {
	return &Error{Kind: mp.Kind, Local: mp.Local, Earlier: mp.Earlier, Later: mp.Later}
}

func (e *Error) Error() string {
	if e.Kind == Skipped {
		return fmt.Sprintf("%v: %s falls in the gap between %s and %s",
			e.Unwrap(), e.Local, e.Earlier.Name, e.Later.Name)
	}

	return fmt.Sprintf("%v: %s occurs in both %s and %s", e.Unwrap(), e.Local, e.Earlier.Name, e.Later.Name)
}

func (e *Error) Unwrap() error {
	if e.Kind == Skipped {
		return errs.ErrSkippedLocalTime
	}

	return errs.ErrAmbiguousLocalTime
}
