package resolve

import (
	"fmt"

	"github.com/arloliu/zonemap/zone"
)

// AmbiguityPolicy picks one of two occurrences of a reading.
type AmbiguityPolicy uint8

const (
	// Earlier picks the first occurrence, before the clocks went back.
	Earlier AmbiguityPolicy = iota
	// Later picks the second occurrence, after the clocks went back.
	Later
	// RejectAmbiguous fails with an *Error.
	RejectAmbiguous
)

// SkipPolicy substitutes an instant for a reading that never occurred.
type SkipPolicy uint8

const (
	// ShiftForward reads the local time with the offset before the gap, which moves
	// it forward by the gap width: 02:30 in a one-hour spring gap becomes 03:30.
	ShiftForward SkipPolicy = iota
	// ShiftBackward moves the reading back by the gap width: 02:30 becomes 01:30.
	ShiftBackward
	// StartOfIntervalAfter returns the first instant after the gap.
	StartOfIntervalAfter
	// EndOfIntervalBefore returns the last instant before the gap.
	EndOfIntervalBefore
	// RejectSkipped fails with an *Error.
	RejectSkipped
)

// Resolver reduces a Mapping to one instant.
type Resolver struct {
	Ambiguous AmbiguityPolicy
	Skipped   SkipPolicy
}

var (
	// Strict rejects ambiguous and skipped readings.
	Strict = Resolver{Ambiguous: RejectAmbiguous, Skipped: RejectSkipped}
	// Lenient never fails: earlier occurrence, shift forward over gaps.
	Lenient = Resolver{Ambiguous: Earlier, Skipped: ShiftForward}
)

// Resolve maps local onto m and applies the policies.
func (r Resolver) Resolve(m zone.Map, local zone.LocalInstant) (Result, error) {
	return r.ResolveMapping(m, Map(m, local))
}

// ResolveDateTime validates ldt and resolves it.
func (r Resolver) ResolveDateTime(m zone.Map, ldt zone.LocalDateTime) (Result, error) {
	if err := ldt.Validate(); err != nil {
		return Result{}, err
	}

	return r.Resolve(m, ldt.LocalInstant())
}

// ResolveMapping applies the policies to an existing classification. m is consulted
// only to find the interval of a substituted instant.
func (r Resolver) ResolveMapping(m zone.Map, mp Mapping) (Result, error) {
	switch mp.Kind {
	case Unique:
		return resultIn(mp.Earlier, mp.Local), nil
	case Ambiguous:
		return r.resolveAmbiguous(mp)
	default:
		return r.resolveSkipped(m, mp)
	}
}

func (r Resolver) resolveAmbiguous(mp Mapping) (Result, error) {
	switch r.Ambiguous {
	case Earlier:
		return resultIn(mp.Earlier, mp.Local), nil
	case Later:
		return resultIn(mp.Later, mp.Local), nil
	case RejectAmbiguous:
		return Result{}, newError(mp)
	default:
		return Result{}, fmt.Errorf("resolve: unknown ambiguity policy %d", r.Ambiguous)
	}
}

func (r Resolver) resolveSkipped(m zone.Map, mp Mapping) (Result, error) {
	var at zone.Instant
	switch r.Skipped {
	case ShiftForward:
		at = mp.Local.Minus(mp.Earlier.Wall)
	case ShiftBackward:
		at = mp.Local.Add(-int64(mp.Gap())).Minus(mp.Earlier.Wall)
	case StartOfIntervalAfter:
		at = mp.Later.Start
	case EndOfIntervalBefore:
		at = mp.Earlier.End.Add(-1)
	case RejectSkipped:
		return Result{}, newError(mp)
	default:
		return Result{}, fmt.Errorf("resolve: unknown skip policy %d", r.Skipped)
	}

	return Result{Instant: at, Interval: m.IntervalAt(at)}, nil
}
