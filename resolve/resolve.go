package resolve

import (
	"github.com/arloliu/zonemap/zone"
)

// Kind classifies how a local reading maps onto a zone.
type Kind uint8

const (
	Unique Kind = iota
	Ambiguous
	Skipped
)

func (k Kind) String() string {
	switch k {
	case Unique:
		return "Unique"
	case Ambiguous:
		return "Ambiguous"
	case Skipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Mapping is the classification of one local reading.
//
// For Unique, Earlier and Later are the same interval. For Ambiguous they are the
// intervals of the first and second occurrence. For Skipped, Earlier ends where the
// gap starts and Later starts after it.
type Mapping struct {
	Local   zone.LocalInstant
	Kind    Kind
	Earlier zone.Interval
	Later   zone.Interval
}

// Map classifies local against m.
func Map(m zone.Map, local zone.LocalInstant) Mapping {
	match := zone.MatchLocal(m, local)

	switch len(match.Matches) {
	case 0:
		return Mapping{Local: local, Kind: Skipped, Earlier: match.Before, Later: match.After}
	case 1:
		iv := match.Matches[0]
		return Mapping{Local: local, Kind: Unique, Earlier: iv, Later: iv}
	default:
		return Mapping{
			Local:   local,
			Kind:    Ambiguous,
			Earlier: match.Matches[0],
			Later:   match.Matches[len(match.Matches)-1],
		}
	}
}

// Gap returns the width of the skipped range, or zero for other kinds.
func (mp Mapping) Gap() zone.Offset {
	if mp.Kind != Skipped {
		return 0
	}

	return mp.Later.Wall - mp.Earlier.Wall
}

// Results returns every valid instant for the reading: none when skipped, one when
// unique and two when ambiguous.
func (mp Mapping) Results() []Result {
	switch mp.Kind {
	case Unique:
		return []Result{resultIn(mp.Earlier, mp.Local)}
	case Ambiguous:
		return []Result{resultIn(mp.Earlier, mp.Local), resultIn(mp.Later, mp.Local)}
	default:
		return nil
	}
}

func resultIn(iv zone.Interval, local zone.LocalInstant) Result {
	return Result{Instant: local.Minus(iv.Wall), Interval: iv}
}

// Result is a resolved instant together with the interval in force at it.
type Result struct {
	Instant  zone.Instant
	Interval zone.Interval
}

// Offset returns the wall offset in force at the instant.
func (r Result) Offset() zone.Offset {
	return r.Interval.Wall
}

// Local returns the wall-clock reading of the instant.
func (r Result) Local() zone.LocalInstant {
	return r.Instant.Plus(r.Interval.Wall)
}

// ResolveAll returns every valid instant for local in m, in order.
func ResolveAll(m zone.Map, local zone.LocalInstant) []Result {
	return Map(m, local).Results()
}
