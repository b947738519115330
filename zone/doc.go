// Package zone models a time zone as a sequence of intervals of constant offset.
//
// The time line is measured in Instant seconds since the Unix epoch, with StartOfTime
// and EndOfTime standing for its open ends. A zone splits the time line into
// contiguous, non-overlapping Intervals; each carries the wall offset, the standard
// offset and the display name in force.
//
// # Maps
//
// Map is the query interface. Its implementations form a closed set:
//
//   - Fixed: one interval over all time
//   - Precomputed: explicit intervals followed by an optional AlternatingMap tail
//   - AlternatingMap: standard and daylight time driven by two infinite recurrences
//   - Composite: delegates by date to other maps
//   - Cached: a lock-free cache in front of any other map
//
// All maps are immutable and safe for concurrent use.
//
// # Recurrences
//
// A Recurrence produces at most one transition per year. It is evaluated with pure
// functions: OccurrenceForYear and TransitionForYear compute a single year, Next and
// PreviousOrSame find the transition adjacent to an instant. Nothing ever enumerates
// the infinite future.
//
// # Local time
//
// MatchLocal and Candidates map a wall-clock reading onto the intervals whose local
// span contains it. Zero matches means the reading was skipped by a forward clock
// change; two means it occurred twice. The resolve package turns these outcomes into
// a single instant.
package zone
