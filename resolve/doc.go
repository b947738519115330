// Package resolve maps wall-clock readings onto instants.
//
// A local date/time falls into exactly one of three cases for a given zone:
//
//   - Unique: one instant has that reading
//   - Ambiguous: the clocks went back and the reading occurred twice
//   - Skipped: the clocks went forward over the reading and it never occurred
//
// Map classifies a reading. A Resolver then reduces the classification to a single
// instant, or rejects it with an *Error that carries both bounding intervals so that
// callers can apply their own handling without querying the zone again.
//
// Strict rejects every ambiguous or skipped reading. Lenient picks the earlier
// instant for ambiguous readings and shifts skipped readings forward by the length
// of the gap.
package resolve
