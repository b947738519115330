// Package registry provides zones by id over a Source.
//
// A Registry resolves aliases to canonical ids, answers fixed-offset ids such as
// "UTC+05:30" without consulting its source, and loads every other zone at most once
// per id, wrapping it in a zone.Cached map. Registries are safe for concurrent use and
// are passed around explicitly; there is no process-wide default.
package registry
