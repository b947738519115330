// Package encoding provides the string pool and id-map payloads of the zone stream.
//
// These helpers sit on top of the public varint primitives in
// github.com/arloliu/zonemap/encoding and are shared by the stream writer and
// decoder. They are internal and not part of the public API.
//
// A string pool is a single list of distinct strings. Every other field refers to a
// string by its position in the pool, so a zone name such as "CET" used by hundreds
// of intervals costs one or two bytes per reference.
package encoding
