// Package errs defines the sentinel errors returned across zonemap.
//
// Callers match them with errors.Is; structured errors such as compiler.Error,
// stream.DecodeError and resolve.Error wrap one of these values.
package errs

import "errors"

// Scalar and interval errors.
var (
	ErrInvalidOffset   = errors.New("offset out of range")
	ErrInvalidInterval = errors.New("invalid zone interval")
	ErrInvalidLocal    = errors.New("invalid local date/time")
)

// Configuration errors.
var (
	ErrInvalidOption = errors.New("invalid option")
)

// Rule compilation errors.
var (
	ErrInvalidRule       = errors.New("invalid recurrence rule")
	ErrInvalidYearRange  = errors.New("invalid rule year range")
	ErrUnknownRuleSet    = errors.New("unknown rule set")
	ErrUnsupportedTail   = errors.New("unsupported infinite rule combination")
	ErrNoEras            = errors.New("zone definition has no eras")
	ErrEraOrder          = errors.New("zone eras are not in chronological order")
	ErrInvalidNameFormat = errors.New("invalid zone name format")
)

// Stream decoding and encoding errors.
var (
	ErrTruncated              = errors.New("stream truncated")
	ErrMalformedVarint        = errors.New("malformed varint")
	ErrMalformedField         = errors.New("malformed field payload")
	ErrPoolMissing            = errors.New("string pool referenced before it was defined")
	ErrDuplicatePool          = errors.New("string pool defined twice")
	ErrPoolIndex              = errors.New("string pool index out of range")
	ErrUnknownMapKind         = errors.New("unknown zone map kind")
	ErrChecksumMismatch       = errors.New("stream checksum mismatch")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	ErrDuplicateZone          = errors.New("zone id written twice")
	ErrUnserializableMap      = errors.New("zone map cannot be serialized")
	ErrStringTooLong          = errors.New("string exceeds maximum length")
	ErrIDConflict             = errors.New("zone id conflicts with an alias")
)

// Lookup errors.
var (
	ErrUnknownZone            = errors.New("unknown time zone id")
	ErrPlatformIDsUnsupported = errors.New("platform id mapping not available")
)

// Local resolution outcomes.
var (
	ErrAmbiguousLocalTime = errors.New("local time is ambiguous")
	ErrSkippedLocalTime   = errors.New("local time is skipped")
)
