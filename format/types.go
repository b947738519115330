package format

type (
	FieldKind       uint8
	CompressionType uint8
	MapKind         uint8
	TransitionMode  uint8
)

// Stream field kinds. Unknown kinds are skipped by decoders.
const (
	FieldStringPool    FieldKind = 0x0 // FieldStringPool carries the pooled strings.
	FieldTimeZone      FieldKind = 0x1 // FieldTimeZone carries one compiled zone.
	FieldVersion       FieldKind = 0x2 // FieldVersion carries the raw data version string.
	FieldTzdbIDMap     FieldKind = 0x3 // FieldTzdbIDMap maps alias ids to canonical ids.
	FieldPlatformIDMap FieldKind = 0x4 // FieldPlatformIDMap maps platform ids to canonical ids.
	FieldChecksum      FieldKind = 0x5 // FieldChecksum holds an xxHash64 of the preceding bytes.
	FieldCompressed    FieldKind = 0x6 // FieldCompressed wraps a compressed nested field sequence.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	MapFixed       MapKind = 0x0 // MapFixed is a single interval over all time.
	MapPrecomputed MapKind = 0x1 // MapPrecomputed is an explicit interval list with an optional tail.
)

const (
	ModeUtc      TransitionMode = 0x0 // ModeUtc interprets the time of day as UTC.
	ModeWall     TransitionMode = 0x1 // ModeWall interprets the time of day as wall clock time.
	ModeStandard TransitionMode = 0x2 // ModeStandard interprets the time of day as standard time.
)

func (k FieldKind) String() string {
	switch k {
	case FieldStringPool:
		return "StringPool"
	case FieldTimeZone:
		return "TimeZone"
	case FieldVersion:
		return "Version"
	case FieldTzdbIDMap:
		return "TzdbIdMap"
	case FieldPlatformIDMap:
		return "PlatformIdMap"
	case FieldChecksum:
		return "Checksum"
	case FieldCompressed:
		return "Compressed"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (k MapKind) String() string {
	switch k {
	case MapFixed:
		return "Fixed"
	case MapPrecomputed:
		return "Precomputed"
	default:
		return "Unknown"
	}
}

func (m TransitionMode) String() string {
	switch m {
	case ModeUtc:
		return "Utc"
	case ModeWall:
		return "Wall"
	case ModeStandard:
		return "Standard"
	default:
		return "Unknown"
	}
}
