package format

type (
	// Unit identifies the time unit that scaled sample values are stored in.
	Unit uint8
	// CompressionType identifies the outer compression applied to a container.
	CompressionType uint8
)

const (
	UnitNs Unit = 0 // UnitNs stores samples as nanoseconds (scale 1).
	UnitUs Unit = 1 // UnitUs stores samples as microseconds (scale 1e3).
	UnitMs Unit = 2 // UnitMs stores samples as milliseconds (scale 1e6).
	UnitS  Unit = 3 // UnitS stores samples as seconds (scale 1e9).

	// UnitAuto requests automatic unit selection from the minimum sample value.
	// It is never written to a container; encoders resolve it before encoding.
	UnitAuto Unit = 0xFF

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Auto-unit selection thresholds, applied to the minimum raw nanosecond value.
const (
	usThreshold = 100_000         // >= 100us worth of ns -> microseconds
	msThreshold = 100_000_000     // >= 100ms worth of ns -> milliseconds
	sThreshold  = 100_000_000_000 // >= 100s worth of ns -> seconds
)

func (u Unit) String() string {
	switch u {
	case UnitNs:
		return "ns"
	case UnitUs:
		return "us"
	case UnitMs:
		return "ms"
	case UnitS:
		return "s"
	case UnitAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// IsValid reports whether u is a concrete storable unit (not UnitAuto).
func (u Unit) IsValid() bool {
	return u <= UnitS
}

// ScaleNs returns the number of nanoseconds per unit step.
// Returns 0 for units that have no scale (UnitAuto or invalid values).
func (u Unit) ScaleNs() int64 {
	switch u {
	case UnitNs:
		return 1
	case UnitUs:
		return 1_000
	case UnitMs:
		return 1_000_000
	case UnitS:
		return 1_000_000_000
	default:
		return 0
	}
}

// ParseUnit parses a unit token ("ns", "us", "ms", "s" or "auto").
//
// Returns:
//   - Unit: Parsed unit value
//   - bool: true if the token is recognized
func ParseUnit(token string) (Unit, bool) {
	switch token {
	case "ns":
		return UnitNs, true
	case "us":
		return UnitUs, true
	case "ms":
		return UnitMs, true
	case "s":
		return UnitS, true
	case "auto":
		return UnitAuto, true
	default:
		return 0, false
	}
}

// ChooseUnit selects a storage unit from the minimum raw nanosecond sample value.
//
// The thresholds keep scaled magnitudes small without collapsing typical spreads
// to zero. This is a heuristic, not a guarantee of zero precision loss.
func ChooseUnit(minNs int64) Unit {
	switch {
	case minNs >= sThreshold:
		return UnitS
	case minNs >= msThreshold:
		return UnitMs
	case minNs >= usThreshold:
		return UnitUs
	default:
		return UnitNs
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
