// Package errs defines the sentinel errors shared across the llr packages.
//
// Callers match these with errors.Is; call sites wrap them with fmt.Errorf
// to attach the offending value or file path.
package errs

import "errors"

// Container decode errors. Decoding never returns partial results alongside
// any of these.
var (
	// ErrInvalidMagicNumber indicates the container does not start with the LLR magic.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion indicates a container format version this library cannot read.
	ErrUnsupportedVersion = errors.New("unsupported container version")

	// ErrInvalidUnit indicates a unit enum index outside the defined range,
	// or an unrecognized unit requested for encode/decode.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrTruncatedHeader indicates the container ended inside the header section.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrTruncatedPayload indicates the payload ended before the declared
	// sample count was produced, or a varint was cut short.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrVarintOverflow indicates a varint wider than 64 bits in the payload.
	ErrVarintOverflow = errors.New("varint overflows 64 bits")
)

// Encode errors.
var (
	// ErrDeltaOverflow indicates a delta between consecutive scaled samples
	// outside the signed 64-bit range. Encoding aborts before emitting bytes.
	ErrDeltaOverflow = errors.New("delta out of int64 range")

	// ErrScaleOverflow indicates a sample whose unit conversion leaves the
	// signed 64-bit range, on encode (rounding bias wraps) or on cross-unit
	// decode (reconstructed nanosecond value overflows).
	ErrScaleOverflow = errors.New("scaled value out of int64 range")
)

// Compression errors.
var (
	// ErrUnknownCompression indicates data whose outer frame matches no
	// supported compression format.
	ErrUnknownCompression = errors.New("unknown compression format")
)

// Index store errors.
var (
	// ErrMalformedIndex indicates an index file that exists but cannot be
	// parsed as tabular data.
	ErrMalformedIndex = errors.New("malformed index file")

	// ErrInvalidMode indicates an unrecognized index update mode token.
	ErrInvalidMode = errors.New("invalid index update mode")
)
