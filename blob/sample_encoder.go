package blob

import (
	"github.com/benchlab/llr/compress"
	"github.com/benchlab/llr/encoding"
	"github.com/benchlab/llr/endian"
	"github.com/benchlab/llr/format"
	"github.com/benchlab/llr/internal/options"
	"github.com/benchlab/llr/internal/pool"
	"github.com/benchlab/llr/section"
)

// SampleEncoder encodes a run's raw nanosecond samples into an LLR container.
//
// The encoder is reusable across runs; each Encode call is independent.
type SampleEncoder struct {
	unit        format.Unit
	compression format.CompressionType
	codec       compress.Codec
	engine      endian.EndianEngine
}

// NewSampleEncoder creates a SampleEncoder.
//
// Defaults: automatic unit selection, Zstd outer compression at maximum level.
//
// Returns an error if an option carries an invalid unit or compression type;
// validation happens here, before any encoding work begins.
func NewSampleEncoder(opts ...SampleEncoderOption) (*SampleEncoder, error) {
	encoder := &SampleEncoder{
		unit:        format.UnitAuto,
		compression: format.CompressionZstd,
		codec:       compress.NewZstdCompressor(),
		engine:      endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(encoder, opts...); err != nil {
		return nil, err
	}

	return encoder, nil
}

// Encode assembles and compresses the container for one run.
//
// The Unit and SampleCount fields of hdr are stamped by the encoder (the
// stamped header is returned); every other header field is carried through
// verbatim. A delta outside the signed 64-bit range aborts the encode before
// any bytes are produced.
//
// Parameters:
//   - hdr: Run metadata; Unit and SampleCount are overwritten
//   - samples: Raw nanosecond samples, in measurement order
//
// Returns:
//   - []byte: Compressed container, owned by the caller
//   - section.RawHeader: hdr with Unit and SampleCount stamped
//   - error: ErrDeltaOverflow, or a compression failure
func (e *SampleEncoder) Encode(hdr section.RawHeader, samples []int64) ([]byte, section.RawHeader, error) {
	unit := e.unit
	if unit == format.UnitAuto {
		unit = format.ChooseUnit(minSample(samples))
	}

	hdr.Unit = unit
	hdr.SampleCount = uint64(len(samples))

	assembled := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(assembled)

	assembled.B = hdr.AppendTo(assembled.B, e.engine)

	enc, err := encoding.NewSampleDeltaEncoder(unit, assembled)
	if err != nil {
		return nil, hdr, err
	}
	defer enc.Finish()

	if err := enc.WriteSlice(samples); err != nil {
		return nil, hdr, err
	}
	if err := enc.Flush(); err != nil {
		return nil, hdr, err
	}

	compressed, err := e.codec.Compress(assembled.Bytes())
	if err != nil {
		return nil, hdr, err
	}

	if e.compression == format.CompressionNone {
		// NoOp shares the pooled buffer; detach before it is recycled.
		compressed = append([]byte(nil), compressed...)
	}

	return compressed, hdr, nil
}

// minSample returns the smallest sample, or 0 for an empty sequence.
func minSample(samples []int64) int64 {
	if len(samples) == 0 {
		return 0
	}

	minNs := samples[0]
	for _, ns := range samples[1:] {
		if ns < minNs {
			minNs = ns
		}
	}

	return minNs
}
