package encoding

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/benchlab/llr/errs"
	"github.com/benchlab/llr/format"
	"github.com/benchlab/llr/internal/pool"
)

// FlushThreshold is the buffered payload size at which the encoder flushes
// to the underlying writer. Bounds peak memory on large sample counts; has
// no externally observable effect on the produced bytes.
const FlushThreshold = 64 * 1024

// SampleDeltaEncoder encodes an ordered sequence of raw nanosecond samples
// as the LLR payload: each sample is scaled into the storage unit with
// round-half-up, then the delta against the previous scaled value (implicit
// 0 before the first sample) is zigzag-mapped and emitted as a little-endian
// base-128 varint.
//
// The input sequence does not need to be sorted or monotonic; deltas may be
// negative, which zigzag keeps compact. Scaling is lossy and one-directional;
// only decoding back to the same unit reproduces the scaled values exactly.
//
// Encoded bytes accumulate in a pooled buffer and flush to the underlying
// writer in FlushThreshold chunks. Call Flush after the last sample, then
// Finish to release the buffer.
type SampleDeltaEncoder struct {
	scale int64
	prev  int64
	temp  [binary.MaxVarintLen64]byte
	chunk *pool.ByteBuffer
	w     io.Writer
	count int
}

// NewSampleDeltaEncoder creates an encoder writing unit-scaled deltas to w.
//
// Parameters:
//   - unit: Concrete storage unit (UnitAuto must be resolved by the caller first)
//   - w: Destination for encoded payload chunks
//
// Returns:
//   - *SampleDeltaEncoder: Encoder ready for use
//   - error: ErrInvalidUnit if unit has no scale
func NewSampleDeltaEncoder(unit format.Unit, w io.Writer) (*SampleDeltaEncoder, error) {
	scale := unit.ScaleNs()
	if scale == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidUnit, unit)
	}

	return &SampleDeltaEncoder{
		scale: scale,
		chunk: pool.GetPayloadBuffer(),
		w:     w,
	}, nil
}

// Write encodes a single raw nanosecond sample.
//
// Returns ErrScaleOverflow if adding the rounding bias to ns would wrap,
// and ErrDeltaOverflow if the delta between the scaled sample and the
// previous scaled sample falls outside the signed 64-bit range. Overflow is
// a hard error, never wraparound; no bytes for the offending sample are
// emitted.
func (e *SampleDeltaEncoder) Write(ns int64) error {
	scaled, err := scaleNs(ns, e.scale)
	if err != nil {
		return err
	}

	delta := scaled - e.prev
	if (scaled^e.prev) < 0 && (scaled^delta) < 0 {
		return fmt.Errorf("%w: scaled %d follows %d", errs.ErrDeltaOverflow, scaled, e.prev)
	}
	e.prev = scaled
	e.count++

	// Zigzag encode (efficient signed-to-unsigned mapping)
	zigzag := uint64(delta<<1) ^ uint64(delta>>63) //nolint:gosec

	n := binary.PutUvarint(e.temp[:], zigzag)
	e.chunk.MustWrite(e.temp[:n])

	if e.chunk.Len() >= FlushThreshold {
		return e.Flush()
	}

	return nil
}

// WriteSlice encodes a slice of raw nanosecond samples.
func (e *SampleDeltaEncoder) WriteSlice(samples []int64) error {
	for _, ns := range samples {
		if err := e.Write(ns); err != nil {
			return err
		}
	}

	return nil
}

// Flush writes any buffered payload bytes to the underlying writer.
func (e *SampleDeltaEncoder) Flush() error {
	if e.chunk.Len() == 0 {
		return nil
	}

	if _, err := e.chunk.WriteTo(e.w); err != nil {
		return err
	}
	e.chunk.Reset()

	return nil
}

// Len returns the number of samples encoded so far.
func (e *SampleDeltaEncoder) Len() int {
	return e.count
}

// Finish releases the internal buffer back to the pool. The encoder must not
// be used afterwards. Buffered but unflushed bytes are discarded; call Flush
// first.
func (e *SampleDeltaEncoder) Finish() {
	pool.PutPayloadBuffer(e.chunk)
	e.chunk = nil
}

// SampleDeltaDecoder decodes LLR payloads produced by SampleDeltaEncoder.
//
// The decoder is stateless and can be reused across payloads.
type SampleDeltaDecoder struct{}

// NewSampleDeltaDecoder creates a new stateless payload decoder.
func NewSampleDeltaDecoder() SampleDeltaDecoder {
	return SampleDeltaDecoder{}
}

// Decode reconstructs count samples from payload, rescaling from the stored
// unit into the target unit.
//
// Decoding stops after exactly count values even if trailing bytes remain
// (compressors may pad). When the target unit differs from the stored unit,
// each reconstructed value is converted through nanoseconds and re-rounded
// with the same round-half-up rule the encoder used — the second rounding is
// part of the documented format behavior. Decoding to the stored unit is
// exact.
//
// Parameters:
//   - payload: Varint delta stream (decompressed, header stripped)
//   - count: Declared sample count from the container header
//   - from: Unit the payload was stored in
//   - to: Unit to produce samples in
//
// Returns:
//   - []int64: Decoded samples, length count
//   - error: ErrTruncatedPayload if count exceeds what the payload can hold
//     or the payload ends early, ErrVarintOverflow on a varint wider than
//     64 bits, ErrInvalidUnit for units with no scale, ErrScaleOverflow if
//     cross-unit conversion leaves the signed 64-bit range
func (d SampleDeltaDecoder) Decode(payload []byte, count uint64, from, to format.Unit) ([]int64, error) {
	fromScale := from.ScaleNs()
	if fromScale == 0 {
		return nil, fmt.Errorf("%w: source %s", errs.ErrInvalidUnit, from)
	}
	toScale := to.ScaleNs()
	if toScale == 0 {
		return nil, fmt.Errorf("%w: target %s", errs.ErrInvalidUnit, to)
	}

	// Every sample occupies at least one payload byte, so a count beyond the
	// payload length can never decode. Rejecting it up front also bounds the
	// allocation below to the decompressed size, keeping a corrupted count
	// field from triggering a huge allocation or a makeslice panic.
	if count > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: count %d exceeds %d payload bytes", errs.ErrTruncatedPayload, count, len(payload))
	}

	samples := make([]int64, 0, count)
	offset := 0
	var prev int64

	for uint64(len(samples)) < count {
		zigzag, n := binary.Uvarint(payload[offset:])
		if n == 0 {
			return nil, fmt.Errorf("%w: %d of %d samples decoded", errs.ErrTruncatedPayload, len(samples), count)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: at payload offset %d", errs.ErrVarintOverflow, offset)
		}
		offset += n

		delta := int64(zigzag>>1) ^ -int64(zigzag&1) //nolint:gosec
		prev += delta

		if from == to {
			samples = append(samples, prev)
			continue
		}
		if prev > math.MaxInt64/fromScale || prev < math.MinInt64/fromScale {
			return nil, fmt.Errorf("%w: stored value %d at scale %d", errs.ErrScaleOverflow, prev, fromScale)
		}
		scaled, err := scaleNs(prev*fromScale, toScale)
		if err != nil {
			return nil, err
		}
		samples = append(samples, scaled)
	}

	return samples, nil
}

// scaleNs converts a nanosecond value into units of scale using round-half-up.
//
// Division is floor division (not Go's truncation) so negative values match
// the archived format exactly. Values close enough to MaxInt64 that adding
// the rounding bias would wrap are rejected rather than silently mangled.
func scaleNs(ns, scale int64) (int64, error) {
	if scale == 1 {
		return ns, nil
	}

	if ns > math.MaxInt64-scale/2 {
		return 0, fmt.Errorf("%w: %d at scale %d", errs.ErrScaleOverflow, ns, scale)
	}

	biased := ns + scale/2
	quot := biased / scale
	if biased%scale != 0 && biased < 0 {
		quot--
	}

	return quot, nil
}
