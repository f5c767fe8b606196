package blob

import (
	"bytes"
	"fmt"

	"github.com/benchlab/llr/compress"
	"github.com/benchlab/llr/encoding"
	"github.com/benchlab/llr/endian"
	"github.com/benchlab/llr/errs"
	"github.com/benchlab/llr/format"
	"github.com/benchlab/llr/internal/options"
	"github.com/benchlab/llr/section"
)

// SampleDecoder decodes LLR containers back into a header and sample sequence.
//
// The decoder is reusable; each Decode call is independent.
type SampleDecoder struct {
	unit   format.Unit
	engine endian.EndianEngine
}

// NewSampleDecoder creates a SampleDecoder producing samples in nanoseconds
// unless WithDecodeUnit overrides the target unit.
func NewSampleDecoder(opts ...SampleDecoderOption) (*SampleDecoder, error) {
	decoder := &SampleDecoder{
		unit:   format.UnitNs,
		engine: endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(decoder, opts...); err != nil {
		return nil, err
	}

	return decoder, nil
}

// Decode parses a container and reconstructs its sample sequence.
//
// The outer compression is identified from the frame magic; a container that
// starts with the LLR magic itself is treated as uncompressed. Decoding to
// the container's stored unit is exact; any other target unit re-applies the
// round-half-up rule on reconstructed nanosecond values, so the result is
// double-rounded (stored behavior, kept deliberately).
//
// On any failure no partial results are returned.
//
// Returns:
//   - section.RawHeader: Header reconstructed verbatim from the container
//   - []int64: Samples in the decoder's target unit
//   - error: ErrInvalidMagicNumber, ErrUnsupportedVersion, ErrInvalidUnit,
//     ErrTruncatedHeader or ErrTruncatedPayload
func (d *SampleDecoder) Decode(data []byte) (section.RawHeader, []int64, error) {
	assembled, err := d.unwrap(data)
	if err != nil {
		return section.RawHeader{}, nil, err
	}

	hdr, headerLen, err := section.ParseRawHeader(assembled, d.engine)
	if err != nil {
		return section.RawHeader{}, nil, err
	}

	samples, err := encoding.NewSampleDeltaDecoder().Decode(assembled[headerLen:], hdr.SampleCount, hdr.Unit, d.unit)
	if err != nil {
		return section.RawHeader{}, nil, err
	}

	return hdr, samples, nil
}

// unwrap removes the outer compression, if any, yielding the assembled container.
func (d *SampleDecoder) unwrap(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, section.MagicNumber[:]) {
		return data, nil
	}

	compression, ok := compress.Detect(data)
	if !ok {
		head := data
		if len(head) > section.MagicSize {
			head = head[:section.MagicSize]
		}

		return nil, fmt.Errorf("%w: % x is neither an LLR container nor a known compression frame",
			errs.ErrInvalidMagicNumber, head)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	assembled, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}

	return assembled, nil
}
