package blob

import (
	"fmt"

	"github.com/benchlab/llr/compress"
	"github.com/benchlab/llr/errs"
	"github.com/benchlab/llr/format"
	"github.com/benchlab/llr/internal/options"
)

// SampleEncoderOption represents a functional option for configuring the SampleEncoder.
type SampleEncoderOption = options.Option[*SampleEncoder]

// WithUnit sets the storage unit for encoded samples.
//
// format.UnitAuto (the default) selects the unit from the minimum raw sample
// value at encode time.
func WithUnit(unit format.Unit) SampleEncoderOption {
	return options.New(func(e *SampleEncoder) error {
		if !unit.IsValid() && unit != format.UnitAuto {
			return fmt.Errorf("%w: %s", errs.ErrInvalidUnit, unit)
		}
		e.unit = unit

		return nil
	})
}

// WithCompression sets the outer compression applied to the assembled container.
// The default is Zstd at maximum compression.
func WithCompression(compression format.CompressionType) SampleEncoderOption {
	return options.New(func(e *SampleEncoder) error {
		codec, err := compress.CreateCodec(compression, "container")
		if err != nil {
			return err
		}
		e.compression = compression
		e.codec = codec

		return nil
	})
}

// SampleDecoderOption represents a functional option for configuring the SampleDecoder.
type SampleDecoderOption = options.Option[*SampleDecoder]

// WithDecodeUnit sets the unit decoded samples are produced in. The default
// is nanoseconds.
//
// Decoding to the unit the container was stored in is exact; any other
// target re-rounds the reconstructed values (see SampleDecoder.Decode).
func WithDecodeUnit(unit format.Unit) SampleDecoderOption {
	return options.New(func(d *SampleDecoder) error {
		if !unit.IsValid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidUnit, unit)
		}
		d.unit = unit

		return nil
	})
}
