package compress

import (
	"bytes"

	"github.com/benchlab/llr/format"
)

// Outer frame magic numbers of the supported compression formats.
var (
	zstdFrameMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4FrameMagic  = []byte{0x04, 0x22, 0x4D, 0x18}
	// S2 stream identifier chunk: type 0xFF, 6-byte length, "S2sTwO" payload.
	// The two payload bytes here are enough to disambiguate from other chunks.
	s2StreamMagic = []byte{0xFF, 0x06, 0x00, 0x00, 'S', '2'}
)

// Detect identifies the compression format of data by its outer frame magic.
//
// It only recognizes compressed frames; uncompressed containers start with
// the LLR magic, which the container decoder checks before calling Detect.
//
// Returns:
//   - format.CompressionType: Detected compression type
//   - bool: true if a supported frame magic was found
func Detect(data []byte) (format.CompressionType, bool) {
	switch {
	case bytes.HasPrefix(data, zstdFrameMagic):
		return format.CompressionZstd, true
	case bytes.HasPrefix(data, lz4FrameMagic):
		return format.CompressionLZ4, true
	case bytes.HasPrefix(data, s2StreamMagic):
		return format.CompressionS2, true
	default:
		return 0, false
	}
}
