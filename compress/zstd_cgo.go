//go:build llr_cgo_zstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// cgoZstdLevel is the highest practical libzstd level; levels above 19 cost
// large amounts of memory for marginal gains on varint payloads.
const cgoZstdLevel = 19

// Compress compresses the input data using libzstd via cgo.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, cgoZstdLevel), nil
}

// Decompress decompresses Zstd-compressed data using libzstd via cgo.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
