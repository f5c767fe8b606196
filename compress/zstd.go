package compress

// ZstdCompressor provides Zstandard compression at the maximum compression
// level. It is the default outer transform for LLR containers.
//
// Containers are archival artifacts written once per run and read rarely, so
// the codec trades compression speed for the smallest output. Delta-encoded
// sample payloads compress extremely well at high levels.
//
// The implementation is selected at build time: the pure-Go
// klauspost/compress encoder by default, or valyala/gozstd (cgo bindings to
// libzstd) when built with the llr_cgo_zstd tag. Both emit standard zstd
// frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with maximum compression settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
