// Package encoding implements the LLR payload codec: unit scaling with
// round-half-up, deltas between consecutive scaled samples, zigzag mapping
// and little-endian base-128 varints.
//
// The codec is deliberately order-preserving and assumption-free: samples
// need not be sorted or monotonic, and negative deltas stay compact through
// zigzag. The container layers (header, outer compression) live in the
// section and compress packages.
package encoding
