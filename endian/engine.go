// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the standard library's ByteOrder and AppendByteOrder interfaces
// into a single EndianEngine interface so encoders can both read fixed-width
// fields and append them without intermediate buffers.
//
// The LLR container format is always little-endian; GetLittleEndianEngine is
// the engine every component uses.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// The LLR container never uses it; it exists for tooling that needs to probe
// foreign byte orders.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
