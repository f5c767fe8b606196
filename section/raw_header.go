package section

import (
	"fmt"

	"github.com/benchlab/llr/endian"
	"github.com/benchlab/llr/errs"
	"github.com/benchlab/llr/format"
)

// RawHeader is the self-describing header section at the start of an LLR
// container. It is constructed by the caller before encoding, immutable
// afterwards, and reconstructed verbatim by decoding.
//
// The encoder stamps Unit and SampleCount; every other field is caller-owned
// run metadata carried through unchanged.
type RawHeader struct {
	// CaseName is the benchmark case identifier.
	CaseName string
	// Tags are free-form run labels, preserved in order.
	Tags []string
	// Args are the arguments the benchmark binary ran with, preserved in order.
	Args []string
	// Iters is the measured iteration count per sample.
	Iters uint64
	// Warmup is the number of discarded warmup iterations.
	Warmup uint64
	// PinCPU is the CPU index the run was pinned to, or PinCPUUnpinned.
	PinCPU int32
	// Unit is the unit scaled sample values are stored in.
	Unit format.Unit
	// SampleCount is the number of samples in the payload.
	SampleCount uint64
}

// Size returns the exact serialized size of the header in bytes.
func (h *RawHeader) Size() int {
	size := FixedHeaderSize + 4 + len(h.CaseName) + 4
	for _, tag := range h.Tags {
		size += 4 + len(tag)
	}
	for _, arg := range h.Args {
		size += 4 + len(arg)
	}

	return size
}

// AppendTo serializes the header and appends it to b.
//
// Layout (all integers little-endian):
//
//	magic[4] version[1] unit[1] reserved[2]
//	sample_count[8] iters[8] warmup[8] pin_cpu[4] tag_count[4]
//	case_len[4] case_name[...]
//	(tag_len[4] tag[...]) x tag_count
//	arg_count[4] (arg_len[4] arg[...]) x arg_count
func (h *RawHeader) AppendTo(b []byte, engine endian.EndianEngine) []byte {
	b = append(b, MagicNumber[:]...)
	b = append(b, Version, byte(h.Unit), 0, 0)
	b = engine.AppendUint64(b, h.SampleCount)
	b = engine.AppendUint64(b, h.Iters)
	b = engine.AppendUint64(b, h.Warmup)
	b = engine.AppendUint32(b, uint32(h.PinCPU)) //nolint:gosec
	b = engine.AppendUint32(b, uint32(len(h.Tags))) //nolint:gosec

	b = engine.AppendUint32(b, uint32(len(h.CaseName))) //nolint:gosec
	b = append(b, h.CaseName...)
	for _, tag := range h.Tags {
		b = engine.AppendUint32(b, uint32(len(tag))) //nolint:gosec
		b = append(b, tag...)
	}
	b = engine.AppendUint32(b, uint32(len(h.Args))) //nolint:gosec
	for _, arg := range h.Args {
		b = engine.AppendUint32(b, uint32(len(arg))) //nolint:gosec
		b = append(b, arg...)
	}

	return b
}

// Bytes serializes the header into a freshly allocated byte slice.
func (h *RawHeader) Bytes(engine endian.EndianEngine) []byte {
	return h.AppendTo(make([]byte, 0, h.Size()), engine)
}

// ParseRawHeader parses a RawHeader from the start of data.
//
// Parameters:
//   - data: Assembled (decompressed) container bytes
//   - engine: Endian engine (the format is always little-endian)
//
// Returns:
//   - RawHeader: Parsed header
//   - int: Number of bytes consumed; the sample payload starts here
//   - error: ErrInvalidMagicNumber, ErrUnsupportedVersion, ErrInvalidUnit
//     or ErrTruncatedHeader
func ParseRawHeader(data []byte, engine endian.EndianEngine) (RawHeader, int, error) {
	var h RawHeader

	if len(data) < MagicSize {
		return h, 0, fmt.Errorf("%w: %d bytes", errs.ErrTruncatedHeader, len(data))
	}
	if [MagicSize]byte(data[:MagicSize]) != MagicNumber {
		return h, 0, fmt.Errorf("%w: % x", errs.ErrInvalidMagicNumber, data[:MagicSize])
	}
	if len(data) < FixedHeaderSize {
		return h, 0, fmt.Errorf("%w: %d bytes", errs.ErrTruncatedHeader, len(data))
	}

	version := data[4]
	if version != Version {
		return h, 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	h.Unit = format.Unit(data[5])
	if !h.Unit.IsValid() {
		return h, 0, fmt.Errorf("%w: enum index %d", errs.ErrInvalidUnit, data[5])
	}

	h.SampleCount = engine.Uint64(data[8:16])
	h.Iters = engine.Uint64(data[16:24])
	h.Warmup = engine.Uint64(data[24:32])
	h.PinCPU = int32(engine.Uint32(data[32:36])) //nolint:gosec
	tagCount := engine.Uint32(data[36:40])

	offset := FixedHeaderSize

	caseName, offset, err := readVarString(data, offset, engine, "case name")
	if err != nil {
		return h, 0, err
	}
	h.CaseName = caseName

	h.Tags = make([]string, 0, tagCount)
	for i := uint32(0); i < tagCount; i++ {
		var tag string
		tag, offset, err = readVarString(data, offset, engine, "tag")
		if err != nil {
			return h, 0, err
		}
		h.Tags = append(h.Tags, tag)
	}

	if len(data) < offset+4 {
		return h, 0, fmt.Errorf("%w: arg count", errs.ErrTruncatedHeader)
	}
	argCount := engine.Uint32(data[offset : offset+4])
	offset += 4

	h.Args = make([]string, 0, argCount)
	for i := uint32(0); i < argCount; i++ {
		var arg string
		arg, offset, err = readVarString(data, offset, engine, "arg")
		if err != nil {
			return h, 0, err
		}
		h.Args = append(h.Args, arg)
	}

	return h, offset, nil
}

// readVarString reads one uint32 length-prefixed UTF-8 string at offset.
func readVarString(data []byte, offset int, engine endian.EndianEngine, what string) (string, int, error) {
	if len(data) < offset+4 {
		return "", 0, fmt.Errorf("%w: %s length", errs.ErrTruncatedHeader, what)
	}
	length := int(engine.Uint32(data[offset : offset+4]))
	offset += 4

	if len(data) < offset+length {
		return "", 0, fmt.Errorf("%w: %s data", errs.ErrTruncatedHeader, what)
	}

	return string(data[offset : offset+length]), offset + length, nil
}
