package section

// Container identification.
const (
	// Version is the only container format version this library reads and writes.
	Version = 1

	// MagicSize is the length of the magic constant at offset 0.
	MagicSize = 4

	// PreludeSize covers the magic plus the version, unit and reserved bytes.
	PreludeSize = MagicSize + 4

	// FixedFieldsSize covers sample_count, iters, warmup, pin_cpu and
	// tag_count (8+8+8+4+4 bytes) following the prelude.
	FixedFieldsSize = 32

	// FixedHeaderSize is the minimum size of any valid header: everything
	// before the first length-prefixed string.
	FixedHeaderSize = PreludeSize + FixedFieldsSize
)

// MagicNumber identifies an LLR container. It appears at offset 0 of the
// assembled (pre-compression) container.
var MagicNumber = [MagicSize]byte{'L', 'L', 'R', '1'}

// PinCPUUnpinned is the pin_cpu value meaning the run was not pinned to a CPU.
const PinCPUUnpinned = -1
