package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest accumulates an xxHash64 over a sequence of string fields.
//
// Each field is length-prefixed before hashing so that field boundaries
// contribute to the digest: ("a","bc") and ("ab","c") produce different sums.
type Digest struct {
	d xxhash.Digest
}

// NewDigest creates a Digest ready for use.
func NewDigest() *Digest {
	d := &Digest{}
	d.d.Reset()

	return d
}

// WriteField appends one field to the digest.
func (d *Digest) WriteField(field string) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(field))) //nolint:gosec
	_, _ = d.d.Write(prefix[:])
	_, _ = d.d.WriteString(field)
}

// Sum64 returns the current hash value.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
