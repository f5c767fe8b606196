// Package section defines the LLR container's on-disk sections: the magic
// and version constants and the RawHeader serialization.
//
// All fixed-width fields are little-endian; strings are uint32
// length-prefixed UTF-8, preserved in order.
package section
