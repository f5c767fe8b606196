// Package blob assembles and parses LLR containers: a RawHeader section
// followed by a delta/zigzag/varint sample payload, wrapped as a whole in an
// outer lossless compressor.
//
// Encoding:
//
//	encoder, _ := blob.NewSampleEncoder(blob.WithUnit(format.UnitAuto))
//	data, hdr, err := encoder.Encode(header, samples)
//
// Decoding:
//
//	decoder, _ := blob.NewSampleDecoder() // yields nanoseconds by default
//	hdr, samples, err := decoder.Decode(data)
//
// Containers are byte-for-byte reproducible given identical inputs,
// compression settings and library version; they are the canonical archive
// of raw measurements.
package blob
