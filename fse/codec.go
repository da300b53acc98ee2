package fse

// Codec adapts the block codec to the Compressor/Decompressor interfaces
// used by the codecs registry, so fse can be benchmarked and selected by
// name alongside third-party codecs.
type Codec struct{}

func (Codec) Name() string { return "fse" }

// Compress appends the compressed form of src to dst. Empty src is a no-op
// rather than an error, matching the Compressor contract's expectation
// that callers always supply well-formed data.
func (Codec) Compress(src, dst []byte) []byte {
	if len(src) == 0 {
		return dst
	}
	out, err := Compress(src)
	if err != nil {
		// Compress only fails on an invalid parameter, which cannot
		// occur for non-empty src built from ChooseTableLog(..., 0, ...).
		panic(err)
	}
	return append(dst, out...)
}

// Decompress decompresses src into dst, which must already be sized to
// the original (decompressed) length.
func (Codec) Decompress(src, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}
	out, err := Decompress(src, len(dst))
	if err != nil {
		return err
	}
	copy(dst, out)
	return nil
}
