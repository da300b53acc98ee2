// Package fse implements a tabled Asymmetric Numeral Systems (tANS) entropy
// codec for byte-alphabet blocks: frequency histogram, count normalization,
// a self-describing table header, and the forward/backward bitstream codec
// that drives the state machine.
//
// A block is compressed and decompressed as a unit; nothing persists across
// calls, and every Compress/Decompress call builds its own tables. Encoding
// a single block is never parallelized internally — see CompressParallel for
// the optional two-state (ILP) stream variant.
package fse

const (
	// MaxTableLog is the largest tableLog this package will choose or
	// accept, a conservative ceiling chosen to bound table memory and
	// keep state values comfortably within 16 bits.
	MaxTableLog = 12

	// MinTableLog is the smallest tableLog ChooseTableLog will choose.
	MinTableLog = 5

	// MaxSymbols bounds the byte alphabet this package accepts.
	MaxSymbols = 256
)

// headerID values occupy the bottom 2 bits of the first output byte.
const (
	blockRaw byte = iota
	blockRLE
	blockNormal
)

// Stats reports per-call, non-persistent statistics about a Compress
// operation. It is always allocated fresh by the caller (or nil if not
// requested) — never package-global state.
type Stats struct {
	// TableLog is the tableLog chosen by the normalizer.
	TableLog uint8
	// NbSymbols is one plus the highest-valued byte observed in the block.
	NbSymbols int
	// Entropy is the Shannon entropy estimate of the block, in bits/symbol.
	Entropy float64
	// BlockFormat is one of "raw", "rle", or "fse".
	BlockFormat string
}
