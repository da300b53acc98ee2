package fse

import (
	"encoding/binary"
	"math"
)

// Compress encodes src as a single self-contained block, choosing the
// largest tableLog the data justifies.
func Compress(src []byte) ([]byte, error) {
	return compress(src, 0, nil, false)
}

// CompressLevel is Compress with an explicit requested tableLog (0 picks
// the normalizer's default, as in Compress).
func CompressLevel(src []byte, tableLog uint8) ([]byte, error) {
	return compress(src, tableLog, nil, false)
}

// CompressWithStats behaves like Compress but also returns a freshly
// allocated Stats record for this call, rather than tracking statistics in
// any shared or global state.
func CompressWithStats(src []byte, tableLog uint8) ([]byte, *Stats, error) {
	st := &Stats{}
	out, err := compress(src, tableLog, st, false)
	if err != nil {
		return nil, nil, err
	}
	return out, st, nil
}

// CompressParallel behaves like Compress but drives the stream codec's
// optional two-state variant instead of the default single-state one,
// letting the two interleaved state updates overlap on hardware that can
// run independent integer pipelines concurrently. Decompress (and
// DecompressSafe) need no separate entry point: the stream descriptor
// records how many states a block was written with, so the decoder always
// picks the matching path automatically.
func CompressParallel(src []byte) ([]byte, error) {
	return compress(src, 0, nil, true)
}

func compress(src []byte, requestedTableLog uint8, stats *Stats, parallel bool) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrInvalidParameter
	}
	if len(src) == 1 {
		if stats != nil {
			stats.BlockFormat = "raw"
		}
		return []byte{blockRaw, src[0]}, nil
	}

	count, nbSymbols, err := Count(src)
	if err != nil {
		return nil, err
	}

	distinct := 0
	var only byte
	for s := 0; s < nbSymbols; s++ {
		if count[s] > 0 {
			distinct++
			only = byte(s)
		}
	}
	if distinct == 1 {
		if stats != nil {
			stats.BlockFormat = "rle"
		}
		return []byte{blockRLE, only}, nil
	}

	tableLog, err := ChooseTableLog(uint32(len(src)), nbSymbols, requestedTableLog)
	if err != nil {
		return nil, err
	}
	norm, err := NormalizeCount(count[:nbSymbols], uint32(len(src)), nbSymbols, tableLog)
	if err != nil {
		return nil, err
	}
	header, err := WriteHeader(norm, tableLog)
	if err != nil {
		return nil, err
	}
	ct, err := BuildCTable(norm, tableLog)
	if err != nil {
		return nil, err
	}
	var stream []byte
	if parallel {
		stream, err = EncodeStreamParallel(ct, src)
	} else {
		stream, err = EncodeStream(ct, src)
	}
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(header)+len(stream))
	out = append(out, header...)
	out = append(out, stream...)

	if stats != nil {
		stats.TableLog = tableLog
		stats.NbSymbols = nbSymbols
		stats.Entropy = entropyBits(count[:nbSymbols], len(src))
		stats.BlockFormat = "fse"
	}

	// Fall back to storing the block raw if compression didn't actually
	// shrink it; this keeps every block's worst case bounded at source
	// size plus one byte instead of letting pathological inputs expand.
	if len(out) >= len(src) {
		raw := make([]byte, 1+len(src))
		raw[0] = blockRaw
		copy(raw[1:], src)
		if stats != nil {
			stats.BlockFormat = "raw"
		}
		return raw, nil
	}
	return out, nil
}

// Decompress reverses Compress, given the exact original block length.
func Decompress(src []byte, originalSize int) ([]byte, error) {
	return decompress(src, originalSize, len(src))
}

// DecompressSafe behaves like Decompress but additionally refuses to read
// past srcCapacity, for callers decoding into a buffer that was only
// partially filled or that aliases other data past its logical end.
func DecompressSafe(src []byte, originalSize, srcCapacity int) ([]byte, error) {
	return decompress(src, originalSize, srcCapacity)
}

func decompress(src []byte, originalSize, srcCapacity int) ([]byte, error) {
	if originalSize <= 0 {
		return nil, ErrInvalidParameter
	}
	if len(src) == 0 || len(src) > srcCapacity {
		return nil, ErrOutputOverrun
	}

	switch src[0] & 0x3 {
	case blockRaw:
		payload := src[1:]
		if len(payload) != originalSize {
			return nil, ErrCorruptStream
		}
		out := make([]byte, originalSize)
		copy(out, payload)
		return out, nil

	case blockRLE:
		if len(src) < 2 {
			return nil, ErrCorruptStream
		}
		out := make([]byte, originalSize)
		sym := src[1]
		for i := range out {
			out[i] = sym
		}
		return out, nil

	case blockNormal:
		norm, tableLog, headerBytes, err := ReadHeader(src)
		if err != nil {
			return nil, err
		}
		if headerBytes > srcCapacity {
			return nil, ErrOutputOverrun
		}
		dt, err := BuildDTable(norm, tableLog)
		if err != nil {
			return nil, err
		}
		payload := src[headerBytes:]
		if len(payload) < descriptorSize {
			return nil, ErrCorruptStream
		}
		_, _, nbStates := unpackDescriptor(binary.LittleEndian.Uint32(payload))
		switch nbStates {
		case 1:
			return DecodeStream(dt, payload, originalSize)
		case 2:
			return DecodeStreamParallel(dt, payload, originalSize)
		default:
			return nil, ErrCorruptStream
		}

	default:
		return nil, ErrMalformedHeader
	}
}

// entropyBits computes the Shannon entropy estimate (bits/symbol) of a
// histogram over a block of the given length.
func entropyBits(count []uint32, total int) float64 {
	if total == 0 {
		return 0
	}
	var bits float64
	for _, c := range count {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		bits -= float64(c) * math.Log2(p)
	}
	return bits / float64(total)
}
