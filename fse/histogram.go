package fse

import "github.com/neal-burns/FiniteStateEntropy/internal/ints"

// Count reads src once and returns per-symbol frequencies plus nbSymbols,
// one more than the highest byte value observed. Four accumulators fed by
// interleaved byte lanes let the compiler pipeline independent
// read-modify-write chains instead of serializing on one array; the final
// merge into count sums the four lanes back together.
func Count(src []byte) (count [256]uint32, nbSymbols int, err error) {
	if len(src) == 0 {
		return count, 0, ErrInvalidParameter
	}

	var lanes [4][256]uint32
	n := uint(len(src))
	e := ints.AlignDown(n, 4)
	for i := uint(0); i < e; i += 4 {
		lanes[0][src[i+0]]++
		lanes[1][src[i+1]]++
		lanes[2][src[i+2]]++
		lanes[3][src[i+3]]++
	}
	for i := e; i < n; i++ {
		lanes[0][src[i]]++
	}

	highest := -1
	for i := 0; i < 256; i++ {
		count[i] = lanes[0][i] + lanes[1][i] + lanes[2][i] + lanes[3][i]
		if count[i] != 0 {
			highest = i
		}
	}
	return count, highest + 1, nil
}
