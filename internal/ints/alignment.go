// Package ints provides small generic bit/alignment helpers shared across
// the fse table builder and normalizer.
package ints

import (
	"golang.org/x/exp/constraints"
)

// AlignDown returns v aligned down to a given alignment.
func AlignDown[T constraints.Unsigned](v, alignment T) T {
	return (v / alignment) * alignment
}

// AlignUp returns v aligned up to a given alignment.
func AlignUp[T constraints.Unsigned](v, alignment T) T {
	return ((v + alignment - 1) / alignment) * alignment
}

// Log2Floor returns floor(log2(v)) for v > 0.
func Log2Floor[T constraints.Unsigned](v T) int {
	n := -1
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

// Log2Ceil returns ceil(log2(v)) for v > 0.
func Log2Ceil[T constraints.Unsigned](v T) int {
	n := Log2Floor(v)
	if v&(v-1) != 0 {
		n++
	}
	return n
}
