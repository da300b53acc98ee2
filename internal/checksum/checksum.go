// Package checksum provides a block-integrity check for fsecli's archive
// format, standing in for the "checksum (xxHash)" external collaborator
// the fse core specification explicitly keeps out of its own scope.
package checksum

import "github.com/dchest/siphash"

// blockKey0/blockKey1 are fixed, non-secret keys: this checksum detects
// accidental corruption in an archive, not tampering by an adversary.
const (
	blockKey0 = 0x6673656172636869
	blockKey1 = 0x76657220626c6f63
)

// Block returns a 64-bit integrity checksum for a decompressed block.
func Block(data []byte) uint64 {
	lo, _ := siphash.Hash128(blockKey0, blockKey1, data)
	return lo
}

// Verify reports whether data matches a previously computed checksum.
func Verify(data []byte, want uint64) bool {
	return Block(data) == want
}
