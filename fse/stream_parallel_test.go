package fse

import (
	"bytes"
	"math/rand"
	"testing"
)

// TestStreamParallelRoundTrip exercises the two-state (ILP) stream codec
// directly, across both even- and odd-length bodies: the literal trailing
// "cheap last symbol" byte is always present, while the catch-up preamble
// only applies when the body before it has odd length.
func TestStreamParallelRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	norm := []int32{54, 50, 50, 30, 20, 10, 42}
	var total int32
	for _, n := range norm {
		total += n
	}
	tableLog := uint8(8)
	if total != int32(1)<<tableLog {
		t.Fatalf("test setup: norm sums to %d, want %d", total, int32(1)<<tableLog)
	}

	ct, err := BuildCTable(norm, tableLog)
	if err != nil {
		t.Fatal(err)
	}
	dt, err := BuildDTable(norm, tableLog)
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{2, 3, 4, 5, 10, 11, 100, 101, 1000, 1001} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(rng.Intn(len(norm)))
		}

		encoded, err := EncodeStreamParallel(ct, src)
		if err != nil {
			t.Fatalf("n=%d: EncodeStreamParallel: %s", n, err)
		}
		got, err := DecodeStreamParallel(dt, encoded, n)
		if err != nil {
			t.Fatalf("n=%d: DecodeStreamParallel: %s", n, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("n=%d: round trip mismatch\n got: %v\nwant: %v", n, got, src)
		}
	}
}

func TestStreamParallelRejectsShortInput(t *testing.T) {
	norm := []int32{32}
	ct, err := BuildCTable(norm, 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EncodeStreamParallel(ct, []byte{0}); err != ErrInvalidParameter {
		t.Fatalf("EncodeStreamParallel(1 byte) = %v, want ErrInvalidParameter", err)
	}
}
