package fse

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, src []byte) []byte {
	t.Helper()
	out, err := Compress(src)
	if err != nil {
		t.Fatalf("Compress: %s", err)
	}
	got, err := Decompress(out, len(src))
	if err != nil {
		t.Fatalf("Decompress: %s", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(src))
	}
	return out
}

// TestCompressEmptyIsError matches the concrete scenario: empty input is
// rejected rather than silently producing a zero-length block.
func TestCompressEmptyIsError(t *testing.T) {
	if _, err := Compress(nil); err != ErrInvalidParameter {
		t.Fatalf("Compress(nil) = %v, want ErrInvalidParameter", err)
	}
}

// TestCompressSingleByteIsRaw matches the concrete scenario: a single "A"
// byte encodes as the 2-byte raw block [blockRaw, 'A'].
func TestCompressSingleByteIsRaw(t *testing.T) {
	out := roundTrip(t, []byte("A"))
	want := []byte{blockRaw, 'A'}
	if !bytes.Equal(out, want) {
		t.Fatalf("got % x, want % x", out, want)
	}
}

// TestCompressRepeatedIsRLE matches the concrete scenario: eight repeats of
// the same byte encode as the 2-byte RLE block [blockRLE, 'A'].
func TestCompressRepeatedIsRLE(t *testing.T) {
	src := bytes.Repeat([]byte("A"), 8)
	out := roundTrip(t, src)
	want := []byte{blockRLE, 'A'}
	if !bytes.Equal(out, want) {
		t.Fatalf("got % x, want % x", out, want)
	}
}

// TestCompressAll256Symbols matches the concrete scenario: a block
// containing every byte value exactly once needs a tableLog of at least 8
// to give each symbol a representable slot.
func TestCompressAll256Symbols(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	_, stats, err := CompressWithStats(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TableLog < 8 {
		t.Fatalf("tableLog=%d, want >= 8", stats.TableLog)
	}
	roundTrip(t, src)
}

// TestCompressUniformRandomFallsBackToRaw checks that for incompressible
// (uniform random) input, the block codec never emits output longer than
// source+1.
func TestCompressUniformRandomFallsBackToRaw(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := make([]byte, 4096)
	rng.Read(src)

	out := roundTrip(t, src)
	if len(out) > len(src)+1 {
		t.Fatalf("compressed size %d exceeds source+1 (%d)", len(out), len(src)+1)
	}
}

// TestCompressSkewedDistributionCompresses matches the concrete scenario: a
// skewed four-symbol distribution compresses well below the source size.
func TestCompressSkewedDistributionCompresses(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dist := []struct {
		b byte
		p float64
	}{{'a', 0.5}, {'b', 0.25}, {'c', 0.125}, {'d', 0.125}}
	src := make([]byte, 64*1024)
	for i := range src {
		r := rng.Float64()
		var acc float64
		chosen := dist[len(dist)-1].b
		for _, d := range dist {
			acc += d.p
			if r < acc {
				chosen = d.b
				break
			}
		}
		src[i] = chosen
	}

	out := roundTrip(t, src)
	if len(out) >= len(src) {
		t.Fatalf("compressed size %d did not beat source size %d", len(out), len(src))
	}
}

// TestCompressRoundTripVariety checks exact round-trip recovery across a
// spread of lengths, from two bytes to more than 64 KiB, including odd
// lengths.
func TestCompressRoundTripVariety(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	lens := []int{2, 3, 9, 63, 64, 65, 1023, 4096, 70000}
	for _, n := range lens {
		src := make([]byte, n)
		for i := range src {
			// Skew toward a handful of symbols so the table isn't flat.
			src[i] = byte(rng.Intn(5))
		}
		roundTrip(t, src)
	}
}

// TestCompressParallelRoundTrip checks that blocks written with the
// two-state stream codec decode correctly through the same Decompress used
// for single-state blocks, since the descriptor -- not the call site --
// decides which stream codec path to use.
func TestCompressParallelRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, n := range []int{2, 3, 9, 64, 65, 4096} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(rng.Intn(5))
		}
		out, err := CompressParallel(src)
		if err != nil {
			t.Fatalf("n=%d: CompressParallel: %s", n, err)
		}
		got, err := Decompress(out, n)
		if err != nil {
			t.Fatalf("n=%d: Decompress: %s", n, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}

func TestDecompressRejectsTruncatedArchive(t *testing.T) {
	src := bytes.Repeat([]byte{1, 2, 3, 4}, 200)
	out, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) < 2 {
		t.Skip("block too small to truncate meaningfully")
	}
	_, err = Decompress(out[:len(out)-1], len(src))
	if err == nil {
		t.Fatal("expected an error decompressing a truncated block")
	}
}

func TestDecompressSafeRefusesOverrun(t *testing.T) {
	src := []byte("hello world, this is a test of the safe decompressor")
	out, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecompressSafe(out, len(src), len(out)-1); err == nil {
		t.Fatal("expected ErrOutputOverrun when srcCapacity is too small")
	}
}
