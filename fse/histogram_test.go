package fse

import "testing"

func TestCountBasic(t *testing.T) {
	count, nbSymbols, err := Count([]byte("banana"))
	if err != nil {
		t.Fatal(err)
	}
	if nbSymbols != 'n'+1 {
		t.Fatalf("nbSymbols=%d, want %d", nbSymbols, 'n'+1)
	}
	want := map[byte]uint32{'b': 1, 'a': 3, 'n': 2}
	for b, n := range want {
		if count[b] != n {
			t.Fatalf("count[%q]=%d, want %d", b, count[b], n)
		}
	}
	var total uint32
	for _, c := range count {
		total += c
	}
	if total != 6 {
		t.Fatalf("total count=%d, want 6", total)
	}
}

func TestCountEmptyIsError(t *testing.T) {
	if _, _, err := Count(nil); err != ErrInvalidParameter {
		t.Fatalf("Count(nil) = %v, want ErrInvalidParameter", err)
	}
}

// TestCountUnalignedLengths exercises the lane-accumulator tail loop for
// lengths that aren't multiples of 4.
func TestCountUnalignedLengths(t *testing.T) {
	for n := 1; n <= 17; n++ {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i % 3)
		}
		count, nbSymbols, err := Count(src)
		if err != nil {
			t.Fatal(err)
		}
		if nbSymbols < 1 || nbSymbols > 3 {
			t.Fatalf("n=%d: nbSymbols=%d out of expected range", n, nbSymbols)
		}
		var total uint32
		for _, c := range count {
			total += c
		}
		if int(total) != n {
			t.Fatalf("n=%d: total count=%d, want %d", n, total, n)
		}
	}
}
