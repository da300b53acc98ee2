package fse

import (
	"bytes"
	"testing"
)

func FuzzCompressRoundtrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("A"))
	f.Add([]byte("AAAAAAAA"))
	f.Add([]byte("hello, world"))
	f.Add(bytes.Repeat([]byte{0, 1, 2, 3}, 64))

	f.Fuzz(func(t *testing.T, src []byte) {
		out, err := Compress(src)
		if err != nil {
			if len(src) == 0 {
				return
			}
			t.Fatalf("Compress(%d bytes): %s", len(src), err)
		}
		got, err := Decompress(out, len(src))
		if err != nil {
			t.Fatalf("Decompress: %s", err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("round trip mismatch for %d-byte input", len(src))
		}
	})
}
