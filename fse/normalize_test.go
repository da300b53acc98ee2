package fse

import "testing"

// TestNormalizeCountSumAndSupport checks that the normalized counts sum to
// exactly 2^tableLog, and that every symbol with a non-zero raw count
// keeps a non-zero normalized count.
func TestNormalizeCountSumAndSupport(t *testing.T) {
	cases := []struct {
		name  string
		count []uint32
	}{
		{"two-symbol-skewed", []uint32{1000, 1}},
		{"uniform-16", func() []uint32 {
			c := make([]uint32, 16)
			for i := range c {
				c[i] = 7
			}
			return c
		}()},
		{"single-rare-symbol", []uint32{1 << 20, 1, 3}},
		{"all-256", func() []uint32 {
			c := make([]uint32, 256)
			for i := range c {
				c[i] = uint32(i + 1)
			}
			return c
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var total uint32
			for _, c := range tc.count {
				total += c
			}
			tableLog, err := ChooseTableLog(total, len(tc.count), 0)
			if err != nil {
				t.Fatal(err)
			}
			norm, err := NormalizeCount(tc.count, total, len(tc.count), tableLog)
			if err != nil {
				t.Fatal(err)
			}

			var sum int32
			for s, n := range norm {
				sum += n
				if tc.count[s] > 0 && n < 1 {
					t.Fatalf("symbol %d: count=%d but norm=%d", s, tc.count[s], n)
				}
			}
			want := int32(1) << tableLog
			if sum != want {
				t.Fatalf("norm sums to %d, want %d (tableLog=%d)", sum, want, tableLog)
			}
		})
	}
}
