package sparse

import (
	"testing"

	"github.com/cwbudde/algo-wavelet/internal/testutil"
)

func BenchmarkMulVecBanded(b *testing.B) {
	const n = 4096
	bld := NewBuilder(n, n)
	for i := range n {
		for k := -4; k <= 4; k++ {
			if j := i + k; j >= 0 && j < n {
				bld.Add(i, j, float64(k))
			}
		}
	}
	m := bld.Build()
	x := testutil.DeterministicNoise(1, 1, n)
	dst := make([]float64, n)

	b.ResetTimer()
	for range b.N {
		if err := m.MulVecTo(dst, x); err != nil {
			b.Fatal(err)
		}
	}
}
