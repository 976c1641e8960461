package conv

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-wavelet/internal/testutil"
)

// Benchmark direct convolution with various sizes.
func BenchmarkDirect(b *testing.B) {
	sizes := []struct {
		signal int
		kernel int
	}{
		{256, 8},
		{1024, 8},
		{1024, 32},
		{4096, 32},
	}

	for _, size := range sizes {
		signal := makeTestSignal(size.signal)
		kernel := makeTestKernel(size.kernel)

		b.Run(fmt.Sprintf("signal=%d_kernel=%d", size.signal, size.kernel), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = Direct(signal, kernel)
			}
		})
	}
}

// Benchmark strided matrix-vector products against the direct reference.
func BenchmarkMatrixMulVec(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		signal := makeTestSignal(n)
		kernel := makeTestKernel(8)

		m, err := Matrix(kernel, n, ModeSame, 2)
		if err != nil {
			b.Fatal(err)
		}
		dst := make([]float64, (n+1)/2)

		b.Run(fmt.Sprintf("matrix/n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = m.MulVecTo(dst, signal)
			}
		})
		b.Run(fmt.Sprintf("direct/n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = ConvolveStrided(signal, kernel, ModeSame, 2)
			}
		})
	}
}

func BenchmarkStridedMatrix2D(b *testing.B) {
	for _, size := range []int{32, 64} {
		filter := testutil.DeterministicFilter2D(1, 8, 8)

		b.Run(fmt.Sprintf("build/%dx%d", size, size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = StridedMatrix2D(filter, size, size, ModeSame, 2)
			}
		})
	}
}

// Benchmark overlap-add convolution with a reused convolver.
func BenchmarkOverlapAddReuse(b *testing.B) {
	signal := makeTestSignal(4096)
	kernel := makeTestKernel(256)

	oa, err := NewOverlapAdd(kernel, 1024)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = oa.Process(signal)
	}
}

func makeTestSignal(n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2*math.Pi*float64(i)/64) + 0.5*math.Sin(2*math.Pi*float64(i)/17)
	}
	return signal
}

func makeTestKernel(n int) []float64 {
	kernel := make([]float64, n)
	for i := range kernel {
		kernel[i] = math.Exp(-float64(i) / float64(n/4+1))
	}
	return kernel
}
