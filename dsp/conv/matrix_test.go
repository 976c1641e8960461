package conv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/internal/testutil"
)

func TestMatrixMatchesConvolution(t *testing.T) {
	for _, filterLen := range []int{2, 3, 4} {
		for _, n := range []int{8, 9} {
			for _, mode := range []Mode{ModeFull, ModeSame, ModeValid} {
				for _, stride := range []int{1, 2, 3} {
					name := fmt.Sprintf("L%d/N%d/%v/S%d", filterLen, n, mode, stride)
					t.Run(name, func(t *testing.T) {
						h := testutil.DeterministicNoise(int64(filterLen), 1, filterLen)
						x := testutil.DeterministicNoise(int64(100+n), 1, n)

						m, err := Matrix(h, n, mode, stride)
						if err != nil {
							t.Fatalf("Matrix: %v", err)
						}
						got, err := m.MulVec(x)
						if err != nil {
							t.Fatalf("MulVec: %v", err)
						}
						want, err := ConvolveStrided(x, h, mode, stride)
						if err != nil {
							t.Fatalf("ConvolveStrided: %v", err)
						}
						testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
					})
				}
			}
		}
	}
}

func TestMatrixComputesConvolutionNotCorrelation(t *testing.T) {
	h := []float64{1, 2, 3}
	x := []float64{1, 0, 0, 0, 0}

	m, err := Matrix(h, len(x), ModeFull, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := m.MulVec(x)
	// The impulse response of a convolution is the filter itself.
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 2, 3, 0, 0, 0, 0}, 0)

	corr, _ := CorrelateMode(x, h, ModeFull)
	if diff, _ := testutil.MaxAbsDiff(got, corr); diff == 0 {
		t.Fatal("convolution matrix must differ from correlation for asymmetric filters")
	}
}

func TestMatrixBandStructure(t *testing.T) {
	h := []float64{1, 2, 3, 4}
	m, err := Matrix(h, 6, ModeSame, 2)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := m.Dims()
	if rows != 3 || cols != 6 {
		t.Fatalf("dims = %d×%d, want 3×6", rows, cols)
	}
	// Row r starts at column 2r − L/2 with the filter reversed.
	want := [][]float64{
		{2, 1, 0, 0, 0, 0},
		{4, 3, 2, 1, 0, 0},
		{0, 0, 4, 3, 2, 1},
	}
	for r := range want {
		testutil.RequireSliceNearlyEqual(t, m.DenseRow(r), want[r], 0)
	}
	if m.RowNNZ(0) != 2 {
		t.Fatalf("truncated row should hold 2 entries, got %d", m.RowNNZ(0))
	}
}

func TestCircularBandedMatchesCircularConvolution(t *testing.T) {
	const n = 8
	h := []float64{0.5, -1, 2}
	x := testutil.DeterministicNoise(9, 1, n)

	m, err := CircularBanded(h, n, n, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := m.MulVec(x)

	padded := make([]float64, n)
	copy(padded, h)
	want, err := DirectCircular(x, padded)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestCircularBandedWrapsLongFilters(t *testing.T) {
	// A filter longer than the period folds onto itself.
	h := []float64{1, 2, 3, 4, 5}
	m, err := CircularBanded(h, 2, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Row 0 covers columns -4..0: taps 5,4,3,2,1 land on 0,1,0,1,0.
	testutil.RequireSliceNearlyEqual(t, m.DenseRow(0), []float64{9, 6}, 0)
}

func TestMatrixErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter []float64
		n      int
		mode   Mode
		stride int
		want   error
	}{
		{"zero stride", []float64{1, 2}, 8, ModeFull, 0, ErrInvalidStride},
		{"negative stride", []float64{1, 2}, 8, ModeSame, -2, ErrInvalidStride},
		{"empty filter", nil, 8, ModeFull, 1, ErrEmptyKernel},
		{"empty input", []float64{1}, 0, ModeFull, 1, ErrEmptyInput},
		{"valid too short", []float64{1, 2, 3}, 2, ModeValid, 1, ErrKernelTooLong},
		{"unknown mode", []float64{1}, 4, Mode(5), 1, ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Matrix(tt.filter, tt.n, tt.mode, tt.stride)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, core.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration kind, got %v", err)
			}
		})
	}
}
