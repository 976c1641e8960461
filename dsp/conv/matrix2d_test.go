package conv

import (
	"errors"
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-wavelet/internal/testutil"
)

func applyMatrix2D(t *testing.T, filter [][]float64, img *mat.Dense, mode Mode, stride int) *mat.Dense {
	t.Helper()
	rows, cols := img.Dims()
	m, err := StridedMatrix2D(filter, rows, cols, mode, stride)
	if err != nil {
		t.Fatalf("StridedMatrix2D: %v", err)
	}
	flat, err := m.MulVec(ColumnMajor(img))
	if err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	outRows, outCols, err := OutputShape2D(rows, cols, len(filter), len(filter[0]), mode, stride)
	if err != nil {
		t.Fatalf("OutputShape2D: %v", err)
	}
	return FromColumnMajor(flat, outRows, outCols)
}

func TestMatrix2DMatchesConvolve2D(t *testing.T) {
	filterShapes := [][2]int{{2, 2}, {3, 3}, {3, 2}, {2, 3}, {5, 3}, {3, 5}, {2, 5}, {5, 2}}
	sizes := [][2]int{{5, 5}, {16, 16}, {8, 16}, {16, 8}, {16, 7}, {7, 16}, {15, 15}}

	for fi, fs := range filterShapes {
		for si, size := range sizes {
			for _, mode := range []Mode{ModeSame, ModeFull, ModeValid} {
				name := fmt.Sprintf("%dx%d/%dx%d/%v", fs[0], fs[1], size[0], size[1], mode)
				t.Run(name, func(t *testing.T) {
					filter := testutil.DeterministicFilter2D(int64(fi), fs[0], fs[1])
					img := testutil.DeterministicImage(int64(si), 255, size[0], size[1])

					want, err := Convolve2D(img, filter, mode)
					if err != nil {
						t.Fatalf("Convolve2D: %v", err)
					}
					got := applyMatrix2D(t, filter, img, mode, 1)
					testutil.RequireMatrixNearlyEqual(t, got, want, 1e-9)
				})
			}
		}
	}
}

func TestStridedMatrix2D(t *testing.T) {
	filterShapes := [][2]int{{3, 3}, {2, 2}, {4, 4}, {3, 2}, {2, 3}}
	sizes := [][2]int{{14, 14}, {8, 16}, {16, 8}, {17, 8}, {8, 17}, {7, 7}, {7, 8}, {8, 7}}

	for fi, fs := range filterShapes {
		for si, size := range sizes {
			for _, mode := range []Mode{ModeFull, ModeValid} {
				name := fmt.Sprintf("%dx%d/%dx%d/%v", fs[0], fs[1], size[0], size[1], mode)
				t.Run(name, func(t *testing.T) {
					filter := testutil.DeterministicFilter2D(int64(10+fi), fs[0], fs[1])
					img := testutil.DeterministicImage(int64(20+si), 255, size[0], size[1])

					got := applyMatrix2D(t, filter, img, mode, 2)

					var wantRows, wantCols int
					switch mode {
					case ModeFull:
						wantRows = (fs[0] + size[0]) / 2
						wantCols = (fs[1] + size[1]) / 2
					case ModeValid:
						wantRows = (size[0]-fs[0])/2 + 1
						wantCols = (size[1]-fs[1])/2 + 1
					}
					if r, c := got.Dims(); r != wantRows || c != wantCols {
						t.Fatalf("shape = %d×%d, want %d×%d", r, c, wantRows, wantCols)
					}

					want, err := Convolve2DStrided(img, filter, mode, 2)
					if err != nil {
						t.Fatalf("Convolve2DStrided: %v", err)
					}
					testutil.RequireMatrixNearlyEqual(t, got, want, 1e-9)
				})
			}
		}
	}
}

// padForSame pads an image the way a strided "same" convolution does:
// ⌊F/2⌋ zeros before and ⌊F/2⌋−1+N%2 after, per axis.
func padForSame(img *mat.Dense, fh, fw int) *mat.Dense {
	rows, cols := img.Dims()
	top, left := fh/2, fw/2
	bottom := fh/2 - 1 + rows%2
	right := fw/2 - 1 + cols%2
	out := mat.NewDense(top+rows+bottom, left+cols+right, nil)
	for i := range rows {
		for j := range cols {
			out.Set(top+i, left+j, img.At(i, j))
		}
	}
	return out
}

func TestStridedMatrix2DSame(t *testing.T) {
	filterShapes := [][2]int{{3, 3}, {4, 4}, {4, 3}, {3, 4}}
	sizes := [][2]int{{7, 8}, {8, 7}, {7, 7}, {8, 8}, {16, 16}, {8, 16}, {16, 8}}

	for fi, fs := range filterShapes {
		for si, size := range sizes {
			name := fmt.Sprintf("%dx%d/%dx%d", fs[0], fs[1], size[0], size[1])
			t.Run(name, func(t *testing.T) {
				filter := testutil.DeterministicFilter2D(int64(30+fi), fs[0], fs[1])
				img := testutil.DeterministicImage(int64(40+si), 255, size[0], size[1])

				got := applyMatrix2D(t, filter, img, ModeSame, 2)

				want, err := Convolve2DStrided(padForSame(img, fs[0], fs[1]), filter, ModeValid, 2)
				if err != nil {
					t.Fatalf("Convolve2DStrided: %v", err)
				}
				if r, c := got.Dims(); r != (size[0]+1)/2 || c != (size[1]+1)/2 {
					t.Fatalf("shape = %d×%d, want ⌈size/2⌉", r, c)
				}
				testutil.RequireMatrixNearlyEqual(t, got, want, 1e-9)
			})
		}
	}
}

func TestMatrix2DErrors(t *testing.T) {
	filter := testutil.DeterministicFilter2D(1, 3, 3)

	if _, err := Matrix2D(filter, 2, 8, ModeValid); !errors.Is(err, ErrKernelTooLong) {
		t.Errorf("expected ErrKernelTooLong, got %v", err)
	}
	if _, err := Matrix2D(filter, 0, 8, ModeFull); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Matrix2D(filter, 8, -1, ModeFull); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := StridedMatrix2D(filter, 8, 8, ModeSame, 0); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("expected ErrInvalidStride, got %v", err)
	}
	if _, err := Matrix2D([][]float64{{1, 2}, {3}}, 8, 8, ModeFull); !errors.Is(err, ErrRaggedKernel) {
		t.Errorf("expected ErrRaggedKernel, got %v", err)
	}
	if _, err := Matrix2D(nil, 8, 8, ModeFull); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
}

func TestColumnMajorRoundTrip(t *testing.T) {
	img := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	flat := ColumnMajor(img)
	testutil.RequireSliceNearlyEqual(t, flat, []float64{1, 4, 2, 5, 3, 6}, 0)
	testutil.RequireMatrixNearlyEqual(t, FromColumnMajor(flat, 2, 3), img, 0)
}
