package conv

import (
	"fmt"

	"github.com/cwbudde/algo-wavelet/dsp/sparse"
)

// Matrix2D returns the operator computing the 2D convolution of a rows×cols
// image with filter under mode. The operator acts on column-major flattened
// images (see ColumnMajor) and produces a column-major flattened result of
// shape OutputShape2D.
func Matrix2D(filter [][]float64, rows, cols int, mode Mode) (*sparse.Matrix, error) {
	return StridedMatrix2D(filter, rows, cols, mode, 1)
}

// StridedMatrix2D is Matrix2D keeping every stride-th output row and column.
//
// The operator is assembled as Σ_b D_b ⊗ C_b, where C_b convolves the image
// columns with filter column b and D_b shifts along the width axis by b. Both
// factors are built with the stride applied, so no stride-1 operator is
// formed and subsampled afterwards.
func StridedMatrix2D(filter [][]float64, rows, cols int, mode Mode, stride int) (*sparse.Matrix, error) {
	fh, fw, err := kernelShape(filter)
	if err != nil {
		return nil, err
	}
	outRows, outCols, err := OutputShape2D(rows, cols, fh, fw, mode, stride)
	if err != nil {
		return nil, err
	}

	b := sparse.NewBuilder(outRows*outCols, rows*cols)
	column := make([]float64, fh)
	impulse := make([]float64, fw)
	for j := range fw {
		for i := range fh {
			column[i] = filter[i][j]
		}
		c, err := Matrix(column, rows, mode, stride)
		if err != nil {
			return nil, err
		}

		clear(impulse)
		impulse[j] = 1
		d, err := Matrix(impulse, cols, mode, stride)
		if err != nil {
			return nil, err
		}

		b.AddKronecker(d, c)
	}
	return b.Build(), nil
}

// OutputShape2D applies OutputLen independently to both axes.
func OutputShape2D(rows, cols, fh, fw int, mode Mode, stride int) (outRows, outCols int, err error) {
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("%w: image %d×%d", ErrEmptyInput, rows, cols)
	}
	if outRows, err = OutputLen(rows, fh, mode, stride); err != nil {
		return 0, 0, err
	}
	if outCols, err = OutputLen(cols, fw, mode, stride); err != nil {
		return 0, 0, err
	}
	return outRows, outCols, nil
}

func kernelShape(filter [][]float64) (fh, fw int, err error) {
	if len(filter) == 0 || len(filter[0]) == 0 {
		return 0, 0, ErrEmptyKernel
	}
	fw = len(filter[0])
	for _, row := range filter {
		if len(row) != fw {
			return 0, 0, ErrRaggedKernel
		}
	}
	return len(filter), fw, nil
}
