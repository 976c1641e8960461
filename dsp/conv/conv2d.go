package conv

import (
	"gonum.org/v1/gonum/mat"
)

// Convolve2D computes the 2D convolution of img with filter and returns the
// region selected by mode, matching scipy.signal.convolve2d.
func Convolve2D(img mat.Matrix, filter [][]float64, mode Mode) (*mat.Dense, error) {
	return Convolve2DStrided(img, filter, mode, 1)
}

// Convolve2DStrided is Convolve2D keeping every stride-th output row and
// column, starting with the first.
func Convolve2DStrided(img mat.Matrix, filter [][]float64, mode Mode, stride int) (*mat.Dense, error) {
	fh, fw, err := kernelShape(filter)
	if err != nil {
		return nil, err
	}
	rows, cols := img.Dims()
	outRows, outCols, err := OutputShape2D(rows, cols, fh, fw, mode, stride)
	if err != nil {
		return nil, err
	}
	rowStart, err := fullOffset(fh, mode)
	if err != nil {
		return nil, err
	}
	colStart, err := fullOffset(fw, mode)
	if err != nil {
		return nil, err
	}

	// Full result, one image row against one filter row at a time.
	full := make([][]float64, rows+fh-1)
	for i := range full {
		full[i] = make([]float64, cols+fw-1)
	}
	line := make([]float64, cols)
	partial := make([]float64, cols+fw-1)
	for i := range rows {
		mat.Row(line, i, img)
		for a := range fh {
			DirectTo(partial, line, filter[a])
			dst := full[i+a]
			for k, v := range partial {
				dst[k] += v
			}
		}
	}

	out := mat.NewDense(outRows, outCols, nil)
	for p := range outRows {
		for q := range outCols {
			out.Set(p, q, full[rowStart+p*stride][colStart+q*stride])
		}
	}
	return out, nil
}

// ColumnMajor flattens m column by column: index c·rows + r holds m(r, c).
func ColumnMajor(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for c := range cols {
		for r := range rows {
			out = append(out, m.At(r, c))
		}
	}
	return out
}

// FromColumnMajor is the inverse of ColumnMajor. It panics if
// len(v) != rows·cols.
func FromColumnMajor(v []float64, rows, cols int) *mat.Dense {
	if len(v) != rows*cols {
		panic(mat.ErrShape)
	}
	out := mat.NewDense(rows, cols, nil)
	for c := range cols {
		for r := range rows {
			out.Set(r, c, v[c*rows+r])
		}
	}
	return out
}
