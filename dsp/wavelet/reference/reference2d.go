package reference

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Details holds the three detail bands of one 2D level. H is high-pass along
// the rows axis (height), V along the columns axis (width) and D along both.
type Details struct {
	H, V, D *mat.Dense
}

// Dwt2 computes one level of the separable 2D transform, filtering the
// height axis first and the width axis second.
func Dwt2(img mat.Matrix, w *wavelet.Wavelet) (*mat.Dense, Details, error) {
	lo, hi, err := dwtColumns(img, w)
	if err != nil {
		return nil, Details{}, err
	}
	ll, lh, err := dwtColumns(lo.T(), w)
	if err != nil {
		return nil, Details{}, err
	}
	hl, hh, err := dwtColumns(hi.T(), w)
	if err != nil {
		return nil, Details{}, err
	}
	return transposed(ll), Details{H: transposed(hl), V: transposed(lh), D: transposed(hh)}, nil
}

// Idwt2 inverts Dwt2. All four bands must share one shape.
func Idwt2(cA *mat.Dense, d Details, w *wavelet.Wavelet) (*mat.Dense, error) {
	r, c := cA.Dims()
	for _, band := range []*mat.Dense{d.H, d.V, d.D} {
		if br, bc := band.Dims(); br != r || bc != c {
			return nil, fmt.Errorf("%w: band %d×%d, approximation %d×%d", ErrCoeffMismatch, br, bc, r, c)
		}
	}

	lo, err := idwtColumns(cA.T(), d.V.T(), w)
	if err != nil {
		return nil, err
	}
	hi, err := idwtColumns(d.H.T(), d.D.T(), w)
	if err != nil {
		return nil, err
	}
	return idwtColumns(lo.T(), hi.T(), w)
}

// Wavedec2 computes a multi-level 2D decomposition. Details are returned
// coarsest first. A level of 0 selects MaxLevel of the shorter side.
func Wavedec2(img mat.Matrix, w *wavelet.Wavelet, level int) (*mat.Dense, []Details, error) {
	rows, cols := img.Dims()
	level, err := resolveLevel(min(rows, cols), w.Len(), level)
	if err != nil {
		return nil, nil, err
	}

	details := make([]Details, level)
	a := img
	for i := level - 1; i >= 0; i-- {
		var next *mat.Dense
		if next, details[i], err = Dwt2(a, w); err != nil {
			return nil, nil, err
		}
		a = next
	}
	return mat.DenseCopyOf(a), details, nil
}

// Waverec2 inverts Wavedec2, cropping an approximation one row or column
// larger than its detail bands.
func Waverec2(cA *mat.Dense, details []Details, w *wavelet.Wavelet) (*mat.Dense, error) {
	a := cA
	for _, d := range details {
		r, c := d.H.Dims()
		ar, ac := a.Dims()
		if ar < r || ar > r+1 || ac < c || ac > c+1 {
			return nil, fmt.Errorf("%w: approximation %d×%d for detail %d×%d", ErrCoeffMismatch, ar, ac, r, c)
		}
		if ar != r || ac != c {
			a = mat.DenseCopyOf(a.Slice(0, r, 0, c))
		}

		var err error
		if a, err = Idwt2(a, d, w); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// dwtColumns applies Dwt to every column of m.
func dwtColumns(m mat.Matrix, w *wavelet.Wavelet) (lo, hi *mat.Dense, err error) {
	rows, cols := m.Dims()
	col := make([]float64, rows)
	for j := range cols {
		mat.Col(col, j, m)
		a, d, err := Dwt(col, w)
		if err != nil {
			return nil, nil, err
		}
		if lo == nil {
			lo = mat.NewDense(len(a), cols, nil)
			hi = mat.NewDense(len(d), cols, nil)
		}
		lo.SetCol(j, a)
		hi.SetCol(j, d)
	}
	return lo, hi, nil
}

// idwtColumns applies Idwt to matching columns of a and d.
func idwtColumns(a, d mat.Matrix, w *wavelet.Wavelet) (*mat.Dense, error) {
	rows, cols := a.Dims()
	ca := make([]float64, rows)
	cd := make([]float64, rows)

	var out *mat.Dense
	for j := range cols {
		mat.Col(ca, j, a)
		mat.Col(cd, j, d)
		x, err := Idwt(ca, cd, w)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = mat.NewDense(len(x), cols, nil)
		}
		out.SetCol(j, x)
	}
	return out, nil
}

func transposed(m *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(m.T())
}
