package boundary

import (
	"github.com/cwbudde/algo-wavelet/dsp/sparse"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Band identifies one of the four subbands of a 2D single-level transform.
type Band int

const (
	// BandLL is low-pass along both axes (approximation).
	BandLL Band = iota
	// BandLH is high-pass along the height axis and low-pass along the width
	// (horizontal detail).
	BandLH
	// BandHL is low-pass along the height axis and high-pass along the width
	// (vertical detail).
	BandHL
	// BandHH is high-pass along both axes (diagonal detail).
	BandHH
)

// Matrices2D returns analysis and synthesis operators for rows×cols images
// flattened in column-major order.
//
// The analysis output is the concatenation of the four bands in the order
// LL, LH, HL, HH. Each band is a column-major (rows/2)×(cols/2) image. The
// operators are the Kronecker products of the 1D matrices for each axis
// with their rows (analysis) or columns (synthesis) grouped by band.
func Matrices2D(w *wavelet.Wavelet, rows, cols int, mode Mode) (a, s *sparse.Matrix, err error) {
	if a, err = Analysis2D(w, rows, cols, mode); err != nil {
		return nil, nil, err
	}
	if s, err = Synthesis2D(w, rows, cols, mode); err != nil {
		return nil, nil, err
	}
	return a, s, nil
}

// Analysis2D returns the analysis operator of Matrices2D.
func Analysis2D(w *wavelet.Wavelet, rows, cols int, mode Mode) (*sparse.Matrix, error) {
	aH, err := Analysis(w, rows, mode)
	if err != nil {
		return nil, err
	}
	aW, err := Analysis(w, cols, mode)
	if err != nil {
		return nil, err
	}
	return sparse.Kronecker(aW, aH).PermuteRows(bandPermutation(rows, cols))
}

// Synthesis2D returns the synthesis operator of Matrices2D.
func Synthesis2D(w *wavelet.Wavelet, rows, cols int, mode Mode) (*sparse.Matrix, error) {
	sH, err := Synthesis(w, rows, mode)
	if err != nil {
		return nil, err
	}
	sW, err := Synthesis(w, cols, mode)
	if err != nil {
		return nil, err
	}
	st, err := sparse.Kronecker(sW, sH).Transpose().PermuteRows(bandPermutation(rows, cols))
	if err != nil {
		return nil, err
	}
	return st.Transpose(), nil
}

// BandOf returns the band and position within the band of row k of
// A_W ⊗ A_H for a rows×cols image.
func BandOf(k, rows, cols int) (band Band, pos int) {
	hh, hw := rows/2, cols/2
	rW, rH := k/rows, k%rows

	switch {
	case rH < hh && rW < hw:
		band = BandLL
	case rH >= hh && rW < hw:
		band = BandLH
	case rH < hh:
		band = BandHL
	default:
		band = BandHH
	}
	return band, (rW%hw)*hh + rH%hh
}

// bandPermutation returns perm with perm[i] the Kronecker row that lands at
// position i of the band-ordered output.
func bandPermutation(rows, cols int) []int {
	n := rows * cols
	size := n / 4
	perm := make([]int, n)
	for k := range n {
		band, pos := BandOf(k, rows, cols)
		perm[int(band)*size+pos] = k
	}
	return perm
}
