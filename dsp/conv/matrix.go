package conv

import (
	"fmt"

	"github.com/cwbudde/algo-wavelet/dsp/sparse"
)

// Matrix returns the sparse operator M with M·x equal to
// ConvolveStrided(x, filter, mode, stride) for every x of length n.
//
// Row r holds the reversed filter starting at column r·stride − off, with
// off = len(filter)−1 for ModeFull, len(filter)/2 for ModeSame and 0 for
// ModeValid. Taps falling outside [0, n) are dropped.
func Matrix(filter []float64, n int, mode Mode, stride int) (*sparse.Matrix, error) {
	rows, err := OutputLen(n, len(filter), mode, stride)
	if err != nil {
		return nil, err
	}
	first, err := fullOffset(len(filter), mode)
	if err != nil {
		return nil, err
	}
	return Banded(filter, n, rows, first, stride)
}

// Banded returns the rows×n matrix whose row r computes sample
// first + r·stride of the full convolution of filter with an n-sample input.
// Taps that fall outside the input are dropped, so rows near either end may
// hold fewer than len(filter) entries. Zero filter taps are not stored.
func Banded(filter []float64, n, rows, first, stride int) (*sparse.Matrix, error) {
	if err := validateBanded(filter, n, rows, stride); err != nil {
		return nil, err
	}

	l := len(filter)
	b := sparse.NewBuilder(rows, n)
	for r := range rows {
		start := BandStart(r, l, first, stride)
		for j := max(0, -start); j < l && start+j < n; j++ {
			if v := filter[l-1-j]; v != 0 {
				b.Add(r, start+j, v)
			}
		}
	}
	return b.Build(), nil
}

// CircularBanded is the periodic counterpart of Banded: the input is treated
// as one period of an n-periodic signal, so taps wrap around modulo n instead
// of being dropped. Taps landing on the same column are summed.
func CircularBanded(filter []float64, n, rows, first, stride int) (*sparse.Matrix, error) {
	if err := validateBanded(filter, n, rows, stride); err != nil {
		return nil, err
	}

	l := len(filter)
	b := sparse.NewBuilder(rows, n)
	for r := range rows {
		start := BandStart(r, l, first, stride)
		for j := range l {
			if v := filter[l-1-j]; v != 0 {
				b.Add(r, mod(start+j, n), v)
			}
		}
	}
	return b.Build(), nil
}

// BandStart returns the first input column touched by row r of a banded
// matrix built with Banded(filter, n, rows, first, stride) for a filter of
// length l. The row spans columns [start, start+l).
func BandStart(r, l, first, stride int) int {
	return first + r*stride - (l - 1)
}

func validateBanded(filter []float64, n, rows, stride int) error {
	switch {
	case len(filter) == 0:
		return ErrEmptyKernel
	case n < 1:
		return fmt.Errorf("%w: input length %d", ErrEmptyInput, n)
	case rows < 0:
		return fmt.Errorf("%w: %d rows", ErrLengthMismatch, rows)
	case stride < 1:
		return fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}
	return nil
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
