package reference

import (
	"fmt"

	"github.com/cwbudde/algo-wavelet/dsp/conv"
	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Errors returned by the reference transforms.
var (
	ErrCoeffMismatch = fmt.Errorf("reference: coefficient shapes do not match: %w", core.ErrInvalidConfiguration)
	ErrInvalidLevel  = fmt.Errorf("reference: invalid decomposition level: %w", core.ErrInvalidConfiguration)
)

// MaxLevel returns the deepest useful decomposition level for a signal of
// length n and a filter of length l: ⌊log2(n/(l−1))⌋, or 0 for l < 2.
func MaxLevel(n, l int) int {
	if l < 2 || n < 1 {
		return 0
	}
	level := 0
	for (l-1)<<(level+1) <= n {
		level++
	}
	return level
}

// Dwt computes one level of the zero-padded discrete wavelet transform.
// Both outputs have length ⌊(len(x)+L−1)/2⌋ and hold the odd-indexed samples
// of the full convolution with the decomposition filters.
func Dwt(x []float64, w *wavelet.Wavelet) (cA, cD []float64, err error) {
	if len(x) == 0 {
		return nil, nil, conv.ErrEmptyInput
	}

	lo, err := conv.Direct(x, w.DecLo)
	if err != nil {
		return nil, nil, err
	}
	hi, err := conv.Direct(x, w.DecHi)
	if err != nil {
		return nil, nil, err
	}

	n := (len(x) + w.Len() - 1) / 2
	cA = make([]float64, n)
	cD = make([]float64, n)
	for i := range n {
		cA[i] = lo[2*i+1]
		cD[i] = hi[2*i+1]
	}
	return cA, cD, nil
}

// Idwt inverts one level of Dwt. The result has length 2·len(cA) − L + 2,
// which is the original length rounded up to even.
func Idwt(cA, cD []float64, w *wavelet.Wavelet) ([]float64, error) {
	if len(cA) != len(cD) {
		return nil, fmt.Errorf("%w: approximation %d, detail %d", ErrCoeffMismatch, len(cA), len(cD))
	}
	l := w.Len()
	n := len(cA)
	outLen := 2*n - l + 2
	if outLen < 1 {
		return nil, fmt.Errorf("%w: %d coefficients for filter length %d", ErrCoeffMismatch, n, l)
	}

	ua := make([]float64, 2*n)
	ud := make([]float64, 2*n)
	for i := range n {
		ua[2*i] = cA[i]
		ud[2*i] = cD[i]
	}

	fa, err := conv.Direct(ua, w.RecLo)
	if err != nil {
		return nil, err
	}
	fd, err := conv.Direct(ud, w.RecHi)
	if err != nil {
		return nil, err
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = fa[l-2+i] + fd[l-2+i]
	}
	return out, nil
}

// Wavedec computes a multi-level decomposition and returns
// [cA_n, cD_n, ..., cD_1]. A level of 0 selects MaxLevel.
func Wavedec(x []float64, w *wavelet.Wavelet, level int) ([][]float64, error) {
	level, err := resolveLevel(len(x), w.Len(), level)
	if err != nil {
		return nil, err
	}

	coeffs := make([][]float64, level+1)
	a := x
	for i := level; i >= 1; i-- {
		var d []float64
		if a, d, err = Dwt(a, w); err != nil {
			return nil, err
		}
		coeffs[i] = d
	}
	coeffs[0] = a
	return coeffs, nil
}

// Waverec inverts Wavedec. An approximation one sample longer than the
// detail it is paired with is truncated, as happens for odd lengths.
func Waverec(coeffs [][]float64, w *wavelet.Wavelet) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrCoeffMismatch)
	}

	a := coeffs[0]
	for _, d := range coeffs[1:] {
		if len(a) == len(d)+1 {
			a = a[:len(d)]
		}
		var err error
		if a, err = Idwt(a, d, w); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func resolveLevel(n, l, level int) (int, error) {
	if n < 1 {
		return 0, conv.ErrEmptyInput
	}
	if level < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	if level == 0 {
		level = MaxLevel(n, l)
		if level == 0 {
			return 0, fmt.Errorf("%w: length %d too short for filter length %d", ErrInvalidLevel, n, l)
		}
	}
	return level, nil
}
