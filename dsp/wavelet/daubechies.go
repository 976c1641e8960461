package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/internal/polyroot"
)

// Daubechies returns the extremal-phase Daubechies filter bank with n
// vanishing moments ("dbN", filter length 2n).
//
// The scaling filter is obtained by spectral factorisation. The roots y of
// P(y) = Σ_{k<n} C(n-1+k, k)·y^k are mapped to z + 1/z = 2 − 4y and the
// root z inside the unit circle is kept, giving
//
//	H(q) ∝ (1 + q)^n · Π (1 − z·q)
//
// normalised so that its taps sum to √2.
func Daubechies(n int) (*Wavelet, error) {
	if n < 1 || n > MaxDaubechies {
		return nil, fmt.Errorf("%w: db%d, order must be in [1, %d]", ErrUnknownWavelet, n, MaxDaubechies)
	}

	h := []complex128{1}
	for range n {
		h = polyroot.PolyMul(h, []complex128{1, 1})
	}

	if n > 1 {
		// Descending power order for the root finder.
		p := make([]complex128, n)
		for k := range n {
			p[n-1-k] = complex(binomial(n-1+k, k), 0)
		}

		roots, err := polyroot.Roots(p)
		if err != nil {
			return nil, fmt.Errorf("wavelet: db%d factorisation: %w", n, err)
		}

		for _, y := range roots {
			b := 2 - 4*y
			disc := cmplx.Sqrt(b*b - 4)
			z := (b + disc) / 2
			if cmplx.Abs(z) >= 1 {
				z = (b - disc) / 2
			}
			h = polyroot.PolyMul(h, []complex128{1, -z})
		}
	}

	peak := 0.0
	for _, c := range h {
		peak = math.Max(peak, cmplx.Abs(c))
	}
	scaled := make([]complex128, len(h))
	for i, c := range h {
		scaled[i] = c / complex(peak, 0)
	}
	if !polyroot.IsReal(scaled, 1e-9) {
		return nil, fmt.Errorf("wavelet: db%d scaling filter is not real: %w", n, core.ErrNumericalInstability)
	}

	recLo := make([]float64, len(h))
	sum := 0.0
	for i, c := range h {
		recLo[i] = real(c)
		sum += recLo[i]
	}
	scale := math.Sqrt2 / sum
	for i := range recLo {
		recLo[i] *= scale
	}

	return FromScaling(fmt.Sprintf("db%d", n), recLo)
}

func binomial(n, k int) float64 {
	v := 1.0
	for i := 1; i <= k; i++ {
		v = v * float64(n-k+i) / float64(i)
	}
	return math.Round(v)
}
