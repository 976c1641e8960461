package boundary

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-wavelet/dsp/conv"
	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/sparse"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Errors returned when building boundary matrices.
var (
	ErrOddLength      = fmt.Errorf("boundary: signal length must be even and positive: %w", core.ErrInvalidConfiguration)
	ErrSignalTooShort = fmt.Errorf("boundary: signal shorter than filter: %w", core.ErrInvalidConfiguration)
	ErrInvalidMode    = fmt.Errorf("boundary: unknown boundary mode: %w", core.ErrInvalidConfiguration)
	ErrDegenerateRow  = fmt.Errorf("boundary: boundary row is linearly dependent: %w", core.ErrNumericalInstability)
)

// Mode selects how filter rows crossing the signal edges are handled.
type Mode int

const (
	// GramSchmidt drops out-of-range taps and orthonormalises the truncated
	// rows.
	GramSchmidt Mode = iota

	// Circular wraps out-of-range taps around, treating the signal as one
	// period.
	Circular
)

func (m Mode) String() string {
	switch m {
	case GramSchmidt:
		return "gramschmidt"
	case Circular:
		return "circular"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "gramschmidt" or "circular" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "gramschmidt", "gram-schmidt":
		return GramSchmidt, nil
	case "circular":
		return Circular, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// instabilityRatio is the smallest residual norm, relative to the row norm
// before projection, accepted during orthogonalisation.
const instabilityRatio = 1e-10

// Analysis returns the n×n single-level analysis matrix of w. The first n/2
// rows compute the approximation coefficients, the last n/2 the details.
// Row r of each half holds the decomposition filter, convolution oriented,
// starting at column 2r − (L/2 − 1).
func Analysis(w *wavelet.Wavelet, n int, mode Mode) (*sparse.Matrix, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return filterBank(w.DecLo, w.DecHi, n, mode)
}

// Synthesis returns the n×n single-level synthesis matrix of w. It is built
// like Analysis from the reversed reconstruction filters and transposed, so
// Synthesis equals the transpose of Analysis for orthogonal wavelets.
func Synthesis(w *wavelet.Wavelet, n int, mode Mode) (*sparse.Matrix, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	lo := slices.Clone(w.RecLo)
	slices.Reverse(lo)
	hi := slices.Clone(w.RecHi)
	slices.Reverse(hi)

	st, err := filterBank(lo, hi, n, mode)
	if err != nil {
		return nil, err
	}
	return st.Transpose(), nil
}

// Matrices returns the analysis and synthesis matrices for length n.
func Matrices(w *wavelet.Wavelet, n int, mode Mode) (a, s *sparse.Matrix, err error) {
	if a, err = Analysis(w, n, mode); err != nil {
		return nil, nil, err
	}
	if s, err = Synthesis(w, n, mode); err != nil {
		return nil, nil, err
	}
	return a, s, nil
}

func validate(l, n int, mode Mode) error {
	switch {
	case mode != GramSchmidt && mode != Circular:
		return fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	case l == 0:
		return fmt.Errorf("%w: empty filter", wavelet.ErrInvalidFilters)
	case n < 2 || !core.IsEven(n):
		return fmt.Errorf("%w: %d", ErrOddLength, n)
	case n < l:
		return fmt.Errorf("%w: length %d, filter %d", ErrSignalTooShort, n, l)
	}
	return nil
}

func filterBank(lo, hi []float64, n int, mode Mode) (*sparse.Matrix, error) {
	l := len(lo)
	if len(hi) != l {
		return nil, fmt.Errorf("%w: low-pass %d taps, high-pass %d", wavelet.ErrInvalidFilters, l, len(hi))
	}
	if err := validate(l, n, mode); err != nil {
		return nil, err
	}

	half := n / 2
	first := l / 2

	build := conv.Banded
	if mode == Circular {
		build = conv.CircularBanded
	}
	loRows, err := build(lo, n, half, first, 2)
	if err != nil {
		return nil, err
	}
	hiRows, err := build(hi, n, half, first, 2)
	if err != nil {
		return nil, err
	}
	m, err := sparse.VStack(loRows, hiRows)
	if err != nil {
		return nil, err
	}

	if mode == Circular {
		return m, nil
	}
	return orthogonalize(m, truncatedRows(l, n, first))
}

// truncatedRows lists, in ascending order, the rows of a stacked [lo; hi]
// bank whose filter support extends past either end of the signal.
func truncatedRows(l, n, first int) []int {
	half := n / 2
	var lo []int
	for r := range half {
		start := conv.BandStart(r, l, first, 2)
		if start < 0 || start+l > n {
			lo = append(lo, r)
		}
	}

	idx := slices.Clone(lo)
	for _, r := range lo {
		idx = append(idx, half+r)
	}
	return idx
}

// orthogonalize replaces the rows listed in idx with an orthonormal basis of
// their span using modified Gram-Schmidt, in the given order.
func orthogonalize(m *sparse.Matrix, idx []int) (*sparse.Matrix, error) {
	basis := make([][]float64, 0, len(idx))
	for _, i := range idx {
		v := m.DenseRow(i)
		norm0 := floats.Norm(v, 2)

		for _, q := range basis {
			floats.AddScaled(v, -floats.Dot(v, q), q)
		}

		norm := floats.Norm(v, 2)
		if norm0 == 0 || norm/norm0 < instabilityRatio {
			return nil, fmt.Errorf("%w: row %d", ErrDegenerateRow, i)
		}
		floats.Scale(1/norm, v)
		basis = append(basis, v)
	}
	return m.WithRows(idx, basis)
}
