package matmul

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/sparse"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/boundary"
)

// Errors returned by the matrix transforms.
var (
	ErrPyramidMismatch = fmt.Errorf("matmul: coefficient pyramid does not match: %w", core.ErrInvalidConfiguration)
	ErrSignalTooShort  = fmt.Errorf("matmul: signal too short for one decomposition level: %w", core.ErrInvalidConfiguration)
	ErrNilWavelet      = fmt.Errorf("matmul: nil or empty wavelet: %w", core.ErrInvalidConfiguration)
)

// MaxLevel returns the number of levels a length-n signal supports with a
// length-l filter. A level is possible while the signal, padded to even
// length, is at least as long as the filter; each level halves it.
func MaxLevel(n, l int) int {
	levels := 0
	for n >= 2 && core.EvenCeil(n) >= l {
		levels++
		n = core.EvenCeil(n) / 2
	}
	return levels
}

// planLevels resolves the configured level against the feasible depth.
func planLevels(requested, feasible int, logger *slog.Logger, attrs ...any) (int, error) {
	if feasible == 0 {
		return 0, ErrSignalTooShort
	}
	if requested == 0 {
		return feasible, nil
	}
	if requested > feasible {
		logger.Warn("requested level exceeds feasible depth, stopping early",
			append(attrs, "requested", requested, "levels", feasible)...)
		return feasible, nil
	}
	return requested, nil
}

func validateWavelet(w *wavelet.Wavelet) error {
	if w == nil || w.Len() == 0 {
		return ErrNilWavelet
	}
	return w.Validate()
}

// Pyramid holds a multi-level 1D decomposition.
type Pyramid struct {
	// Coeffs is [cA_n, cD_n, ..., cD_1].
	Coeffs [][]float64

	// Lengths[i] is the length of the signal entering level i+1, before
	// padding to even length. Lengths[0] is the original signal length.
	Lengths []int
}

// Level returns the number of decomposition levels.
func (p *Pyramid) Level() int {
	return len(p.Lengths)
}

// Len returns the length of the decomposed signal.
func (p *Pyramid) Len() int {
	if len(p.Lengths) == 0 {
		return 0
	}
	return p.Lengths[0]
}

// WaveDec computes multi-level 1D decompositions with boundary-corrected
// analysis matrices. It is safe for concurrent use.
type WaveDec struct {
	w     *wavelet.Wavelet
	cfg   Config
	cache *matrixCache
}

// NewWaveDec returns a decomposer for w.
func NewWaveDec(w *wavelet.Wavelet, opts ...Option) (*WaveDec, error) {
	if err := validateWavelet(w); err != nil {
		return nil, err
	}
	cfg := ApplyOptions(opts...)
	return &WaveDec{
		w:     w.Clone(),
		cfg:   cfg,
		cache: newMatrixCache("analysis", cfg.Logger),
	}, nil
}

// Decompose transforms signal into a coefficient pyramid. Odd working
// lengths are padded with one trailing zero before each level.
func (d *WaveDec) Decompose(signal []float64) (*Pyramid, error) {
	levels, err := planLevels(d.cfg.Level, MaxLevel(len(signal), d.w.Len()), d.cfg.Logger,
		"wavelet", d.w.Name, "length", len(signal))
	if err != nil {
		return nil, fmt.Errorf("%w: length %d, filter %d", err, len(signal), d.w.Len())
	}

	p := &Pyramid{
		Coeffs:  make([][]float64, levels+1),
		Lengths: make([]int, 0, levels),
	}

	a := slices.Clone(signal)
	for level := 1; level <= levels; level++ {
		p.Lengths = append(p.Lengths, len(a))
		if !core.IsEven(len(a)) {
			a = append(a, 0)
		}

		m, err := d.matrix(len(a), level)
		if err != nil {
			return nil, err
		}
		y, err := m.MulVec(a)
		if err != nil {
			return nil, err
		}

		half := len(y) / 2
		p.Coeffs[levels-level+1] = y[half:]
		a = y[:half:half]
	}
	p.Coeffs[0] = a
	return p, nil
}

func (d *WaveDec) matrix(n, level int) (*sparse.Matrix, error) {
	return d.cache.get(cacheKey{rows: n, level: level}, func() (*sparse.Matrix, error) {
		return boundary.Analysis(d.w, n, d.cfg.Boundary)
	})
}

// WaveRec reconstructs signals from pyramids produced by WaveDec. It is safe
// for concurrent use.
type WaveRec struct {
	w     *wavelet.Wavelet
	cfg   Config
	cache *matrixCache
}

// NewWaveRec returns a reconstructor for w. When WithLevel is given a
// positive level, pyramids of any other depth are rejected.
func NewWaveRec(w *wavelet.Wavelet, opts ...Option) (*WaveRec, error) {
	if err := validateWavelet(w); err != nil {
		return nil, err
	}
	cfg := ApplyOptions(opts...)
	return &WaveRec{
		w:     w.Clone(),
		cfg:   cfg,
		cache: newMatrixCache("synthesis", cfg.Logger),
	}, nil
}

// Reconstruct inverts Decompose and returns a signal of the original length.
func (r *WaveRec) Reconstruct(p *Pyramid) ([]float64, error) {
	if err := r.validate(p); err != nil {
		return nil, err
	}

	levels := p.Level()
	a := p.Coeffs[0]
	for i := 1; i <= levels; i++ {
		level := levels - i + 1
		detail := p.Coeffs[i]
		n := p.Lengths[level-1]
		padded := core.EvenCeil(n)

		if len(a) != padded/2 || len(detail) != padded/2 {
			return nil, fmt.Errorf("%w: level %d expects %d coefficients per band, got %d and %d",
				ErrPyramidMismatch, level, padded/2, len(a), len(detail))
		}

		m, err := r.matrix(padded, level)
		if err != nil {
			return nil, err
		}
		x, err := m.MulVec(slices.Concat(a, detail))
		if err != nil {
			return nil, err
		}
		a = x[:n]
	}
	return a, nil
}

func (r *WaveRec) validate(p *Pyramid) error {
	switch {
	case p == nil || p.Level() == 0:
		return fmt.Errorf("%w: empty pyramid", ErrPyramidMismatch)
	case len(p.Coeffs) != p.Level()+1:
		return fmt.Errorf("%w: %d bands for %d levels", ErrPyramidMismatch, len(p.Coeffs), p.Level())
	case r.cfg.Level != 0 && r.cfg.Level != p.Level():
		return fmt.Errorf("%w: configured for %d levels, pyramid has %d", ErrPyramidMismatch, r.cfg.Level, p.Level())
	}
	return nil
}

func (r *WaveRec) matrix(n, level int) (*sparse.Matrix, error) {
	return r.cache.get(cacheKey{rows: n, level: level}, func() (*sparse.Matrix, error) {
		return boundary.Synthesis(r.w, n, r.cfg.Boundary)
	})
}
