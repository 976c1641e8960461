package matmul

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-wavelet/dsp/conv"
	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/sparse"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/boundary"
)

// Shape2D is an image size.
type Shape2D struct {
	Rows, Cols int
}

// Details2D holds the detail bands of one level. H is high-pass along the
// height axis, V along the width axis and D along both.
type Details2D struct {
	H, V, D *mat.Dense
}

// Pyramid2D holds a multi-level 2D decomposition.
type Pyramid2D struct {
	// Approx is the approximation of the coarsest level.
	Approx *mat.Dense

	// Details lists the detail bands, coarsest level first.
	Details []Details2D

	// Shapes[i] is the size of the image entering level i+1, before
	// padding to even size. Shapes[0] is the original image size.
	Shapes []Shape2D
}

// Level returns the number of decomposition levels.
func (p *Pyramid2D) Level() int {
	return len(p.Shapes)
}

// Shape returns the size of the decomposed image.
func (p *Pyramid2D) Shape() Shape2D {
	if len(p.Shapes) == 0 {
		return Shape2D{}
	}
	return p.Shapes[0]
}

// WaveDec2D computes multi-level 2D decompositions with boundary-corrected
// separable analysis matrices. It is safe for concurrent use.
type WaveDec2D struct {
	w     *wavelet.Wavelet
	cfg   Config
	cache *matrixCache
}

// NewWaveDec2D returns a 2D decomposer for w.
func NewWaveDec2D(w *wavelet.Wavelet, opts ...Option) (*WaveDec2D, error) {
	if err := validateWavelet(w); err != nil {
		return nil, err
	}
	cfg := ApplyOptions(opts...)
	return &WaveDec2D{
		w:     w.Clone(),
		cfg:   cfg,
		cache: newMatrixCache("analysis2d", cfg.Logger),
	}, nil
}

// Decompose transforms img. Before each level an odd height gets a zero row
// appended at the bottom and an odd width a zero column at the right.
func (d *WaveDec2D) Decompose(img mat.Matrix) (*Pyramid2D, error) {
	rows, cols := img.Dims()
	l := d.w.Len()
	feasible := min(MaxLevel(rows, l), MaxLevel(cols, l))
	levels, err := planLevels(d.cfg.Level, feasible, d.cfg.Logger,
		"wavelet", d.w.Name, "rows", rows, "cols", cols)
	if err != nil {
		return nil, fmt.Errorf("%w: image %d×%d, filter %d", err, rows, cols, l)
	}

	p := &Pyramid2D{
		Details: make([]Details2D, levels),
		Shapes:  make([]Shape2D, 0, levels),
	}

	a := mat.DenseCopyOf(img)
	for level := 1; level <= levels; level++ {
		r, c := a.Dims()
		p.Shapes = append(p.Shapes, Shape2D{Rows: r, Cols: c})
		a = padEven(a)
		pr, pc := a.Dims()

		m, err := d.matrix(pr, pc, level)
		if err != nil {
			return nil, err
		}
		y, err := m.MulVec(conv.ColumnMajor(a))
		if err != nil {
			return nil, err
		}

		hr, hc := pr/2, pc/2
		band := func(b boundary.Band) *mat.Dense {
			q := hr * hc
			return conv.FromColumnMajor(y[int(b)*q:(int(b)+1)*q], hr, hc)
		}
		p.Details[levels-level] = Details2D{
			H: band(boundary.BandLH),
			V: band(boundary.BandHL),
			D: band(boundary.BandHH),
		}
		a = band(boundary.BandLL)
	}
	p.Approx = a
	return p, nil
}

func (d *WaveDec2D) matrix(rows, cols, level int) (*sparse.Matrix, error) {
	return d.cache.get(cacheKey{rows: rows, cols: cols, level: level}, func() (*sparse.Matrix, error) {
		return boundary.Analysis2D(d.w, rows, cols, d.cfg.Boundary)
	})
}

// WaveRec2D reconstructs images from pyramids produced by WaveDec2D. It is
// safe for concurrent use.
type WaveRec2D struct {
	w     *wavelet.Wavelet
	cfg   Config
	cache *matrixCache
}

// NewWaveRec2D returns a 2D reconstructor for w. When WithLevel is given a
// positive level, pyramids of any other depth are rejected.
func NewWaveRec2D(w *wavelet.Wavelet, opts ...Option) (*WaveRec2D, error) {
	if err := validateWavelet(w); err != nil {
		return nil, err
	}
	cfg := ApplyOptions(opts...)
	return &WaveRec2D{
		w:     w.Clone(),
		cfg:   cfg,
		cache: newMatrixCache("synthesis2d", cfg.Logger),
	}, nil
}

// Reconstruct inverts Decompose. Padding added before the finest level is
// kept: the result has the original size rounded up to even along each
// axis. Crop it to p.Shape() to recover the input exactly.
func (r *WaveRec2D) Reconstruct(p *Pyramid2D) (*mat.Dense, error) {
	if err := r.validate(p); err != nil {
		return nil, err
	}

	levels := p.Level()
	a := p.Approx
	for i, det := range p.Details {
		level := levels - i
		shape := p.Shapes[level-1]
		pr, pc := core.EvenCeil(shape.Rows), core.EvenCeil(shape.Cols)

		for _, b := range []*mat.Dense{a, det.H, det.V, det.D} {
			if b == nil {
				return nil, fmt.Errorf("%w: level %d has a nil band", ErrPyramidMismatch, level)
			}
			if br, bc := b.Dims(); br != pr/2 || bc != pc/2 {
				return nil, fmt.Errorf("%w: level %d expects %d×%d bands, got %d×%d",
					ErrPyramidMismatch, level, pr/2, pc/2, br, bc)
			}
		}

		m, err := r.matrix(pr, pc, level)
		if err != nil {
			return nil, err
		}
		flat := slices.Concat(conv.ColumnMajor(a), conv.ColumnMajor(det.H),
			conv.ColumnMajor(det.V), conv.ColumnMajor(det.D))
		x, err := m.MulVec(flat)
		if err != nil {
			return nil, err
		}

		a = conv.FromColumnMajor(x, pr, pc)
		if level > 1 {
			a = mat.DenseCopyOf(a.Slice(0, shape.Rows, 0, shape.Cols))
		}
	}
	return a, nil
}

func (r *WaveRec2D) validate(p *Pyramid2D) error {
	switch {
	case p == nil || p.Level() == 0 || p.Approx == nil:
		return fmt.Errorf("%w: empty pyramid", ErrPyramidMismatch)
	case len(p.Details) != p.Level():
		return fmt.Errorf("%w: %d detail levels for %d shapes", ErrPyramidMismatch, len(p.Details), p.Level())
	case r.cfg.Level != 0 && r.cfg.Level != p.Level():
		return fmt.Errorf("%w: configured for %d levels, pyramid has %d", ErrPyramidMismatch, r.cfg.Level, p.Level())
	}
	return nil
}

func (r *WaveRec2D) matrix(rows, cols, level int) (*sparse.Matrix, error) {
	return r.cache.get(cacheKey{rows: rows, cols: cols, level: level}, func() (*sparse.Matrix, error) {
		return boundary.Synthesis2D(r.w, rows, cols, r.cfg.Boundary)
	})
}

// padEven appends a zero row and/or column when a dimension is odd.
func padEven(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	pr, pc := core.EvenCeil(r), core.EvenCeil(c)
	if pr == r && pc == c {
		return m
	}
	out := mat.NewDense(pr, pc, nil)
	out.Copy(m)
	return out
}
