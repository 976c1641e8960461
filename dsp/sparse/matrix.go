package sparse

import (
	"fmt"
	"slices"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-wavelet/dsp/core"
)

// ErrDimensionMismatch is returned when operand shapes are incompatible.
var ErrDimensionMismatch = fmt.Errorf("sparse: dimension mismatch: %w", core.ErrInvalidConfiguration)

// Matrix is an immutable sparse matrix in CSR layout.
type Matrix struct {
	rows, cols int

	rowPtr []int // len rows+1
	colIdx []int // sorted ascending within each row
	vals   []float64
}

var _ mat.Matrix = (*Matrix)(nil)

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	b := NewBuilder(n, n)
	for i := range n {
		b.Add(i, i, 1)
	}
	return b.Build()
}

// Dims returns the declared dense shape.
func (m *Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the element at (i, j). Absent entries are zero.
func (m *Matrix) At(i, j int) float64 {
	if uint(i) >= uint(m.rows) || uint(j) >= uint(m.cols) {
		panic(mat.ErrIndexOutOfRange)
	}

	cols := m.colIdx[m.rowPtr[i]:m.rowPtr[i+1]]
	k, found := slices.BinarySearch(cols, j)
	if !found {
		return 0
	}
	return m.vals[m.rowPtr[i]+k]
}

// T returns an implicit transpose for use with gonum routines.
// Use [Matrix.Transpose] for a materialised sparse transpose.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return len(m.vals)
}

// RowNNZ returns the number of stored entries in row i.
func (m *Matrix) RowNNZ(i int) int {
	return m.rowPtr[i+1] - m.rowPtr[i]
}

// Row returns the column indices and values stored in row i.
// The returned slices alias the matrix and must not be modified.
func (m *Matrix) Row(i int) (cols []int, vals []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	return m.colIdx[lo:hi], m.vals[lo:hi]
}

// DenseRow returns row i as a dense slice of length cols.
func (m *Matrix) DenseRow(i int) []float64 {
	out := make([]float64, m.cols)
	cols, vals := m.Row(i)
	for k, c := range cols {
		out[c] = vals[k]
	}
	return out
}

// MulVec computes m·x.
func (m *Matrix) MulVec(x []float64) ([]float64, error) {
	dst := make([]float64, m.rows)
	if err := m.MulVecTo(dst, x); err != nil {
		return nil, err
	}
	return dst, nil
}

// MulVecTo computes m·x into dst, which must have length rows.
func (m *Matrix) MulVecTo(dst, x []float64) error {
	if len(x) != m.cols || len(dst) != m.rows {
		return fmt.Errorf("%w: (%d×%d)·%d -> %d", ErrDimensionMismatch, m.rows, m.cols, len(x), len(dst))
	}

	gather := make([]float64, m.maxRowNNZ())
	for i := range m.rows {
		lo, hi := m.rowPtr[i], m.rowPtr[i+1]
		g := gather[:hi-lo]
		for k, c := range m.colIdx[lo:hi] {
			g[k] = x[c]
		}
		vecmath.MulBlockInPlace(g, m.vals[lo:hi])
		dst[i] = floats.Sum(g)
	}
	return nil
}

func (m *Matrix) maxRowNNZ() int {
	longest := 0
	for i := range m.rows {
		longest = max(longest, m.RowNNZ(i))
	}
	return longest
}

// Transpose returns mᵀ as a new sparse matrix.
func (m *Matrix) Transpose() *Matrix {
	b := NewBuilder(m.cols, m.rows)
	b.grow(m.NNZ())
	for i := range m.rows {
		cols, vals := m.Row(i)
		for k, c := range cols {
			b.Add(c, i, vals[k])
		}
	}
	return b.Build()
}

// ToDense converts m to a gonum dense matrix.
func (m *Matrix) ToDense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}

	d := mat.NewDense(m.rows, m.cols, nil)
	for i := range m.rows {
		cols, vals := m.Row(i)
		for k, c := range cols {
			d.Set(i, c, vals[k])
		}
	}
	return d
}

// Mul returns the sparse product a·b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("%w: (%d×%d)·(%d×%d)", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := NewBuilder(a.rows, b.cols)
	acc := make(map[int]float64)
	for i := range a.rows {
		clear(acc)
		aCols, aVals := a.Row(i)
		for k, j := range aCols {
			bCols, bVals := b.Row(j)
			for l, c := range bCols {
				acc[c] += aVals[k] * bVals[l]
			}
		}
		for c, v := range acc {
			out.Add(i, c, v)
		}
	}
	return out.Build(), nil
}

// Kronecker returns the Kronecker product a ⊗ b.
func Kronecker(a, b *Matrix) *Matrix {
	out := NewBuilder(a.rows*b.rows, a.cols*b.cols)
	out.AddKronecker(a, b)
	return out.Build()
}

// VStack concatenates matrices with equal column counts row-wise.
func VStack(ms ...*Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrDimensionMismatch)
	}

	cols := ms[0].cols
	rows := 0
	for _, m := range ms {
		if m.cols != cols {
			return nil, fmt.Errorf("%w: stacking %d and %d columns", ErrDimensionMismatch, cols, m.cols)
		}
		rows += m.rows
	}

	out := &Matrix{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]int, 1, rows+1),
	}
	for _, m := range ms {
		base := len(out.vals)
		for _, p := range m.rowPtr[1:] {
			out.rowPtr = append(out.rowPtr, base+p)
		}
		out.colIdx = append(out.colIdx, m.colIdx...)
		out.vals = append(out.vals, m.vals...)
	}
	return out, nil
}

// PermuteRows returns a matrix whose row i is row perm[i] of m.
// perm must be a permutation of [0, rows).
func (m *Matrix) PermuteRows(perm []int) (*Matrix, error) {
	if len(perm) != m.rows {
		return nil, fmt.Errorf("%w: permutation of length %d for %d rows", ErrDimensionMismatch, len(perm), m.rows)
	}

	seen := make([]bool, m.rows)
	out := &Matrix{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: make([]int, 1, m.rows+1),
		colIdx: make([]int, 0, m.NNZ()),
		vals:   make([]float64, 0, m.NNZ()),
	}
	for _, src := range perm {
		if src < 0 || src >= m.rows || seen[src] {
			return nil, fmt.Errorf("%w: invalid permutation entry %d", ErrDimensionMismatch, src)
		}
		seen[src] = true
		cols, vals := m.Row(src)
		out.colIdx = append(out.colIdx, cols...)
		out.vals = append(out.vals, vals...)
		out.rowPtr = append(out.rowPtr, len(out.vals))
	}
	return out, nil
}

// WithRows returns a copy of m where each row idx[k] is replaced by the dense
// vector rows[k]. Zero entries of the replacement rows are not stored.
func (m *Matrix) WithRows(idx []int, rows [][]float64) (*Matrix, error) {
	if len(idx) != len(rows) {
		return nil, fmt.Errorf("%w: %d row indices for %d rows", ErrDimensionMismatch, len(idx), len(rows))
	}

	replace := make(map[int][]float64, len(idx))
	for k, i := range idx {
		if i < 0 || i >= m.rows || len(rows[k]) != m.cols {
			return nil, fmt.Errorf("%w: replacement row %d", ErrDimensionMismatch, i)
		}
		replace[i] = rows[k]
	}

	b := NewBuilder(m.rows, m.cols)
	b.grow(m.NNZ())
	for i := range m.rows {
		if dense, ok := replace[i]; ok {
			for c, v := range dense {
				if v != 0 {
					b.Add(i, c, v)
				}
			}
			continue
		}
		cols, vals := m.Row(i)
		for k, c := range cols {
			b.Add(i, c, vals[k])
		}
	}
	return b.Build(), nil
}

// Builder accumulates matrix entries before freezing them into a [Matrix].
type Builder struct {
	rows, cols int
	entries    []entry
}

type entry struct {
	row, col int
	val      float64
}

// NewBuilder returns an empty builder for a rows×cols matrix.
func NewBuilder(rows, cols int) *Builder {
	if rows < 0 || cols < 0 {
		panic(mat.ErrShape)
	}
	return &Builder{rows: rows, cols: cols}
}

func (b *Builder) grow(n int) {
	b.entries = slices.Grow(b.entries, n)
}

// Add adds v to entry (i, j). Repeated additions to the same entry are summed.
func (b *Builder) Add(i, j int, v float64) {
	if uint(i) >= uint(b.rows) || uint(j) >= uint(b.cols) {
		panic(mat.ErrIndexOutOfRange)
	}
	b.entries = append(b.entries, entry{row: i, col: j, val: v})
}

// AddKronecker adds x ⊗ y, which must have the builder's shape.
func (b *Builder) AddKronecker(x, y *Matrix) {
	if x.rows*y.rows != b.rows || x.cols*y.cols != b.cols {
		panic(mat.ErrShape)
	}

	b.grow(x.NNZ() * y.NNZ())
	for i := range x.rows {
		xCols, xVals := x.Row(i)
		for k, j := range xCols {
			for r := range y.rows {
				yCols, yVals := y.Row(r)
				for l, c := range yCols {
					b.Add(i*y.rows+r, j*y.cols+c, xVals[k]*yVals[l])
				}
			}
		}
	}
}

// Build freezes the accumulated entries. Later additions to b accumulate on
// top of the entries already added.
func (b *Builder) Build() *Matrix {
	sort.SliceStable(b.entries, func(p, q int) bool {
		if b.entries[p].row != b.entries[q].row {
			return b.entries[p].row < b.entries[q].row
		}
		return b.entries[p].col < b.entries[q].col
	})

	m := &Matrix{
		rows:   b.rows,
		cols:   b.cols,
		rowPtr: make([]int, b.rows+1),
		colIdx: make([]int, 0, len(b.entries)),
		vals:   make([]float64, 0, len(b.entries)),
	}
	for k, e := range b.entries {
		if k > 0 && e.row == b.entries[k-1].row && e.col == b.entries[k-1].col {
			m.vals[len(m.vals)-1] += e.val
			continue
		}
		m.colIdx = append(m.colIdx, e.col)
		m.vals = append(m.vals, e.val)
		m.rowPtr[e.row+1]++
	}
	for i := range b.rows {
		m.rowPtr[i+1] += m.rowPtr[i]
	}
	return m
}
