package boundary

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// EdgeRows lists, in ascending order, the rows of an n×n analysis matrix
// for a length-l filter whose support crosses either end of the signal.
// GramSchmidt mode orthonormalises these rows and Circular mode wraps them.
func EdgeRows(l, n int) []int {
	return truncatedRows(l, n, l/2)
}

// IdentityError returns mean(|m − I|) over all entries of the square
// matrix m. It panics if m is not square.
func IdentityError(m mat.Matrix) float64 {
	r, c := m.Dims()
	if r != c {
		panic(mat.ErrSquare)
	}
	sum := 0.0
	for i := range r {
		for j := range c {
			v := m.At(i, j)
			if i == j {
				v--
			}
			sum += math.Abs(v)
		}
	}
	return sum / float64(r*c)
}

// OrthogonalityError returns mean(|aᵀa − I|).
func OrthogonalityError(a mat.Matrix) float64 {
	var g mat.Dense
	g.Mul(a.T(), a)
	return IdentityError(&g)
}

// InverseError returns mean(|a·s − I|).
func InverseError(a, s mat.Matrix) float64 {
	var p mat.Dense
	p.Mul(a, s)
	return IdentityError(&p)
}
