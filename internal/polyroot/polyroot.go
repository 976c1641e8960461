// Package polyroot provides polynomial root-finding and expansion utilities
// shared by filter design packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// Roots returns the roots of coeff (descending order) found by DurandKerner
// and refined with a few Newton steps on the unnormalised polynomial.
func Roots(coeff []complex128) ([]complex128, error) {
	roots, err := DurandKerner(coeff)
	if err != nil {
		return nil, err
	}

	Polish(coeff, roots, 3)

	return roots, nil
}

// Polish refines roots in place with iters Newton steps on coeff (descending
// power order). A root where the derivative vanishes is left unchanged.
func Polish(coeff, roots []complex128, iters int) {
	deriv := Derivative(coeff)
	if len(deriv) == 0 {
		return
	}

	for i, r := range roots {
		for range iters {
			fp := PolyEval(deriv, r)
			if fp == 0 {
				break
			}

			r -= PolyEval(coeff, r) / fp
		}

		roots[i] = r
	}
}

// Derivative returns the coefficients of the derivative of coeff. Both are
// in descending power order.
func Derivative(coeff []complex128) []complex128 {
	n := len(coeff) - 1
	if n < 1 {
		return nil
	}

	out := make([]complex128, n)
	for i := range n {
		out[i] = coeff[i] * complex(float64(n-i), 0)
	}

	return out
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// PolyMul returns the product of two polynomials. The coefficient order of
// the result matches the inputs.
func PolyMul(a, b []complex128) []complex128 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]complex128, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}

	return out
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// IsReal reports whether every coefficient of p has an imaginary part below
// tol relative to its magnitude.
func IsReal(p []complex128, tol float64) bool {
	for _, c := range p {
		if !IsConjugate(c, c, tol) {
			return false
		}
	}

	return true
}
