// Package core holds the error kinds and small numeric helpers shared by the
// convolution, sparse and wavelet packages.
package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// CeilDiv returns ⌈a/b⌉ for a >= 0 and b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// IsEven reports whether n is divisible by two.
func IsEven(n int) bool {
	return n&1 == 0
}

// EvenCeil rounds n up to the next even number.
func EvenCeil(n int) int {
	return n + n&1
}
