// Package boundary builds single-level wavelet analysis and synthesis
// matrices that stay exactly invertible at the signal edges.
//
// A wavelet filter bank applied by strided convolution to a finite signal
// loses orthogonality in the rows whose filter support crosses either end.
// In [GramSchmidt] mode those rows are truncated to the signal and then
// orthonormalised with modified Gram-Schmidt, so the analysis matrix of an
// orthogonal wavelet is orthogonal and its synthesis matrix is its
// transpose. In [Circular] mode the signal is treated as periodic and no
// correction is needed.
//
// # Usage
//
//	w, _ := wavelet.Lookup("db4")
//	a, s, err := boundary.Matrices(w, 64, boundary.GramSchmidt)
//	coeffs, _ := a.MulVec(x)     // [approximation; detail]
//	back, _ := s.MulVec(coeffs)  // == x
//
// [Matrices2D] combines two 1D operators into a separable 2D transform on
// column-major flattened images with its output grouped by subband.
package boundary
