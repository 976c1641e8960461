// Package wavelet provides two-channel orthogonal filter banks.
//
// A [Wavelet] carries the four filters of a bank: decomposition low/high-pass
// and reconstruction low/high-pass, all of the same length. Banks follow the
// PyWavelets conventions, so coefficients computed with them agree with
// pywt for the same signal.
//
// # Usage
//
//	w, err := wavelet.Lookup("db4")
//	fmt.Println(w.Len()) // 8
//
// Daubechies banks are generated on first use by spectral factorisation
// (see [Daubechies]) and cached for the lifetime of the process. Custom
// banks are created with [New] or, for orthogonal wavelets defined by a
// scaling filter, [FromScaling].
package wavelet
