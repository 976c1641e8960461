// Package reference implements the conventional discrete wavelet transform
// by convolution and downsampling, with zero padding at the signal edges.
//
// The transforms reproduce PyWavelets' "zero" extension mode: a length-N
// signal and a length-L filter yield ⌊(N+L−1)/2⌋ coefficients per band.
// They are direct and slow and serve as the ground truth the matrix
// transforms in package matmul are checked against.
//
// # Usage
//
//	coeffs, err := reference.Wavedec(x, w, 2) // [cA2, cD2, cD1]
//	y, err := reference.Waverec(coeffs, w)    // x, plus one sample if len(x) is odd
package reference
