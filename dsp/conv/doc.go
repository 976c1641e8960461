// Package conv provides 1D and 2D convolution, correlation, and the sparse
// matrices that express strided convolution as a linear operator.
//
// Two families live side by side. The direct routines ([Direct], [Convolve],
// [ConvolveMode], [ConvolveStrided], [Convolve2D]) compute results from the
// signal. The matrix builders ([Matrix], [Banded], [CircularBanded],
// [Matrix2D], [StridedMatrix2D]) return a [sparse.Matrix] M such that M·x
// equals the corresponding direct result for any input x of the given size.
// The direct routines serve as the reference the matrices are tested against.
//
// # Modes
//
// [ModeFull], [ModeSame] and [ModeValid] follow scipy.signal.convolve. For
// ModeSame with an even-length kernel the extra sample of the full result is
// dropped on the trailing side. With a stride S the output keeps samples
// 0, S, 2S, ... of the mode result, so its length is given by [OutputLen].
//
// # Usage
//
//	m, err := conv.Matrix(filter, len(x), conv.ModeSame, 2)
//	y, err := m.MulVec(x)
//
// 2D operators act on images flattened in column-major order:
//
//	m, err := conv.StridedMatrix2D(kernel, rows, cols, conv.ModeValid, 2)
//	flat, err := m.MulVec(conv.ColumnMajor(img))
//	out := conv.FromColumnMajor(flat, outRows, outCols)
//
// # Algorithm Selection
//
// [Convolve] uses direct convolution for kernels up to 64 taps and FFT
// overlap-add above that. [NewOverlapAdd] exposes the block convolver for
// repeated use with the same kernel.
package conv
