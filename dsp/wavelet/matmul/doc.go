// Package matmul implements multi-level discrete wavelet transforms as
// products with sparse, boundary-corrected analysis and synthesis matrices.
//
// Each level multiplies the current approximation by the single-level
// operator from package boundary and splits the result into approximation
// and detail halves. Signals of odd length are padded with one trailing zero
// before the level that needs it; the pyramid records the unpadded lengths
// so reconstruction can undo the padding.
//
// Transforms cache their per-level matrices, keyed by size and level, and
// may be shared between goroutines.
//
// # Usage
//
//	w, _ := wavelet.Lookup("db3")
//	dec, _ := matmul.NewWaveDec(w, matmul.WithLevel(3))
//	p, err := dec.Decompose(signal)
//
//	rec, _ := matmul.NewWaveRec(w)
//	x, err := rec.Reconstruct(p)
//
// 2D transforms ([WaveDec2D], [WaveRec2D]) work on gonum matrices and
// return the detail bands of each level as [Details2D].
//
// # Levels
//
// A level of 0 selects the deepest decomposition the input supports (see
// [MaxLevel]). When a requested level is deeper than that, the transform
// stops at the deepest possible level and logs a warning through the
// configured slog.Logger.
package matmul
