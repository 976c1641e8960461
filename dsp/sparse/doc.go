// Package sparse provides an immutable compressed-sparse-row matrix used to
// represent convolution and wavelet operators.
//
// Matrices are assembled with a [Builder], which accepts (row, col, value)
// triples in any order and sums duplicates, and then frozen with
// [Builder.Build]. Entries added with an explicit zero value are stored.
//
// # Usage
//
//	b := sparse.NewBuilder(2, 3)
//	b.Add(0, 0, 1)
//	b.Add(1, 2, 4)
//	m := b.Build()
//	y, err := m.MulVec([]float64{1, 2, 3}) // [1 12]
//
// [Matrix] implements gonum's mat.Matrix, so it can be handed to dense
// routines directly or converted with [Matrix.ToDense].
package sparse
