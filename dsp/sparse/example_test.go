package sparse_test

import (
	"fmt"

	"github.com/cwbudde/algo-wavelet/dsp/sparse"
)

func ExampleBuilder() {
	b := sparse.NewBuilder(2, 3)
	b.Add(0, 0, 1)
	b.Add(1, 2, 4)
	b.Add(1, 2, -1)
	m := b.Build()

	y, _ := m.MulVec([]float64{1, 2, 3})
	fmt.Println(m.NNZ(), y)

	// Output:
	// 2 [1 9]
}
