package matmul_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/matmul"
)

func ExampleWaveDec() {
	w, _ := wavelet.Lookup("db2")
	dec, _ := matmul.NewWaveDec(w, matmul.WithLevel(2))
	rec, _ := matmul.NewWaveRec(w, matmul.WithLevel(2))

	x := []float64{0, 1, 2, 3, 4, 5, 4, 3, 2, 1, 0}
	p, err := dec.Decompose(x)
	if err != nil {
		panic(err)
	}
	for _, c := range p.Coeffs {
		fmt.Print(len(c), " ")
	}
	fmt.Println(p.Lengths)

	y, _ := rec.Reconstruct(p)
	maxErr := 0.0
	for i := range x {
		maxErr = max(maxErr, math.Abs(y[i]-x[i]))
	}
	fmt.Println(len(y), maxErr < 1e-12)

	// Output:
	// 3 3 6 [11 6]
	// 11 true
}
