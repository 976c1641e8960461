package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-wavelet/dsp/conv"
)

func ExampleDirect() {
	// Simple moving average filter
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Direct(signal, kernel)

	fmt.Printf("Input length: %d\n", len(signal))
	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("First few values: %.2f, %.2f, %.2f\n", result[0], result[1], result[2])

	// Output:
	// Input length: 9
	// Output length: 11
	// First few values: 0.25, 1.00, 2.00
}

func ExampleConvolveStrided() {
	signal := []float64{1, 2, 3, 4, 5, 6}
	kernel := []float64{1, -1}

	same, _ := conv.ConvolveStrided(signal, kernel, conv.ModeSame, 2)
	valid, _ := conv.ConvolveStrided(signal, kernel, conv.ModeValid, 2)

	fmt.Println(same)
	fmt.Println(valid)

	// Output:
	// [1 1 1]
	// [1 1 1]
}

func ExampleMatrix() {
	m, _ := conv.Matrix([]float64{1, 2, 3}, 4, conv.ModeFull, 2)

	rows, cols := m.Dims()
	fmt.Printf("%d×%d, %d stored entries\n", rows, cols, m.NNZ())
	for r := range rows {
		fmt.Println(m.DenseRow(r))
	}

	// Output:
	// 3×4, 6 stored entries
	// [1 0 0 0]
	// [3 2 1 0]
	// [0 0 3 2]
}

func ExampleStridedMatrix2D() {
	kernel := [][]float64{{1, 1}, {1, 1}}
	m, _ := conv.StridedMatrix2D(kernel, 4, 4, conv.ModeValid, 2)

	img := make([]float64, 16)
	for i := range img {
		img[i] = 1
	}
	out, _ := m.MulVec(img)
	fmt.Println(out)

	// Output:
	// [4 4 4 4]
}
