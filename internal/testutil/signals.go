package testutil

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DeterministicImage returns a rows×cols image of uniform values in
// [0, amplitude) drawn from a fixed seed.
func DeterministicImage(seed int64, amplitude float64, rows, cols int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64() * amplitude
	}
	return mat.NewDense(rows, cols, data)
}

// DeterministicFilter2D returns a rows×cols kernel with values in [0, 1).
func DeterministicFilter2D(seed int64, rows, cols int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = rng.Float64()
		}
	}
	return out
}

// Ramp returns a triangle ramp 0,1,..,peak,..,1,0 of the given length.
func Ramp(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(min(i, length-1-i))
	}
	return out
}
