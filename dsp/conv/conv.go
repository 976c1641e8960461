package conv

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-wavelet/dsp/core"
)

// Errors returned by convolution functions. Each wraps
// core.ErrInvalidConfiguration.
var (
	ErrEmptyInput       = fmt.Errorf("conv: empty input: %w", core.ErrInvalidConfiguration)
	ErrEmptyKernel      = fmt.Errorf("conv: empty kernel: %w", core.ErrInvalidConfiguration)
	ErrLengthMismatch   = fmt.Errorf("conv: buffer length mismatch: %w", core.ErrInvalidConfiguration)
	ErrInvalidBlockSize = fmt.Errorf("conv: invalid block size: %w", core.ErrInvalidConfiguration)
	ErrInvalidStride    = fmt.Errorf("conv: stride must be > 0: %w", core.ErrInvalidConfiguration)
	ErrInvalidMode      = fmt.Errorf("conv: unknown padding mode: %w", core.ErrInvalidConfiguration)
	ErrKernelTooLong    = fmt.Errorf("conv: kernel longer than input in valid mode: %w", core.ErrInvalidConfiguration)
	ErrRaggedKernel     = fmt.Errorf("conv: 2D kernel rows differ in length: %w", core.ErrInvalidConfiguration)
)

// Mode specifies the output mode for convolution and correlation.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// centred on the full result like scipy.signal.convolve.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length len(a) - len(b) + 1.
	ModeValid
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	case ModeValid:
		return "valid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "full", "same" or "valid" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "full":
		return ModeFull, nil
	case "same":
		return ModeSame, nil
	case "valid":
		return ModeValid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// OutputLen returns the number of outputs produced when an n-sample input is
// convolved with a kernel of length l under mode, keeping every stride-th
// sample:
//
//	full:  ⌈(n+l-1)/stride⌉
//	same:  ⌈n/stride⌉
//	valid: ⌊(n-l)/stride⌋+1
func OutputLen(n, l int, mode Mode, stride int) (int, error) {
	switch {
	case n < 1:
		return 0, fmt.Errorf("%w: input length %d", ErrEmptyInput, n)
	case l < 1:
		return 0, ErrEmptyKernel
	case stride < 1:
		return 0, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}

	switch mode {
	case ModeFull:
		return core.CeilDiv(n+l-1, stride), nil
	case ModeSame:
		return core.CeilDiv(n, stride), nil
	case ModeValid:
		if n < l {
			return 0, fmt.Errorf("%w: kernel %d, input %d", ErrKernelTooLong, l, n)
		}
		return (n-l)/stride + 1, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
}

// fullOffset returns the index into the full convolution result at which the
// output of mode starts. For ModeSame the extra sample of an even-length
// kernel falls on the trailing side.
func fullOffset(l int, mode Mode) (int, error) {
	switch mode {
	case ModeFull:
		return 0, nil
	case ModeSame:
		return (l - 1) / 2, nil
	case ModeValid:
		return l - 1, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
}

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
// For longer kernels, use FFT-based methods like OverlapAdd.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	clear(dst)

	// Vector kernels pay off from four taps on.
	const simdThreshold = 4
	if len(b) >= simdThreshold {
		directToSIMD(dst, a, b)
	} else {
		directToScalar(dst, a, b)
	}
}

func directToScalar(dst, a, b []float64) {
	for i, x := range a {
		for j, y := range b {
			dst[i+j] += x * y
		}
	}
}

// directToSIMD accumulates one scaled copy of b per input sample.
func directToSIMD(dst, a, b []float64) {
	m := len(b)
	temp := make([]float64, m)
	for i, x := range a {
		vecmath.ScaleBlock(temp, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// DirectCircular performs circular convolution of a and b.
// Both inputs must have the same length N, and the result has length N.
func DirectCircular(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	n := len(a)
	result := make([]float64, n)
	for i := range n {
		for j := range n {
			result[(i+j)%n] += a[i] * b[j]
		}
	}
	return result, nil
}

// Convolve performs linear convolution with automatic algorithm selection.
// For short kernels (< 64 samples), uses direct convolution.
// For longer kernels, uses FFT-based overlap-add.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Keep the longer operand as the signal.
	if len(b) > len(a) {
		a, b = b, a
	}

	const directThreshold = 64
	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}

// ConvolveMode performs convolution of signal a with kernel b and returns the
// part of the result selected by mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	return ConvolveStrided(a, b, mode, 1)
}

// ConvolveStrided convolves a with b under mode and keeps every stride-th
// output sample, starting with the first.
func ConvolveStrided(a, b []float64, mode Mode, stride int) ([]float64, error) {
	outLen, err := OutputLen(len(a), len(b), mode, stride)
	if err != nil {
		return nil, err
	}
	start, err := fullOffset(len(b), mode)
	if err != nil {
		return nil, err
	}

	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = full[start+i*stride]
	}
	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
