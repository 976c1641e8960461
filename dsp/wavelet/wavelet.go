package wavelet

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-wavelet/dsp/core"
)

// Errors returned by filter bank construction and lookup.
var (
	ErrUnknownWavelet = fmt.Errorf("wavelet: unknown wavelet: %w", core.ErrInvalidConfiguration)
	ErrInvalidFilters = fmt.Errorf("wavelet: invalid filter bank: %w", core.ErrInvalidConfiguration)
)

// Wavelet is a two-channel filter bank. All four filters have the same
// length. DecLo and DecHi are applied by convolution during analysis, RecLo
// and RecHi during synthesis.
type Wavelet struct {
	Name  string
	DecLo []float64
	DecHi []float64
	RecLo []float64
	RecHi []float64
}

// New returns a filter bank from caller-provided filters. The slices are
// copied.
func New(name string, decLo, decHi, recLo, recHi []float64) (*Wavelet, error) {
	w := &Wavelet{
		Name:  name,
		DecLo: slices.Clone(decLo),
		DecHi: slices.Clone(decHi),
		RecLo: slices.Clone(recLo),
		RecHi: slices.Clone(recHi),
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// FromScaling builds an orthogonal filter bank from its reconstruction
// low-pass filter: DecLo is RecLo reversed, DecHi[k] = (-1)^(k+1)·RecLo[k]
// and RecHi is DecHi reversed.
func FromScaling(name string, recLo []float64) (*Wavelet, error) {
	l := len(recLo)
	if l == 0 || l%2 != 0 {
		return nil, fmt.Errorf("%w: scaling filter length %d", ErrInvalidFilters, l)
	}

	decHi := make([]float64, l)
	for k, v := range recLo {
		if k%2 == 0 {
			decHi[k] = -v
		} else {
			decHi[k] = v
		}
	}

	decLo := slices.Clone(recLo)
	slices.Reverse(decLo)
	recHi := slices.Clone(decHi)
	slices.Reverse(recHi)

	return &Wavelet{
		Name:  name,
		DecLo: decLo,
		DecHi: decHi,
		RecLo: slices.Clone(recLo),
		RecHi: recHi,
	}, nil
}

// Len returns the filter length.
func (w *Wavelet) Len() int {
	return len(w.DecLo)
}

// Validate reports whether w is a usable filter bank: non-nil, with four
// non-empty filters of equal length.
func (w *Wavelet) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: nil wavelet", ErrInvalidFilters)
	}
	l := len(w.DecLo)
	if l == 0 {
		return fmt.Errorf("%w: empty decomposition low-pass", ErrInvalidFilters)
	}
	if len(w.DecHi) != l || len(w.RecLo) != l || len(w.RecHi) != l {
		return fmt.Errorf("%w: lengths %d/%d/%d/%d differ",
			ErrInvalidFilters, len(w.DecLo), len(w.DecHi), len(w.RecLo), len(w.RecHi))
	}
	return nil
}

// Clone returns a deep copy of w.
func (w *Wavelet) Clone() *Wavelet {
	return &Wavelet{
		Name:  w.Name,
		DecLo: slices.Clone(w.DecLo),
		DecHi: slices.Clone(w.DecHi),
		RecLo: slices.Clone(w.RecLo),
		RecHi: slices.Clone(w.RecHi),
	}
}

func (w *Wavelet) String() string {
	return w.Name
}

// MaxDaubechies is the highest Daubechies order available through Lookup.
const MaxDaubechies = 10

var (
	registryOnce sync.Once
	registry     map[string]*Wavelet
	registryErr  error
)

func buildRegistry() {
	registry = make(map[string]*Wavelet, MaxDaubechies+1)
	for n := 1; n <= MaxDaubechies; n++ {
		w, err := Daubechies(n)
		if err != nil {
			registryErr = err
			return
		}
		registry[w.Name] = w
	}
	haar := registry["db1"].Clone()
	haar.Name = "haar"
	registry["haar"] = haar
}

// Lookup returns the named filter bank: "haar" or "db1" through "db10".
// Names are case-insensitive. The returned value is a copy the caller may
// modify.
func Lookup(name string) (*Wavelet, error) {
	registryOnce.Do(buildRegistry)
	if registryErr != nil {
		return nil, registryErr
	}

	w, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}
	return w.Clone(), nil
}

// Names lists the names accepted by Lookup in a stable order.
func Names() []string {
	names := []string{"haar"}
	for n := 1; n <= MaxDaubechies; n++ {
		names = append(names, fmt.Sprintf("db%d", n))
	}
	return names
}
