package testutil

import "testing"

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicImage(t *testing.T) {
	img := DeterministicImage(7, 255, 5, 3)
	r, c := img.Dims()
	if r != 5 || c != 3 {
		t.Fatalf("dims = %d×%d, want 5×3", r, c)
	}
	again := DeterministicImage(7, 255, 5, 3)
	for i := range r {
		for j := range c {
			if img.At(i, j) != again.At(i, j) {
				t.Fatalf("image not deterministic at (%d,%d)", i, j)
			}
		}
	}
}

func TestRamp(t *testing.T) {
	got := Ramp(11)
	want := []float64{0, 1, 2, 3, 4, 5, 4, 3, 2, 1, 0}
	RequireSliceNearlyEqual(t, got, want, 0)
}
