package rng

import (
	"fmt"

	"govmmc/internal/errors"
)

// Fingerprint returns the first n unit-uniform draws after seeding with seed.
func Fingerprint(seed uint32, n int) []float64 {
	m := NewSeeded(seed)
	out := make([]float64, n)
	for i := range out {
		out[i] = m.UniformUnit()
	}
	return out
}

// ValidateSeed replays seed and checks that it reproduces expected exactly.
func ValidateSeed(seed uint32, expected []float64) error {
	got := Fingerprint(seed, len(expected))
	for i := range expected {
		if got[i] != expected[i] {
			return errors.ValidationError(fmt.Sprintf(
				"seed %d diverged at draw %d: expected %v, got %v", seed, i, expected[i], got[i]))
		}
	}
	return nil
}
