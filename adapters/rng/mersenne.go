// Package rng provides the random variate service used by move proposals.
package rng

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"

	"govmmc/ports"
)

var _ ports.VariatePort = (*MersenneTwister)(nil)

// MersenneTwister samples variates from a single MT19937 generator.
//
// A MersenneTwister is not safe for concurrent use. Give each goroutine its
// own instance (see Streams) or guard a shared one with a mutex.
type MersenneTwister struct {
	gen  *prng.MT19937
	seed uint32

	unit   distuv.Uniform
	normal distuv.Normal
}

// New returns a service seeded from the operating system's entropy source.
// Two services built with New produce different sequences; call Seed to
// recover the value needed to replay one of them.
func New() *MersenneTwister {
	return NewSeeded(EntropySeed())
}

// NewSeeded returns a service whose output is fully determined by seed.
func NewSeeded(seed uint32) *MersenneTwister {
	gen := prng.NewMT19937()
	m := &MersenneTwister{
		gen:    gen,
		unit:   distuv.Uniform{Min: 0, Max: 1, Src: gen},
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: gen},
	}
	m.Reseed(seed)
	return m
}

// UniformUnit returns a variate uniformly distributed over [0, 1].
func (m *MersenneTwister) UniformUnit() float64 {
	return m.unit.Rand()
}

// Int returns an integer uniformly distributed over [min, max] inclusive.
// min must not exceed max; the result is unspecified otherwise.
func (m *MersenneTwister) Int(min, max int) int {
	span := uint64(max - min)
	if span == math.MaxUint64 {
		return min + int(m.gen.Uint64())
	}
	return min + int(rand.New(m.gen).Uint64N(span+1))
}

// StdNormal returns a variate from N(0, 1).
func (m *MersenneTwister) StdNormal() float64 {
	return m.normal.Rand()
}

// Normal returns a variate from N(mean, stdDev²). stdDev must be >= 0; a zero
// stdDev always yields mean.
func (m *MersenneTwister) Normal(mean, stdDev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stdDev, Src: m.gen}.Rand()
}

// Reseed replaces the generator state in place.
func (m *MersenneTwister) Reseed(seed uint32) {
	m.gen.Seed(uint64(seed))
	m.seed = seed
}

// Seed returns the seed most recently applied, including the entropy seed
// chosen by New.
func (m *MersenneTwister) Seed() uint32 {
	return m.seed
}
