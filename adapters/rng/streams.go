package rng

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Streams derives independently seeded services from one master seed so that
// parallel sampling stays reproducible. Streams itself holds no generator and
// is safe for concurrent use.
type Streams struct {
	master uint32
}

// NewStreams creates a stream set rooted at master.
func NewStreams(master uint32) *Streams {
	return &Streams{master: master}
}

// Master returns the master seed
func (s *Streams) Master() uint32 {
	return s.master
}

// Seed returns the seed of stream (name, index). Equal inputs give equal seeds.
func (s *Streams) Seed(name string, index int) uint32 {
	h := s.master
	if name != "" {
		h += hashString(name)
	}
	h = mix32(h ^ mix32(uint32(index)+0x9e3779b9))
	return h
}

// Service returns a new service seeded for stream (name, index).
func (s *Streams) Service(name string, index int) *MersenneTwister {
	return NewSeeded(s.Seed(name, index))
}

// Run calls fn once per worker in its own goroutine, each with a dedicated
// service for stream (name, worker). It returns the first error, after which
// the context passed to the remaining workers is cancelled.
func (s *Streams) Run(ctx context.Context, name string, workers int, fn func(ctx context.Context, worker int, svc *MersenneTwister) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		svc := s.Service(name, w)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, w, svc)
		})
	}
	return g.Wait()
}

// hashString is djb2 over the runes of s
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}

// mix32 is the murmur3 finalizer
func mix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
