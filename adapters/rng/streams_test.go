package rng

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreams_SeedIsDeterministic(t *testing.T) {
	a := NewStreams(42)
	b := NewStreams(42)

	assert.Equal(t, a.Seed("displacement", 3), b.Seed("displacement", 3))
	assert.NotEqual(t, a.Seed("displacement", 0), a.Seed("displacement", 1))
	assert.NotEqual(t, a.Seed("displacement", 0), a.Seed("rotation", 0))
	assert.NotEqual(t, a.Seed("displacement", 0), NewStreams(43).Seed("displacement", 0))
}

func TestStreams_ServicesAreIndependent(t *testing.T) {
	s := NewStreams(7)
	w0 := s.Service("moves", 0)
	w1 := s.Service("moves", 1)

	assert.NotEqual(t, w0.UniformUnit(), w1.UniformUnit())

	replay := s.Service("moves", 0)
	w0.Reseed(w0.Seed())
	for i := 0; i < 50; i++ {
		require.Equal(t, w0.StdNormal(), replay.StdNormal())
	}
}

func TestStreams_RunIsReproducible(t *testing.T) {
	const workers = 8
	run := func() [][]int {
		out := make([][]int, workers)
		err := NewStreams(2015).Run(context.Background(), "moves", workers,
			func(ctx context.Context, worker int, svc *MersenneTwister) error {
				draws := make([]int, 100)
				for i := range draws {
					draws[i] = svc.Int(0, 1000)
				}
				out[worker] = draws
				return nil
			})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, run(), run())
}

func TestStreams_RunReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := NewStreams(1).Run(context.Background(), "moves", 4,
		func(ctx context.Context, worker int, svc *MersenneTwister) error {
			if worker == 2 {
				return boom
			}
			return nil
		})

	assert.ErrorIs(t, err, boom)
}

func TestStreams_RunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStreams(1).Run(ctx, "moves", 1,
		func(ctx context.Context, worker int, svc *MersenneTwister) error {
			called = true
			return nil
		})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
