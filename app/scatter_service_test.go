package app

import (
	"bytes"
	"context"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govmmc/adapters/rng"
	"govmmc/adapters/trajectory"
	"govmmc/domain/particle"
	"govmmc/internal"
	"govmmc/internal/errors"
)

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
}

func TestScatterStaysInsideBox(t *testing.T) {
	svc := NewScatterService(rng.NewSeeded(1), nil, quietLogger())
	box := particle.Box{10, 5, 2}

	particles, err := svc.Scatter(box, 500)
	require.NoError(t, err)
	require.Len(t, particles, 500)

	for _, p := range particles {
		require.Len(t, p.Position, 3)
		for d, edge := range box {
			assert.GreaterOrEqual(t, p.Position[d], 0.0)
			assert.LessOrEqual(t, p.Position[d], edge)
		}
	}
}

func TestScatterIsReproducible(t *testing.T) {
	box := particle.Box{3, 3}
	a, err := NewScatterService(rng.NewSeeded(42), nil, quietLogger()).Scatter(box, 20)
	require.NoError(t, err)
	b, err := NewScatterService(rng.NewSeeded(42), nil, quietLogger()).Scatter(box, 20)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestScatterRejectsBadInput(t *testing.T) {
	svc := NewScatterService(rng.NewSeeded(1), nil, quietLogger())

	_, err := svc.Scatter(particle.Box{1}, 1)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Scatter(particle.Box{1, 1}, -1)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRunWritesTrajectoryAndScript(t *testing.T) {
	dir := t.TempDir()
	exporter := trajectory.NewExporter(dir, quietLogger())

	// stale content must be truncated by the first frame
	require.NoError(t, os.WriteFile(exporter.TrajectoryPath(), []byte("stale\n"), 0o644))

	svc := NewScatterService(rng.NewSeeded(2015), exporter, quietLogger())
	result, err := svc.Run(context.Background(), ScatterRequest{
		Box:       particle.Box{10, 10, 10},
		Particles: 4,
		Frames:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, particle.Dim3, result.Dimension)
	assert.Equal(t, 3, result.Frames)
	assert.Len(t, result.Last, 4)

	data, err := os.ReadFile(exporter.TrajectoryPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 3*(2+4))
	assert.Equal(t, "4", lines[0])
	assert.Equal(t, "", lines[1])
	assert.NotContains(t, string(data), "stale")

	script, err := os.ReadFile(exporter.ScriptPath())
	require.NoError(t, err)
	assert.Contains(t, string(script), "set maxz 10.0000\n")
}

func TestRunReplaysWithSameSeed(t *testing.T) {
	run := func() string {
		exporter := trajectory.NewExporter(t.TempDir(), quietLogger())
		svc := NewScatterService(rng.NewSeeded(7), exporter, quietLogger())
		_, err := svc.Run(context.Background(), ScatterRequest{Box: particle.Box{4, 4}, Particles: 5, Frames: 2})
		require.NoError(t, err)
		data, err := os.ReadFile(exporter.TrajectoryPath())
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, run(), run())
}

func TestRunHonorsCancellation(t *testing.T) {
	exporter := trajectory.NewExporter(t.TempDir(), quietLogger())
	svc := NewScatterService(rng.NewSeeded(1), exporter, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, ScatterRequest{Box: particle.Box{1, 1}, Particles: 1, Frames: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsZeroFrames(t *testing.T) {
	svc := NewScatterService(rng.NewSeeded(1), trajectory.NewExporter(t.TempDir(), quietLogger()), quietLogger())
	_, err := svc.Run(context.Background(), ScatterRequest{Box: particle.Box{1, 1}, Particles: 1})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRunRequiresExporter(t *testing.T) {
	svc := NewScatterService(rng.NewSeeded(1), nil, quietLogger())

	var err error
	require.NotPanics(t, func() {
		_, err = svc.Run(context.Background(), ScatterRequest{Box: particle.Box{1, 1}, Particles: 1, Frames: 1})
	})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRunRejectsNonFiniteBox(t *testing.T) {
	svc := NewScatterService(rng.NewSeeded(1), trajectory.NewExporter(t.TempDir(), quietLogger()), quietLogger())
	_, err := svc.Run(context.Background(), ScatterRequest{Box: particle.Box{math.NaN(), 1}, Particles: 1, Frames: 1})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
