package app

import (
	"context"
	"fmt"
	"time"

	"govmmc/domain/particle"
	"govmmc/internal"
	"govmmc/internal/errors"
	"govmmc/ports"
)

// ScatterService places particles uniformly in a box and exports the frames
// for viewing. It owns no randomness of its own; all draws go through the
// variate port, so a reseeded port reproduces the same trajectory.
type ScatterService struct {
	variates ports.VariatePort
	exporter ports.TrajectoryPort
	logger   *internal.Logger
}

// ScatterRequest defines one export run
type ScatterRequest struct {
	Box       particle.Box
	Particles int
	Frames    int
}

// ScatterResult summarizes an export run
type ScatterResult struct {
	Dimension particle.Dimension  `json:"dimension"`
	Frames    int                 `json:"frames"`
	Particles int                 `json:"particles"`
	Last      []particle.Particle `json:"-"`
	RuntimeMs int64               `json:"runtime_ms"`
}

// NewScatterService creates a scatter service. The exporter may be nil when
// only Scatter is used; Run needs one.
func NewScatterService(variates ports.VariatePort, exporter ports.TrajectoryPort, logger *internal.Logger) *ScatterService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ScatterService{
		variates: variates,
		exporter: exporter,
		logger:   logger,
	}
}

// Scatter returns n particles with coordinates uniform over [0, edge] on
// every box axis.
func (s *ScatterService) Scatter(box particle.Box, n int) ([]particle.Particle, error) {
	if err := box.Validate(); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	if n < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("particle count must be >= 0, got %d", n))
	}

	particles := make([]particle.Particle, n)
	for i := range particles {
		pos := make([]float64, len(box))
		for d, edge := range box {
			pos[d] = edge * s.variates.UniformUnit()
		}
		particles[i] = particle.Particle{Position: pos}
	}
	return particles, nil
}

// Run writes the scene script once, then req.Frames independently scattered
// frames, truncating any earlier trajectory before the first one.
func (s *ScatterService) Run(ctx context.Context, req ScatterRequest) (*ScatterResult, error) {
	startTime := time.Now()

	if s.exporter == nil {
		return nil, errors.InvalidInput("scatter run needs a trajectory exporter")
	}
	if req.Frames <= 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("frame count must be > 0, got %d", req.Frames))
	}
	if err := req.Box.Validate(); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	if err := s.exporter.WriteVMDScript(req.Box); err != nil {
		return nil, errors.Wrap(err, "failed to write scene script")
	}

	dim := req.Box.Dimension()
	var frame []particle.Particle
	for i := 0; i < req.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "scatter cancelled after %d frames", i)
		}

		var err error
		frame, err = s.Scatter(req.Box, req.Particles)
		if err != nil {
			return nil, err
		}
		if err := s.exporter.AppendXYZ(dim, frame, i == 0); err != nil {
			return nil, errors.Wrapf(err, "failed to export frame %d", i)
		}
		s.logger.Trace("Exported frame %d/%d", i+1, req.Frames)
	}

	result := &ScatterResult{
		Dimension: dim,
		Frames:    req.Frames,
		Particles: req.Particles,
		Last:      frame,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}
	s.logger.Info("Exported %d frames of %d particles in a %dD box (%dms)",
		result.Frames, result.Particles, dim, result.RuntimeMs)
	return result, nil
}
