package particle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension is the dimensionality of the simulation space
type Dimension int

const (
	Dim2 Dimension = 2
	Dim3 Dimension = 3
)

// Valid reports whether the dimension is supported
func (d Dimension) Valid() bool {
	return d == Dim2 || d == Dim3
}

// Particle is a point particle in a 2D or 3D box
type Particle struct {
	Position []float64 `json:"position"`
}

// New creates a particle at the given coordinates
func New(coords ...float64) Particle {
	pos := make([]float64, len(coords))
	copy(pos, coords)
	return Particle{Position: pos}
}

// Validate checks that the particle has coordinates for the dimension
func (p Particle) Validate(dim Dimension) error {
	if !dim.Valid() {
		return fmt.Errorf("dimension must be 2 or 3, got %d", dim)
	}
	if len(p.Position) < int(dim) {
		return fmt.Errorf("position needs %d coordinates, got %d", dim, len(p.Position))
	}
	return nil
}

// Box holds the edge lengths of the simulation box, one per dimension
type Box []float64

// Dimension returns the dimensionality implied by the number of edges
func (b Box) Dimension() Dimension {
	return Dimension(len(b))
}

// Validate checks that the box is 2D or 3D with positive finite edges
func (b Box) Validate() error {
	if !b.Dimension().Valid() {
		return fmt.Errorf("box must have 2 or 3 edges, got %d", len(b))
	}
	for i, edge := range b {
		if !(edge > 0) || math.IsInf(edge, 1) {
			return fmt.Errorf("box edge %d must be finite and > 0, got %g", i, edge)
		}
	}
	return nil
}

// ParseBox parses a comma separated list of edge lengths, e.g. "10,10,10"
func ParseBox(s string) (Box, error) {
	parts := strings.Split(s, ",")
	box := make(Box, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid box edge %q: %w", part, err)
		}
		box = append(box, v)
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	return box, nil
}
