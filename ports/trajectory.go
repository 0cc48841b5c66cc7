package ports

import "govmmc/domain/particle"

// TrajectoryPort serializes particle configurations for an external viewer
type TrajectoryPort interface {
	// AppendXYZ appends one frame to the trajectory file, truncating it first
	// when clear is set.
	AppendXYZ(dim particle.Dimension, particles []particle.Particle, clear bool) error

	// WriteVMDScript writes the scene setup script for the simulation box.
	WriteVMDScript(box particle.Box) error
}
