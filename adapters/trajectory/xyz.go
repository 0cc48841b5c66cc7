// Package trajectory writes particle frames and scene scripts for VMD.
package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"govmmc/domain/particle"
	"govmmc/internal"
	"govmmc/internal/errors"
	"govmmc/ports"
)

const (
	DefaultTrajectoryFile = "trajectory.xyz"
	DefaultScriptFile     = "vmd.tcl"
)

var _ ports.TrajectoryPort = (*Exporter)(nil)

// Exporter writes trajectory frames and the VMD script into Dir. Every call
// opens, writes and closes its file; no handle is kept between calls.
type Exporter struct {
	Dir            string
	TrajectoryFile string
	ScriptFile     string

	logger *internal.Logger
}

// NewExporter creates an exporter writing the default file names into dir
func NewExporter(dir string, logger *internal.Logger) *Exporter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Exporter{
		Dir:            dir,
		TrajectoryFile: DefaultTrajectoryFile,
		ScriptFile:     DefaultScriptFile,
		logger:         logger,
	}
}

// TrajectoryPath returns the path of the xyz file
func (e *Exporter) TrajectoryPath() string {
	return filepath.Join(e.Dir, e.TrajectoryFile)
}

// ScriptPath returns the path of the VMD script
func (e *Exporter) ScriptPath() string {
	return filepath.Join(e.Dir, e.ScriptFile)
}

// AppendXYZ appends one frame to the trajectory file. When clear is set any
// existing trajectory is wiped first.
func (e *Exporter) AppendXYZ(dim particle.Dimension, particles []particle.Particle, clear bool) error {
	if err := validateFrame(dim, particles); err != nil {
		return err
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if clear {
		flags |= os.O_TRUNC
	}

	path := e.TrajectoryPath()
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return errors.ResourceUnavailable(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteXYZFrame(w, dim, particles); err != nil {
		return errors.Wrapf(err, "failed to write frame to %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "failed to write frame to %s", path)
	}

	e.logger.Trace("Appended %d particles to %s", len(particles), path)
	return f.Close()
}

// WriteXYZFrame writes a frame: the particle count, a blank comment line and
// one "0 x y z" line per particle. z is 0 in two dimensions.
func WriteXYZFrame(w io.Writer, dim particle.Dimension, particles []particle.Particle) error {
	if err := validateFrame(dim, particles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d\n\n", len(particles)); err != nil {
		return err
	}
	for _, p := range particles {
		z := 0.0
		if dim == particle.Dim3 {
			z = p.Position[2]
		}
		if _, err := fmt.Fprintf(w, "0 %5.4f %5.4f %5.4f\n", p.Position[0], p.Position[1], z); err != nil {
			return err
		}
	}
	return nil
}

func validateFrame(dim particle.Dimension, particles []particle.Particle) error {
	if !dim.Valid() {
		return errors.InvalidInput(fmt.Sprintf("dimension must be 2 or 3, got %d", dim))
	}
	for i, p := range particles {
		if err := p.Validate(dim); err != nil {
			return errors.Wrapf(errors.InvalidInput(err.Error()), "particle %d", i)
		}
	}
	return nil
}
