package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"govmmc/domain/particle"
	"govmmc/internal/errors"
)

// boxEdges are the twelve edges of the box as pairs of Tcl corner vectors
var boxEdges = [12][2]string{
	{"$minx $miny $minz", "$maxx $miny $minz"},
	{"$minx $miny $minz", "$minx $maxy $minz"},
	{"$minx $miny $minz", "$minx $miny $maxz"},
	{"$maxx $miny $minz", "$maxx $maxy $minz"},
	{"$maxx $miny $minz", "$maxx $miny $maxz"},
	{"$minx $maxy $minz", "$maxx $maxy $minz"},
	{"$minx $maxy $minz", "$minx $maxy $maxz"},
	{"$minx $miny $maxz", "$maxx $miny $maxz"},
	{"$minx $miny $maxz", "$minx $maxy $maxz"},
	{"$maxx $maxy $maxz", "$maxx $maxy $minz"},
	{"$maxx $maxy $maxz", "$minx $maxy $maxz"},
	{"$maxx $maxy $maxz", "$maxx $miny $maxz"},
}

// WriteVMDScript overwrites the scene script for box
func (e *Exporter) WriteVMDScript(box particle.Box) error {
	if err := box.Validate(); err != nil {
		return errors.InvalidInput(err.Error())
	}

	path := e.ScriptPath()
	f, err := os.Create(path)
	if err != nil {
		return errors.ResourceUnavailable(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteVMD(w, box); err != nil {
		return errors.Wrapf(err, "failed to write script %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "failed to write script %s", path)
	}

	e.logger.Debug("Wrote VMD script for %dD box to %s", box.Dimension(), path)
	return f.Close()
}

// WriteVMD writes the scene setup: lighting, orthographic projection, VDW
// drawing, the box outline and, for 3D boxes, a viewing rotation.
func WriteVMD(w io.Writer, box particle.Box) error {
	if err := box.Validate(); err != nil {
		return errors.InvalidInput(err.Error())
	}
	sw := &stickyWriter{w: w}

	sw.printf("light 0 on\n")
	sw.printf("light 1 on\n")
	sw.printf("light 2 off\n")
	sw.printf("light 3 off\n")

	sw.printf("axes location off\n")
	sw.printf("stage location off\n")

	sw.printf("display projection orthographic\n")

	sw.printf("mol modstyle 0 0 VDW 1 30\n")

	sw.printf("set sel [atomselect top \"name X\"]\n")
	sw.printf("atomselect0 set radius 0.4\n")

	sw.printf("color Name X blue\n")

	sw.printf("display depthcue off\n")

	sw.printf("set minx 0\n")
	sw.printf("set maxx %5.4f\n", box[0])
	sw.printf("set miny 0\n")
	sw.printf("set maxy %5.4f\n", box[1])
	sw.printf("set minz 0\n")
	if box.Dimension() == particle.Dim3 {
		sw.printf("set maxz %5.4f\n", box[2])
	} else {
		sw.printf("set maxz 0\n")
	}

	sw.printf("draw materials off\n")
	sw.printf("draw color white\n")

	for _, edge := range boxEdges {
		sw.printf("draw line \"%s\" \"%s\"\n", edge[0], edge[1])
	}

	if box.Dimension() == particle.Dim3 {
		sw.printf("rotate x by -60\n")
		sw.printf("rotate y by -30\n")
		sw.printf("rotate z by -15\n")
	}

	return sw.err
}

// stickyWriter remembers the first write error and skips later writes
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}
