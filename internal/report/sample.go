package report

import (
	"fmt"
	"strings"

	"govmmc/internal/errors"
	"govmmc/ports"
)

// Kind names a distribution family offered by the variate service
type Kind string

const (
	KindUniform Kind = "uniform"
	KindInt     Kind = "int"
	KindNormal  Kind = "normal"
)

// maxExactInt is the largest magnitude a float64 sample holds without rounding
const maxExactInt = 1 << 53

// Distribution selects the sampling operation and its parameters
type Distribution struct {
	Kind   Kind
	Min    int     // int only
	Max    int     // int only
	Mean   float64 // normal only
	StdDev float64 // normal only
}

// ParseKind validates a distribution name
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindUniform, KindInt, KindNormal:
		return k, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unknown distribution %q (want uniform, int or normal)", name))
	}
}

// Standard reports whether a normal distribution uses the default N(0, 1) descriptor
func (d Distribution) Standard() bool {
	return d.Kind == KindNormal && d.Mean == 0 && d.StdDev == 1
}

// Validate checks the preconditions the variate service leaves to its callers
func (d Distribution) Validate() error {
	switch d.Kind {
	case KindUniform:
		return nil
	case KindInt:
		if d.Min > d.Max {
			return errors.InvalidInput(fmt.Sprintf("min %d exceeds max %d", d.Min, d.Max))
		}
		// draws are kept as float64, so bounds past 2^53 would be rounded
		if int64(d.Min) < -maxExactInt || int64(d.Max) > maxExactInt {
			return errors.InvalidInput(fmt.Sprintf("int bounds must lie within ±2^53, got [%d, %d]", d.Min, d.Max))
		}
		return nil
	case KindNormal:
		if d.StdDev < 0 {
			return errors.InvalidInput(fmt.Sprintf("standard deviation must be >= 0, got %g", d.StdDev))
		}
		return nil
	default:
		_, err := ParseKind(string(d.Kind))
		return err
	}
}

// Draw takes n variates from svc. Preconditions are checked once here so the
// sampling loop stays unchecked. Integer draws are returned as exact float64
// values, which limits int bounds to ±2^53.
func Draw(svc ports.VariatePort, dist Distribution, n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("sample count must be > 0, got %d", n))
	}
	if err := dist.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	switch {
	case dist.Kind == KindUniform:
		for i := range out {
			out[i] = svc.UniformUnit()
		}
	case dist.Kind == KindInt:
		for i := range out {
			out[i] = float64(svc.Int(dist.Min, dist.Max))
		}
	case dist.Standard():
		for i := range out {
			out[i] = svc.StdNormal()
		}
	default:
		for i := range out {
			out[i] = svc.Normal(dist.Mean, dist.StdDev)
		}
	}
	return out, nil
}
