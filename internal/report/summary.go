// Package report summarizes and dumps batches of sampled variates.
package report

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"govmmc/internal/errors"
)

// Summary holds descriptive statistics of a sample batch
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // sample standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summarize computes descriptive statistics for samples
func Summarize(samples []float64) (Summary, error) {
	var s Summary
	if len(samples) == 0 {
		return s, errors.InvalidInput("cannot summarize an empty sample")
	}

	var err error
	if s.Mean, err = stats.Mean(samples); err != nil {
		return s, errors.Wrap(err, "mean")
	}
	if s.Min, err = stats.Min(samples); err != nil {
		return s, errors.Wrap(err, "min")
	}
	if s.Max, err = stats.Max(samples); err != nil {
		return s, errors.Wrap(err, "max")
	}
	if s.Median, err = stats.Median(samples); err != nil {
		return s, errors.Wrap(err, "median")
	}
	if len(samples) > 1 {
		if s.StdDev, err = stats.StandardDeviationSample(samples); err != nil {
			return s, errors.Wrap(err, "standard deviation")
		}
	}
	s.Count = len(samples)
	return s, nil
}

// Within reports whether the batch mean and standard deviation match the
// expected moments to within tol.
func (s Summary) Within(mean, stdDev, tol float64) bool {
	return math.Abs(s.Mean-mean) <= tol && math.Abs(s.StdDev-stdDev) <= tol
}

// Expected returns the theoretical mean and standard deviation of dist
func Expected(dist Distribution) (mean, stdDev float64) {
	switch dist.Kind {
	case KindUniform:
		return 0.5, 1 / math.Sqrt(12)
	case KindInt:
		// discrete uniform over n = max-min+1 values
		n := float64(dist.Max) - float64(dist.Min) + 1
		return (float64(dist.Min) + float64(dist.Max)) / 2, math.Sqrt((n*n - 1) / 12)
	default:
		return dist.Mean, dist.StdDev
	}
}

// CombinedMoments pools per-worker batches into one mean and standard deviation
func CombinedMoments(batches [][]float64) (mean, stdDev float64) {
	var all []float64
	for _, b := range batches {
		all = append(all, b...)
	}
	if len(all) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(all, nil)
}
