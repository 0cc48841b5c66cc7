package report

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"govmmc/internal/errors"
)

// maxChiSquareBins bounds the integer ranges checked with a chi-square test
const maxChiSquareBins = 10000

// Shape holds the higher moments of a sample batch
type Shape struct {
	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis"`
}

// Fit is the result of a goodness-of-fit test against the sampled distribution
type Fit struct {
	Test      string  `json:"test"`
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

// Consistent reports whether the test fails to reject the distribution at alpha
func (f Fit) Consistent(alpha float64) bool {
	return f.PValue > alpha
}

// MeasureShape computes skewness and excess kurtosis
func MeasureShape(samples []float64) (Shape, error) {
	if len(samples) < 4 {
		return Shape{}, errors.InvalidInput(fmt.Sprintf("shape needs at least 4 samples, got %d", len(samples)))
	}
	return Shape{
		Skewness:       stat.Skew(samples, nil),
		ExcessKurtosis: stat.ExKurtosis(samples, nil),
	}, nil
}

// GoodnessOfFit tests samples against dist: Kolmogorov-Smirnov for the
// continuous families, Pearson chi-square for integers.
func GoodnessOfFit(dist Distribution, samples []float64) (Fit, error) {
	if len(samples) == 0 {
		return Fit{}, errors.InvalidInput("cannot test an empty sample")
	}
	if err := dist.Validate(); err != nil {
		return Fit{}, err
	}

	switch dist.Kind {
	case KindUniform:
		return kolmogorovSmirnov(samples, distuv.Uniform{Min: 0, Max: 1}.CDF), nil
	case KindNormal:
		if dist.StdDev == 0 {
			return degenerate(samples, dist.Mean), nil
		}
		return kolmogorovSmirnov(samples, distuv.Normal{Mu: dist.Mean, Sigma: dist.StdDev}.CDF), nil
	default:
		return chiSquareInt(samples, dist.Min, dist.Max)
	}
}

// JarqueBera tests normality from skewness and kurtosis; the statistic is
// asymptotically chi-square with two degrees of freedom.
func JarqueBera(samples []float64) (Fit, error) {
	shape, err := MeasureShape(samples)
	if err != nil {
		return Fit{}, err
	}
	n := float64(len(samples))
	jb := n / 6 * (shape.Skewness*shape.Skewness + shape.ExcessKurtosis*shape.ExcessKurtosis/4)
	return Fit{
		Test:      "jarque-bera",
		Statistic: jb,
		PValue:    distuv.ChiSquared{K: 2}.Survival(jb),
	}, nil
}

func kolmogorovSmirnov(samples []float64, cdf func(float64) float64) Fit {
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		d = math.Max(d, math.Max(f-float64(i)/n, float64(i+1)/n-f))
	}

	sqrtN := math.Sqrt(n)
	return Fit{
		Test:      "kolmogorov-smirnov",
		Statistic: d,
		PValue:    kolmogorovSurvival((sqrtN + 0.12 + 0.11/sqrtN) * d),
	}
}

// kolmogorovSurvival is Q(λ) = 2 Σ (-1)^(k-1) exp(-2 k² λ²)
func kolmogorovSurvival(lambda float64) float64 {
	if lambda < 1e-3 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	return math.Min(math.Max(2*sum, 0), 1)
}

func chiSquareInt(samples []float64, min, max int) (Fit, error) {
	span := uint64(max - min)
	if span >= maxChiSquareBins {
		return Fit{}, errors.InvalidInput(fmt.Sprintf("range [%d, %d] is too wide for a chi-square test", min, max))
	}
	if span == 0 {
		return degenerate(samples, float64(min)), nil
	}

	bins := int(span) + 1
	observed := make([]float64, bins)
	for _, v := range samples {
		if v < float64(min) || v > float64(max) || v != math.Trunc(v) {
			return Fit{Test: "chi-square", Statistic: math.Inf(1), PValue: 0}, nil
		}
		observed[int(v)-min]++
	}

	expected := make([]float64, bins)
	for i := range expected {
		expected[i] = float64(len(samples)) / float64(bins)
	}
	chi2 := stat.ChiSquare(observed, expected)
	return Fit{
		Test:      "chi-square",
		Statistic: chi2,
		PValue:    distuv.ChiSquared{K: float64(bins - 1)}.Survival(chi2),
	}, nil
}

// degenerate checks a point mass: every sample must equal value exactly
func degenerate(samples []float64, value float64) Fit {
	for _, v := range samples {
		if v != value {
			return Fit{Test: "point-mass", Statistic: 1, PValue: 0}
		}
	}
	return Fit{Test: "point-mass", Statistic: 0, PValue: 1}
}
