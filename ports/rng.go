package ports

// VariatePort provides seeded random variates for simulation move proposals.
//
// Implementations own a single generator and are not safe for concurrent use.
// Callers that sample from several goroutines must give each goroutine its own
// instance or serialize access themselves.
type VariatePort interface {
	// UniformUnit returns a variate uniformly distributed over [0, 1].
	UniformUnit() float64

	// Int returns an integer uniformly distributed over [min, max] inclusive.
	// The caller must ensure min <= max.
	Int(min, max int) int

	// StdNormal returns a variate from the normal distribution with zero mean
	// and unit standard deviation.
	StdNormal() float64

	// Normal returns a variate from the normal distribution with the given mean
	// and standard deviation. The caller must ensure stdDev >= 0.
	Normal(mean, stdDev float64) float64

	// Reseed deterministically replaces the generator state.
	Reseed(seed uint32)
}
