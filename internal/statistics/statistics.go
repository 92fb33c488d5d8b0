package statistics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Accumulator tracks running moments of a stream of samples without storing
// the samples themselves. The zero value is ready to use.
type Accumulator struct {
	N     int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
}

// Add incorporates a sample
func (a *Accumulator) Add(x float64) {
	a.N++
	a.Sum += x
	a.SumSq += x * x
}

// AddN incorporates the same sample n times
func (a *Accumulator) AddN(x float64, n int) {
	if n <= 0 {
		return
	}
	a.N += n
	a.Sum += x * float64(n)
	a.SumSq += x * x * float64(n)
}

// Merge folds another accumulator into this one
func (a *Accumulator) Merge(other Accumulator) {
	a.N += other.N
	a.Sum += other.Sum
	a.SumSq += other.SumSq
}

// Mean returns the arithmetic mean of all samples
func (a *Accumulator) Mean() float64 {
	if a.N == 0 {
		return 0
	}
	return a.Sum / float64(a.N)
}

// Variance returns the sample variance of all samples
func (a *Accumulator) Variance() float64 {
	if a.N < 2 {
		return 0
	}
	mean := a.Mean()
	v := (a.SumSq - float64(a.N)*mean*mean) / float64(a.N-1)
	// Rounding can push a zero variance slightly negative
	if v < 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean
func (a *Accumulator) StdError() float64 {
	if a.N == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// using the t-distribution with N-1 degrees of freedom. With fewer than two
// samples the interval collapses onto the mean.
func (a *Accumulator) ConfidenceInterval95() (float64, float64) {
	mean := a.Mean()
	if a.N < 2 {
		return mean, mean
	}
	margin := CriticalValue95(a.N) * a.StdError()
	return mean - margin, mean + margin
}

// CriticalValue95 returns the two-tailed 95% t critical value for n samples
func CriticalValue95(n int) float64 {
	if n < 2 {
		return math.Inf(1)
	}
	tDist := distuv.StudentsT{
		Nu:    float64(n - 1),
		Mu:    0,
		Sigma: 1,
	}
	return tDist.Quantile(0.975)
}

// MeanAndStdDev returns the mean and sample standard deviation of values.
// The deviation is 0 for fewer than two values.
func MeanAndStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := stat.Mean(values, nil)
	if len(values) < 2 {
		return mean, 0
	}
	return mean, math.Sqrt(stat.Variance(values, nil))
}

// Validate checks that the accumulated moments are consistent
func (a *Accumulator) Validate() error {
	if a.N < 0 {
		return fmt.Errorf("invalid sample count: %d", a.N)
	}
	if a.SumSq < 0 {
		return fmt.Errorf("negative sum of squares: %f", a.SumSq)
	}
	if math.IsNaN(a.Sum) || math.IsInf(a.Sum, 0) {
		return fmt.Errorf("non-finite sum: %f", a.Sum)
	}
	return nil
}
