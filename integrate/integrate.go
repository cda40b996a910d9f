// Package integrate implements the numeric quadrature kernels used for
// area-under-the-curve calculations. All functions operate on two aligned
// slices, a time slice and a concentration slice, and fold left to right so
// results are reproducible bit-for-bit across runs.
//
// Preconditions are the caller's responsibility: both slices must have the
// same length and the time slice must be non-decreasing. None of the kernels
// validate their input. A NaN observation propagates through the sum, and a
// negative time delta produces a signed area per the trapezoid formula. Use
// pkdataset.NewProfile to get inputs that already satisfy these contracts.
package integrate

import "math"

// Trapezoid computes the area under the piecewise-linear curve defined by
// (t[i], c[i]) samples using the trapezoidal rule. Slices of length 0 or 1
// have no interval to integrate and return 0.
func Trapezoid(t, c []float64) float64 {
	acc := 0.0
	for i := 0; i+1 < len(t) && i+1 < len(c); i++ {
		acc += (c[i] + c[i+1]) * (t[i+1] - t[i]) / 2.0
	}
	return acc
}

// TrapezoidCumulative returns the running area at every sample point using
// the same left-to-right fold as Trapezoid. The first element is always 0
// and the last element equals Trapezoid(t, c). Returns nil for empty input.
func TrapezoidCumulative(t, c []float64) []float64 {
	if len(t) == 0 || len(c) == 0 {
		return nil
	}
	n := min(len(t), len(c))
	out := make([]float64, n)
	acc := 0.0
	for i := 0; i+1 < n; i++ {
		acc += (c[i] + c[i+1]) * (t[i+1] - t[i]) / 2.0
		out[i+1] = acc
	}
	return out
}

// TrapezoidLogDown computes the area using the linear-up/log-down rule. An
// interval where the concentration declines between two positive samples
// uses the log-trapezoid, (c1-c2)*dt/ln(c1/c2), and every other interval
// falls back to the linear trapezoid. This is the usual companion to the
// linear rule for post-peak PK data.
func TrapezoidLogDown(t, c []float64) float64 {
	acc := 0.0
	for i := 0; i+1 < len(t) && i+1 < len(c); i++ {
		dt := t[i+1] - t[i]
		c1, c2 := c[i], c[i+1]
		if c2 < c1 && c1 > 0 && c2 > 0 {
			acc += (c1 - c2) * dt / math.Log(c1/c2)
			continue
		}
		acc += (c1 + c2) * dt / 2.0
	}
	return acc
}

// MomentTrapezoid computes the area under the first-moment curve t*c(t)
// using the linear trapezoidal rule, accumulating in the same order as
// Trapezoid. This is the AUMC used for mean residence time.
func MomentTrapezoid(t, c []float64) float64 {
	acc := 0.0
	for i := 0; i+1 < len(t) && i+1 < len(c); i++ {
		acc += (t[i]*c[i] + t[i+1]*c[i+1]) * (t[i+1] - t[i]) / 2.0
	}
	return acc
}
