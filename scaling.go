package nca

import "math"

// DefaultAllometricExponent is the customary exponent for scaling
// clearance-like parameters across body weights. Volume-like parameters
// scale with an exponent of 1.
const DefaultAllometricExponent = 0.75

// AllometricScale adjusts a parameter from a reference body weight to a
// subject's weight using value * (weight/refWeight)^exponent.
func AllometricScale(value, weight, refWeight, exponent float64) float64 {
	return value * math.Pow(weight/refWeight, exponent)
}

// KaFromHalfLife converts an absorption half-life in hours to the
// first-order absorption rate constant in 1/h.
func KaFromHalfLife(halfLife float64) float64 {
	return math.Ln2 / halfLife
}

// HalfLifeFromKa converts a first-order absorption rate constant in 1/h to
// the corresponding half-life in hours.
func HalfLifeFromKa(ka float64) float64 {
	return math.Ln2 / ka
}
