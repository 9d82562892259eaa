// Package strength estimates one-repetition maximums from submaximal sets.
//
// All functions are pure and safe for concurrent use. Inputs that fall
// outside a formula's domain are clamped to a harmless result rather than
// reported as errors.
package strength

import "math"

// epleyRepFactor is the denominator in the Epley formula: each rep beyond
// the first adds 1/30 of the lifted weight to the estimate.
const epleyRepFactor = 30.0

// Brzycki formula constants.
const (
	brzyckiNumerator = 36.0
	brzyckiCeiling   = 37.0
)

// Estimate returns the estimated one-rep max using the Epley formula:
// weight * (1 + reps/30). A single rep returns the weight unchanged.
// Non-positive reps return 0.
func Estimate(weightKg float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	return weightKg * (1 + float64(reps)/epleyRepFactor)
}

// EstimateBrzycki returns the estimated one-rep max using the Brzycki
// formula: weight * 36 / (37 - reps). The formula has a singularity at
// 37 reps, so rep counts outside (0, 37) return the weight unchanged.
func EstimateBrzycki(weightKg float64, reps int) float64 {
	if reps <= 0 || reps >= int(brzyckiCeiling) {
		return weightKg
	}
	if reps == 1 {
		return weightKg
	}
	return weightKg * (brzyckiNumerator / (brzyckiCeiling - float64(reps)))
}

// WeightForReps inverts the Epley formula: the weight that, lifted for the
// given reps, produces the given one-rep max estimate. It is the exact
// algebraic inverse of Estimate, so Estimate(WeightForReps(x, r), r) == x
// for all r > 0. Non-positive reps return 0.
func WeightForReps(oneRM float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	if reps == 1 {
		return oneRM
	}
	return oneRM / (1 + float64(reps)/epleyRepFactor)
}

// PercentageOf1RM returns the weight as a percentage of the Epley-estimated
// one-rep max for the set. Zero weight returns 0.
func PercentageOf1RM(weightKg float64, reps int) float64 {
	if weightKg == 0 {
		return 0
	}
	oneRM := Estimate(weightKg, reps)
	if oneRM == 0 {
		return 0
	}
	return weightKg / oneRM * 100
}

// RepsAtPercentage returns how many reps are typically possible at the
// given percentage of one-rep max, floored to an integer with a minimum of
// one rep. Percentages outside (0, 100] return 1.
func RepsAtPercentage(percentage float64) int {
	if percentage <= 0 || percentage > 100 {
		return 1
	}
	// The epsilon absorbs float noise so that e.g. 75% floors to 10, not 9.
	reps := int(math.Floor(epleyRepFactor*(100/percentage-1) + 1e-9))
	if reps < 1 {
		return 1
	}
	return reps
}
