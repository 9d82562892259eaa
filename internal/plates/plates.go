// Package plates computes barbell and dumbbell loading: which plates to put
// on each side of a bar, how to round a target weight to something the gym
// can actually load, and how to ramp warmup weights up to a top set.
//
// Everything operates on immutable inputs and compiled-in denomination
// tables, so all functions are safe for concurrent use.
package plates

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultBarWeightKg is the weight of a standard olympic barbell.
const DefaultBarWeightKg = 20.0

// loadEpsilon absorbs float error when summing plate denominations.
const loadEpsilon = 1e-6

// StandardPlatesKg lists common gym plate denominations in descending
// order, which the greedy decomposition relies on.
var StandardPlatesKg = []float64{25, 20, 15, 10, 5, 2.5, 1.25}

// PerSide decomposes a target total weight into the plates to load on each
// side of the bar, heaviest first. It returns nil when the weight cannot be
// reached with the available denominations, and an empty non-nil slice when
// the bar alone is enough.
//
// The decomposition is greedy from the largest denomination down. For
// unusual plate sets a greedy descent can miss a combination an exhaustive
// search would find; see the package tests for the trade-off.
func PerSide(targetKg, barKg float64, availableKg []float64) []float64 {
	perSide := (targetKg - barKg) / 2
	if perSide < -loadEpsilon {
		return nil
	}

	stack := []float64{}
	remaining := perSide
	for _, denom := range sortedDescending(availableKg) {
		for remaining >= denom-loadEpsilon {
			stack = append(stack, denom)
			remaining -= denom
		}
	}
	if remaining > loadEpsilon {
		// Nonzero remainder after trying every denomination.
		return nil
	}
	return stack
}

// Format renders a per-side plate stack compactly, e.g. "25 + 15" or
// "Empty bar" for a bar with no plates.
func Format(platesKg []float64) string {
	if len(platesKg) == 0 {
		return "Empty bar"
	}
	parts := make([]string, len(platesKg))
	for i, p := range platesKg {
		parts[i] = strconv.FormatFloat(p, 'f', -1, 64)
	}
	return strings.Join(parts, " + ")
}

// LoadingInstruction describes how to load the bar for a target weight in a
// form suitable for display.
func LoadingInstruction(targetKg, barKg float64, availableKg []float64) string {
	stack := PerSide(targetKg, barKg, availableKg)
	if stack == nil {
		return fmt.Sprintf("Cannot load %skg with available plates", formatWeight(targetKg))
	}
	if len(stack) == 0 {
		return fmt.Sprintf("Empty bar (%skg)", formatWeight(barKg))
	}
	return fmt.Sprintf("%s each side", Format(stack))
}

// NearestLoadable snaps a weight to the closest total reachable with the
// smallest available plate on both sides. Ties round up, and the result is
// never below the bar weight.
func NearestLoadable(weightKg, barKg float64, availableKg []float64) float64 {
	if weightKg <= barKg {
		return barKg
	}
	smallest := smallestDenomination(availableKg)
	if smallest <= 0 {
		return barKg
	}
	increment := 2 * smallest
	steps := math.Floor((weightKg-barKg)/increment + 0.5)
	return barKg + steps*increment
}

// Warmup ramp sizing relative to bar weight.
const (
	warmupSkipRatio   = 1.5
	warmupLightRatio  = 2.5
	warmupMediumRatio = 4.0
	warmupHeavyRatio  = 6.0
)

// WarmupWeights produces an ascending ramp of loadable weights below the
// top set, starting at the bar. Light top sets get no warmups, moderate
// loads two to four, heavy loads more.
func WarmupWeights(topSetKg, barKg float64) []float64 {
	if topSetKg <= barKg*warmupSkipRatio {
		return nil
	}

	var steps int
	switch {
	case topSetKg < barKg*warmupLightRatio:
		steps = 2
	case topSetKg < barKg*warmupMediumRatio:
		steps = 3
	case topSetKg < barKg*warmupHeavyRatio:
		steps = 4
	default:
		steps = 5
	}

	ramp := make([]float64, 0, steps)
	span := topSetKg - barKg
	for i := range steps {
		target := barKg + span*float64(i)/float64(steps)
		w := NearestLoadable(target, barKg, StandardPlatesKg)
		if w >= topSetKg {
			continue
		}
		if len(ramp) > 0 && ramp[len(ramp)-1] >= w {
			continue
		}
		ramp = append(ramp, w)
	}
	return ramp
}

// sortedDescending returns a copy of denominations ordered heaviest first.
func sortedDescending(denominations []float64) []float64 {
	sorted := make([]float64, len(denominations))
	copy(sorted, denominations)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] > sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

func smallestDenomination(denominations []float64) float64 {
	smallest := 0.0
	for _, d := range denominations {
		if d > 0 && (smallest == 0 || d < smallest) {
			smallest = d
		}
	}
	return smallest
}

func formatWeight(weightKg float64) string {
	return strconv.FormatFloat(weightKg, 'f', -1, 64)
}
