package plates

// StandardDumbbellsKg is a typical fixed-dumbbell rack in ascending order.
var StandardDumbbellsKg = []float64{
	2.5, 5, 7.5, 10, 12.5, 15, 17.5, 20, 22.5, 25, 27.5, 30, 32.5, 35, 40, 45, 50,
}

// NearestDumbbell returns the dumbbell from the set closest to the target
// weight by absolute distance. Ties resolve toward the heavier option.
// An empty set returns 0.
func NearestDumbbell(weightKg float64, setKg []float64) float64 {
	if len(setKg) == 0 {
		return 0
	}
	best := setKg[0]
	bestDistance := distance(weightKg, best)
	for _, d := range setKg[1:] {
		dist := distance(weightKg, d)
		if dist < bestDistance || (dist == bestDistance && d > best) {
			best = d
			bestDistance = dist
		}
	}
	return best
}

// NextDumbbellUp returns the lightest dumbbell strictly heavier than from,
// or nil when from is at or beyond the top of the set.
func NextDumbbellUp(fromKg float64, setKg []float64) *float64 {
	var next *float64
	for _, d := range setKg {
		if d > fromKg && (next == nil || d < *next) {
			v := d
			next = &v
		}
	}
	return next
}

// NextDumbbellDown returns the heaviest dumbbell strictly lighter than
// from, or nil when from is at or below the bottom of the set.
func NextDumbbellDown(fromKg float64, setKg []float64) *float64 {
	var next *float64
	for _, d := range setKg {
		if d < fromKg && (next == nil || d > *next) {
			v := d
			next = &v
		}
	}
	return next
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
