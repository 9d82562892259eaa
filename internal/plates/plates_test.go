package plates

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPerSide(t *testing.T) {
	tests := []struct {
		name     string
		targetKg float64
		barKg    float64
		want     []float64
	}{
		{name: "100kg is 25+15 per side", targetKg: 100, barKg: 20, want: []float64{25, 15}},
		{name: "bar only", targetKg: 20, barKg: 20, want: []float64{}},
		{name: "60kg", targetKg: 60, barKg: 20, want: []float64{20}},
		{name: "102.5kg", targetKg: 102.5, barKg: 20, want: []float64{25, 15, 1.25}},
		{name: "smallest increment", targetKg: 22.5, barKg: 20, want: []float64{1.25}},
		{name: "below bar weight", targetKg: 15, barKg: 20, want: nil},
		{name: "unreachable remainder", targetKg: 21, barKg: 20, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerSide(tt.targetKg, tt.barKg, StandardPlatesKg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PerSide(%v, %v) mismatch (-want +got):\n%s", tt.targetKg, tt.barKg, diff)
			}
		})
	}
}

// TestPerSideTotalInvariant verifies that whenever decomposition succeeds,
// the plates on both sides plus the bar reproduce the target weight.
func TestPerSideTotalInvariant(t *testing.T) {
	bar := DefaultBarWeightKg
	for target := bar; target <= 300; target += 2.5 {
		stack := PerSide(target, bar, StandardPlatesKg)
		if stack == nil {
			t.Errorf("PerSide(%v, %v) = nil, want loadable", target, bar)
			continue
		}
		sum := 0.0
		for _, p := range stack {
			sum += p
		}
		if total := bar + 2*sum; math.Abs(total-target) > 1e-6 {
			t.Errorf("bar + 2*sum(plates) = %v, want %v", total, target)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		platesKg []float64
		want     string
	}{
		{name: "empty stack", platesKg: nil, want: "Empty bar"},
		{name: "single plate", platesKg: []float64{25}, want: "25"},
		{name: "compact fractions", platesKg: []float64{25, 15, 1.25}, want: "25 + 15 + 1.25"},
		{name: "half plate", platesKg: []float64{2.5}, want: "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.platesKg); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.platesKg, got, tt.want)
			}
		})
	}
}

func TestLoadingInstruction(t *testing.T) {
	tests := []struct {
		name     string
		targetKg float64
		want     string
	}{
		{name: "loadable weight", targetKg: 100, want: "25 + 15 each side"},
		{name: "bar only", targetKg: 20, want: "Empty bar (20kg)"},
		{name: "unloadable weight", targetKg: 21, want: "Cannot load 21kg with available plates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoadingInstruction(tt.targetKg, DefaultBarWeightKg, StandardPlatesKg)
			if got != tt.want {
				t.Errorf("LoadingInstruction(%v) = %q, want %q", tt.targetKg, got, tt.want)
			}
		})
	}
}

func TestNearestLoadable(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		want     float64
	}{
		{name: "already loadable", weightKg: 100, want: 100},
		{name: "rounds down", weightKg: 101, want: 100},
		{name: "rounds up", weightKg: 101.5, want: 102.5},
		{name: "tie rounds up", weightKg: 101.25, want: 102.5},
		{name: "never below bar", weightKg: 10, want: 20},
		{name: "just above bar", weightKg: 20.5, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestLoadable(tt.weightKg, DefaultBarWeightKg, StandardPlatesKg)
			if got != tt.want {
				t.Errorf("NearestLoadable(%v) = %v, want %v", tt.weightKg, got, tt.want)
			}
		})
	}
}

// TestWarmupWeightsProperties checks the structural guarantees of the
// warmup ramp: strictly ascending, duplicate-free, all below the top set,
// and each weight independently loadable.
func TestWarmupWeightsProperties(t *testing.T) {
	bar := DefaultBarWeightKg
	for top := 25.0; top <= 250; top += 7.5 {
		ramp := WarmupWeights(top, bar)
		for i, w := range ramp {
			if w >= top {
				t.Errorf("WarmupWeights(%v): weight %v not below top set", top, w)
			}
			if i > 0 && ramp[i-1] >= w {
				t.Errorf("WarmupWeights(%v): not strictly ascending at %v", top, ramp)
			}
			if PerSide(w, bar, StandardPlatesKg) == nil {
				t.Errorf("WarmupWeights(%v): weight %v not loadable", top, w)
			}
		}
	}
}

func TestWarmupWeightsScaling(t *testing.T) {
	bar := DefaultBarWeightKg

	if ramp := WarmupWeights(25, bar); len(ramp) != 0 {
		t.Errorf("light top set should need no warmups, got %v", ramp)
	}
	if ramp := WarmupWeights(60, bar); len(ramp) < 2 || len(ramp) > 4 {
		t.Errorf("moderate top set should have 2-4 warmups, got %v", ramp)
	}
	moderate := WarmupWeights(70, bar)
	heavy := WarmupWeights(180, bar)
	if len(heavy) <= len(moderate) {
		t.Errorf("heavy top set should ramp longer: moderate %v, heavy %v", moderate, heavy)
	}
	if len(heavy) > 0 && heavy[0] != bar {
		t.Errorf("ramp should start at the bar, got %v", heavy)
	}
}
