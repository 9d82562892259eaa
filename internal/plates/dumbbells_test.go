package plates

import "testing"

func TestNearestDumbbell(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		want     float64
	}{
		{name: "exact match", weightKg: 20, want: 20},
		{name: "closest below", weightKg: 21, want: 20},
		{name: "closest above", weightKg: 24, want: 25},
		{name: "tie resolves heavier", weightKg: 21.25, want: 22.5},
		{name: "below range", weightKg: 1, want: 2.5},
		{name: "above range", weightKg: 80, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestDumbbell(tt.weightKg, StandardDumbbellsKg); got != tt.want {
				t.Errorf("NearestDumbbell(%v) = %v, want %v", tt.weightKg, got, tt.want)
			}
		})
	}

	if got := NearestDumbbell(20, nil); got != 0 {
		t.Errorf("NearestDumbbell with empty set = %v, want 0", got)
	}
}

func TestNextDumbbellUp(t *testing.T) {
	if got := NextDumbbellUp(20, StandardDumbbellsKg); got == nil || *got != 22.5 {
		t.Errorf("NextDumbbellUp(20) = %v, want 22.5", got)
	}
	if got := NextDumbbellUp(37.5, StandardDumbbellsKg); got == nil || *got != 40 {
		t.Errorf("NextDumbbellUp(37.5) = %v, want 40", got)
	}
	if got := NextDumbbellUp(50, StandardDumbbellsKg); got != nil {
		t.Errorf("NextDumbbellUp at top of set = %v, want nil", got)
	}
}

func TestNextDumbbellDown(t *testing.T) {
	if got := NextDumbbellDown(20, StandardDumbbellsKg); got == nil || *got != 17.5 {
		t.Errorf("NextDumbbellDown(20) = %v, want 17.5", got)
	}
	if got := NextDumbbellDown(2.5, StandardDumbbellsKg); got != nil {
		t.Errorf("NextDumbbellDown at bottom of set = %v, want nil", got)
	}
}
