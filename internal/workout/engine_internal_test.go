package workout

import (
	"strings"
	"testing"

	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/plates"
)

func squatEntry(optional bool) TemplateEntry {
	return TemplateEntry{
		Exercise: exercise.Exercise{
			Name:              "Squat",
			Pattern:           exercise.PatternSquat,
			PrimaryMuscles:    []exercise.MuscleGroup{exercise.MuscleQuads, exercise.MuscleGlutes},
			EquipmentRequired: []exercise.Equipment{exercise.EquipmentBarbell, exercise.EquipmentRack},
		},
		Prescription: PrescriptionSpec{
			Progression:            ProgressionTopSetBackoff,
			RepRangeMin:            5,
			RepRangeMax:            8,
			RPECap:                 8,
			BackoffSets:            3,
			BackoffRepRangeMin:     6,
			BackoffRepRangeMax:     8,
			BackoffLoadDropPercent: 10,
		},
		Optional: optional,
	}
}

func curlEntry(optional bool) TemplateEntry {
	return TemplateEntry{
		Exercise: exercise.Exercise{
			Name:              "Barbell Curl",
			Pattern:           exercise.PatternIsolation,
			PrimaryMuscles:    []exercise.MuscleGroup{exercise.MuscleBiceps},
			EquipmentRequired: []exercise.Equipment{exercise.EquipmentBarbell},
		},
		Prescription: PrescriptionSpec{
			Progression: ProgressionDouble,
			RepRangeMin: 8,
			RepRangeMax: 12,
			RPECap:      9,
			WorkingSets: 3,
		},
		Optional: optional,
	}
}

func okReadiness() ReadinessState {
	return ReadinessState{Energy: EnergyOK, Soreness: SorenessNone}
}

func floatRef(f float64) *float64 { return &f }

func topSetOf(t *testing.T, plan GeneratedPlan, name string) PlannedSet {
	t.Helper()
	for _, ex := range plan.Exercises {
		if ex.ExerciseName == name {
			if ex.TopSet == nil {
				t.Fatalf("%s has no top set: %+v", name, ex)
			}
			return *ex.TopSet
		}
	}
	t.Fatalf("exercise %s not in plan %+v", name, plan)
	return PlannedSet{}
}

func TestGeneratePlanProgressionStates(t *testing.T) {
	tests := []struct {
		name       string
		latest     *SessionHistoryEntry
		wantWeight float64
		wantReps   int
	}{
		{
			name:       "no history starts at the bar",
			latest:     nil,
			wantWeight: plates.DefaultBarWeightKg,
			wantReps:   5,
		},
		{
			name:       "top of rep range under cap advances weight",
			latest:     &SessionHistoryEntry{TopSetWeightKg: 100, TopSetReps: 8, TopSetRPE: floatRef(7.5)},
			wantWeight: 102.5,
			wantReps:   5,
		},
		{
			name:       "mid range under cap adds a rep",
			latest:     &SessionHistoryEntry{TopSetWeightKg: 100, TopSetReps: 6, TopSetRPE: floatRef(7.5)},
			wantWeight: 100,
			wantReps:   7,
		},
		{
			name:       "missed rep range repeats the weight at min reps",
			latest:     &SessionHistoryEntry{TopSetWeightKg: 100, TopSetReps: 3, TopSetRPE: floatRef(9.5)},
			wantWeight: 100,
			wantReps:   5,
		},
		{
			name:       "over the RPE cap holds the day",
			latest:     &SessionHistoryEntry{TopSetWeightKg: 100, TopSetReps: 6, TopSetRPE: floatRef(9)},
			wantWeight: 100,
			wantReps:   6,
		},
		{
			name:       "missing RPE counts as under cap",
			latest:     &SessionHistoryEntry{TopSetWeightKg: 100, TopSetReps: 8},
			wantWeight: 102.5,
			wantReps:   5,
		},
	}

	planner := newPlanner(DefaultGymProfile())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := History{}
			if tt.latest != nil {
				history["Squat"] = []SessionHistoryEntry{*tt.latest}
			}
			plan := planner.GeneratePlan(Template{Entries: []TemplateEntry{squatEntry(false)}}, history, okReadiness())
			top := topSetOf(t, plan, "Squat")
			if top.WeightKg != tt.wantWeight || top.Reps != tt.wantReps {
				t.Errorf("top set = %.1fkg x %d, want %.1fkg x %d",
					top.WeightKg, top.Reps, tt.wantWeight, tt.wantReps)
			}
		})
	}
}

func TestGeneratePlanDeterministic(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	template := Template{Entries: []TemplateEntry{squatEntry(false), curlEntry(true)}}
	history := History{"Squat": {{TopSetWeightKg: 100, TopSetReps: 7, TopSetRPE: floatRef(8)}}}

	first := planner.GeneratePlan(template, history, okReadiness())
	second := planner.GeneratePlan(template, history, okReadiness())
	if len(first.Exercises) != len(second.Exercises) ||
		first.EstimatedDurationMinutes != second.EstimatedDurationMinutes {
		t.Errorf("identical inputs produced different plans: %+v vs %+v", first, second)
	}
}

func TestGeneratePlanLowEnergy(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	readiness := ReadinessState{Energy: EnergyLow, Soreness: SorenessNone}

	// Under-cap history: only the RPE cap drops.
	history := History{"Squat": {{TopSetWeightKg: 100, TopSetReps: 6, TopSetRPE: floatRef(7)}}}
	plan := planner.GeneratePlan(Template{Entries: []TemplateEntry{squatEntry(false)}}, history, readiness)
	top := topSetOf(t, plan, "Squat")
	if top.RPECap == nil || *top.RPECap != 7.5 {
		t.Errorf("low energy RPE cap = %v, want 7.5", top.RPECap)
	}
	if top.WeightKg != 100 {
		t.Errorf("low energy without missed reps changed weight to %.1f", top.WeightKg)
	}
	if !containsNote(plan.Adjustments, "Low energy") {
		t.Errorf("adjustments missing low energy note: %v", plan.Adjustments)
	}

	// Missed reps at high RPE additionally cuts the load about 5%.
	history = History{"Squat": {{TopSetWeightKg: 100, TopSetReps: 3, TopSetRPE: floatRef(9.5)}}}
	plan = planner.GeneratePlan(Template{Entries: []TemplateEntry{squatEntry(false)}}, history, readiness)
	top = topSetOf(t, plan, "Squat")
	if top.WeightKg != 95 {
		t.Errorf("low energy after missed reps = %.1fkg, want 95", top.WeightKg)
	}
	if !containsNote(plan.Adjustments, "reduced load") {
		t.Errorf("adjustments missing load cut note: %v", plan.Adjustments)
	}
}

func TestGeneratePlanHighEnergy(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	template := Template{Entries: []TemplateEntry{squatEntry(false)}}

	plan := planner.GeneratePlan(template, History{}, ReadinessState{Energy: EnergyHigh, Soreness: SorenessNone})
	top := topSetOf(t, plan, "Squat")
	if top.RPECap == nil || *top.RPECap != 8.5 {
		t.Errorf("high energy RPE cap = %v, want 8.5", top.RPECap)
	}

	// Soreness vetoes the boost.
	plan = planner.GeneratePlan(template, History{}, ReadinessState{Energy: EnergyHigh, Soreness: SorenessMild})
	top = topSetOf(t, plan, "Squat")
	if top.RPECap == nil || *top.RPECap != 8 {
		t.Errorf("high energy while sore RPE cap = %v, want 8", top.RPECap)
	}
}

func TestGeneratePlanHighSorenessDropsBackoffSet(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	template := Template{Entries: []TemplateEntry{squatEntry(false)}}

	plan := planner.GeneratePlan(template, History{}, ReadinessState{Energy: EnergyOK, Soreness: SorenessHigh})
	ex := plan.Exercises[0]
	if len(ex.BackoffSets) != 1 || ex.BackoffSets[0].SetCount != 2 {
		t.Errorf("backoff sets under high soreness = %+v, want SetCount 2", ex.BackoffSets)
	}
	if !containsNote(plan.Adjustments, "High soreness") {
		t.Errorf("adjustments missing soreness note: %v", plan.Adjustments)
	}
}

func TestGeneratePlanTimeBudget(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	template := Template{Entries: []TemplateEntry{squatEntry(false), curlEntry(true)}}
	history := History{"Squat": {{TopSetWeightKg: 100, TopSetReps: 8, TopSetRPE: floatRef(7)}}}

	readiness := ReadinessState{Energy: EnergyOK, Soreness: SorenessNone, TimeAvailableMinutes: 20}
	plan := planner.GeneratePlan(template, history, readiness)

	if len(plan.Exercises) != 1 || plan.Exercises[0].ExerciseName != "Squat" {
		t.Fatalf("plan exercises = %+v, want only the required Squat", plan.Exercises)
	}
	if !containsNote(plan.Reasoning, "Skipped optional: Barbell Curl") {
		t.Errorf("reasoning = %v, want a skip entry for Barbell Curl", plan.Reasoning)
	}

	// Required exercises survive even when the budget cannot be met.
	readiness.TimeAvailableMinutes = 5
	plan = planner.GeneratePlan(template, history, readiness)
	if len(plan.Exercises) != 1 || plan.Exercises[0].ExerciseName != "Squat" {
		t.Errorf("required exercise dropped under impossible budget: %+v", plan.Exercises)
	}
}

func TestGeneratePlanWarmups(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	history := History{"Squat": {{TopSetWeightKg: 100, TopSetReps: 8, TopSetRPE: floatRef(7)}}}

	plan := planner.GeneratePlan(Template{Entries: []TemplateEntry{squatEntry(false)}}, history, okReadiness())
	ex := plan.Exercises[0]
	if len(ex.WarmupSets) == 0 {
		t.Fatal("expected warmup sets before a 102.5kg top set")
	}
	if ex.WarmupSets[0].WeightKg != plates.DefaultBarWeightKg {
		t.Errorf("first warmup = %.1fkg, want the empty bar", ex.WarmupSets[0].WeightKg)
	}
	prev := 0.0
	for _, w := range ex.WarmupSets {
		if w.WeightKg <= prev {
			t.Errorf("warmups not strictly ascending: %+v", ex.WarmupSets)
		}
		if w.WeightKg >= ex.TopSet.WeightKg {
			t.Errorf("warmup %.1fkg not below top set %.1fkg", w.WeightKg, ex.TopSet.WeightKg)
		}
		prev = w.WeightKg
	}
}

func TestGeneratePlanDuration(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	template := Template{Entries: []TemplateEntry{squatEntry(false), curlEntry(false)}}

	// Fresh lifters start at the bar, so neither lift warrants warmups:
	// squat is 4 compound sets at 4min, curl 3 isolation sets at 2.5min.
	plan := planner.GeneratePlan(template, History{}, okReadiness())
	if plan.EstimatedDurationMinutes != 24 {
		t.Errorf("estimated duration = %d minutes, want 24", plan.EstimatedDurationMinutes)
	}
}

func TestGeneratePlanBodyweight(t *testing.T) {
	planner := newPlanner(DefaultGymProfile())
	pushup := TemplateEntry{
		Exercise: exercise.Exercise{
			Name:           "Push-Up",
			Pattern:        exercise.PatternHorizontalPush,
			PrimaryMuscles: []exercise.MuscleGroup{exercise.MuscleChest, exercise.MuscleTriceps},
		},
		Prescription: PrescriptionSpec{
			Progression: ProgressionStraightSets,
			RepRangeMin: 10,
			RepRangeMax: 20,
			RPECap:      9,
			WorkingSets: 3,
		},
	}

	plan := planner.GeneratePlan(Template{Entries: []TemplateEntry{pushup}}, History{}, okReadiness())
	ex := plan.Exercises[0]
	if len(ex.WorkingSets) != 1 || ex.WorkingSets[0].WeightKg != 0 {
		t.Errorf("bodyweight working sets = %+v, want 0kg", ex.WorkingSets)
	}
	if len(ex.WarmupSets) != 0 {
		t.Errorf("bodyweight exercise got loaded warmups: %+v", ex.WarmupSets)
	}
}

func containsNote(notes []string, fragment string) bool {
	for _, n := range notes {
		if strings.Contains(n, fragment) {
			return true
		}
	}
	return false
}
