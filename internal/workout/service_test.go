package workout_test

import (
	"context"
	"testing"
	"time"

	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/ptr"
	"github.com/liftwise/coach/internal/sqlite"
	"github.com/liftwise/coach/internal/testhelpers"
	"github.com/liftwise/coach/internal/workout"
)

func newTestService(t *testing.T) (*workout.Service, context.Context) {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("Failed to close database: %v", closeErr)
		}
	})

	svc := workout.NewService(db, logger, workout.DefaultGymProfile())
	if err = svc.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize service: %v", err)
	}
	return svc, ctx
}

func squatPrescription() workout.PrescriptionSpec {
	return workout.PrescriptionSpec{
		Progression:            workout.ProgressionTopSetBackoff,
		RepRangeMin:            5,
		RepRangeMax:            8,
		RPECap:                 8,
		BackoffSets:            3,
		BackoffRepRangeMin:     6,
		BackoffRepRangeMax:     8,
		BackoffLoadDropPercent: 10,
	}
}

func TestService_MatchAndInfo(t *testing.T) {
	svc, ctx := newTestService(t)

	matched, err := svc.MatchExercise(ctx, "rdl")
	if err != nil {
		t.Fatalf("MatchExercise(rdl) failed: %v", err)
	}
	if matched.Name != "Romanian Deadlift" {
		t.Errorf("MatchExercise(rdl) = %q, want Romanian Deadlift", matched.Name)
	}

	info, html, err := svc.ExerciseInfo(ctx, "romanian deadlift")
	if err != nil {
		t.Fatalf("ExerciseInfo failed: %v", err)
	}
	if info.Pattern != exercise.PatternHinge {
		t.Errorf("pattern = %q, want hinge", info.Pattern)
	}
	if html == "" {
		t.Error("expected rendered HTML description")
	}

	if _, err = svc.MatchExercise(ctx, "underwater basket weaving"); !errors.Is(err, workout.ErrUnknownExercise) {
		t.Errorf("expected ErrUnknownExercise, got %v", err)
	}
}

func TestService_RecordSessionFillsDerivedFields(t *testing.T) {
	svc, ctx := newTestService(t)

	rec, err := svc.RecordSession(ctx, workout.SessionRecord{
		ExerciseName:   "squat",
		Date:           time.Date(2026, 8, 20, 17, 0, 0, 0, time.UTC),
		TopSetWeightKg: 100,
		TopSetReps:     5,
		TopSetRPE:      ptr.Ref(8.0),
		TotalSets:      5,
	})
	if err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected a generated session ID")
	}
	if rec.ExerciseName != "Squat" {
		t.Errorf("exercise name = %q, want canonical Squat", rec.ExerciseName)
	}
	// Epley: 100 * (1 + 5/30).
	if rec.EstimatedOneRM < 116.6 || rec.EstimatedOneRM > 116.7 {
		t.Errorf("estimated 1RM = %.2f, want ~116.67", rec.EstimatedOneRM)
	}

	history, err := svc.History(ctx, []string{"Squat"})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history["Squat"]) != 1 {
		t.Fatalf("history length = %d, want 1", len(history["Squat"]))
	}
}

func TestService_HistoryNewestFirst(t *testing.T) {
	svc, ctx := newTestService(t)

	base := time.Date(2026, 8, 1, 17, 0, 0, 0, time.UTC)
	for i, weight := range []float64{100, 102.5, 105} {
		_, err := svc.RecordSession(ctx, workout.SessionRecord{
			ExerciseName:   "Squat",
			Date:           base.AddDate(0, 0, i*3),
			TopSetWeightKg: weight,
			TopSetReps:     5,
			TotalSets:      5,
		})
		if err != nil {
			t.Fatalf("RecordSession failed: %v", err)
		}
	}

	history, err := svc.History(ctx, []string{"Squat"})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	entries := history["Squat"]
	if len(entries) != 3 {
		t.Fatalf("history length = %d, want 3", len(entries))
	}
	if entries[0].TopSetWeightKg != 105 || entries[2].TopSetWeightKg != 100 {
		t.Errorf("history not newest first: %+v", entries)
	}
}

func TestService_GeneratePlanProgressesFromHistory(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.RecordSession(ctx, workout.SessionRecord{
		ExerciseName:   "Squat",
		Date:           time.Date(2026, 8, 20, 17, 0, 0, 0, time.UTC),
		TopSetWeightKg: 100,
		TopSetReps:     8,
		TopSetRPE:      ptr.Ref(7.5),
		TotalSets:      5,
	})
	if err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	response, err := svc.GeneratePlan(ctx, workout.PlanRequest{
		Entries: []workout.PlanRequestEntry{
			{Exercise: "squat", Prescription: squatPrescription()},
		},
		Readiness: workout.ReadinessState{Energy: workout.EnergyOK, Soreness: workout.SorenessNone},
	})
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if len(response.Plan.Exercises) != 1 {
		t.Fatalf("plan exercises = %d, want 1", len(response.Plan.Exercises))
	}
	top := response.Plan.Exercises[0].TopSet
	if top == nil || top.WeightKg != 102.5 {
		t.Errorf("top set = %+v, want 102.5kg after topping the rep range", top)
	}
}

func TestService_GeneratePlanSubstitutesBlockedExercise(t *testing.T) {
	svc, ctx := newTestService(t)

	response, err := svc.GeneratePlan(ctx, workout.PlanRequest{
		Entries: []workout.PlanRequestEntry{
			{Exercise: "Bench Press", Prescription: workout.PrescriptionSpec{
				Progression: workout.ProgressionStraightSets,
				RepRangeMin: 8,
				RepRangeMax: 12,
				RPECap:      8,
				WorkingSets: 3,
			}},
		},
		Readiness: workout.ReadinessState{Energy: workout.EnergyOK, Soreness: workout.SorenessNone},
		Equipment: []exercise.Equipment{exercise.EquipmentPullupBar},
	})
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if len(response.Substitutions) != 1 {
		t.Fatalf("substitutions = %+v, want exactly one", response.Substitutions)
	}
	sub := response.Substitutions[0]
	if sub.Original.Name != "Bench Press" || sub.Reason != exercise.ReasonEquipmentMissing {
		t.Errorf("substitution = %+v, want Bench Press swapped for missing equipment", sub)
	}
	if response.Plan.Exercises[0].ExerciseName != sub.Substitute.Name {
		t.Errorf("plan uses %q, want substitute %q",
			response.Plan.Exercises[0].ExerciseName, sub.Substitute.Name)
	}
}

func TestService_AnalyzeExerciseDetectsStall(t *testing.T) {
	svc, ctx := newTestService(t)

	base := time.Date(2026, 8, 1, 17, 0, 0, 0, time.UTC)
	for i, rpe := range []float64{9.5, 9.0, 9.5} {
		_, err := svc.RecordSession(ctx, workout.SessionRecord{
			ExerciseName:   "Squat",
			Date:           base.AddDate(0, 0, i*3),
			TopSetWeightKg: 100,
			TopSetReps:     5,
			TopSetRPE:      ptr.Ref(rpe),
			TotalSets:      5,
		})
		if err != nil {
			t.Fatalf("RecordSession failed: %v", err)
		}
	}

	result, err := svc.AnalyzeExercise(ctx, "squat", squatPrescription())
	if err != nil {
		t.Fatalf("AnalyzeExercise failed: %v", err)
	}
	if !result.IsStalled || result.FixType != workout.FixDeload {
		t.Errorf("result = %+v, want a deload recommendation", result)
	}
}

func TestService_AnalyzeExerciseNeedsHistory(t *testing.T) {
	svc, ctx := newTestService(t)

	result, err := svc.AnalyzeExercise(ctx, "Squat", squatPrescription())
	if err != nil {
		t.Fatalf("AnalyzeExercise failed: %v", err)
	}
	if result.IsStalled {
		t.Errorf("no history classified as stalled: %+v", result)
	}
}
