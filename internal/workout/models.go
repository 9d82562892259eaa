// Package workout turns a lifter's training history, equipment, and daily
// readiness into a concrete prescription: what to lift today, and whether
// progress on a lift has stalled.
package workout

import (
	"fmt"
	"time"

	"github.com/liftwise/coach/internal/exercise"
)

// ProgressionType selects how a prescription structures its sets.
type ProgressionType string

const (
	// ProgressionTopSetBackoff runs one heavy top set followed by lighter
	// backoff sets at a percentage drop.
	ProgressionTopSetBackoff ProgressionType = "top_set_backoff"
	// ProgressionDouble holds weight while reps climb through a range,
	// then adds weight and resets reps.
	ProgressionDouble ProgressionType = "double_progression"
	// ProgressionStraightSets repeats the same weight and reps across all
	// working sets.
	ProgressionStraightSets ProgressionType = "straight_sets"
)

// PrescriptionSpec describes the progression rule for an exercise, not any
// specific day's numbers.
type PrescriptionSpec struct {
	Progression            ProgressionType `json:"progression"`
	RepRangeMin            int             `json:"rep_range_min"`
	RepRangeMax            int             `json:"rep_range_max"`
	RPECap                 float64         `json:"rpe_cap"`
	BackoffSets            int             `json:"backoff_sets"`
	BackoffRepRangeMin     int             `json:"backoff_rep_range_min"`
	BackoffRepRangeMax     int             `json:"backoff_rep_range_max"`
	BackoffLoadDropPercent float64         `json:"backoff_load_drop_percent"`
	WorkingSets            int             `json:"working_sets"`
}

// mustValidate panics on a contract violation. A reversed rep range is a
// bug in the calling collaborator, not a runtime data condition.
func (p PrescriptionSpec) mustValidate() {
	if p.RepRangeMin > p.RepRangeMax {
		panic(fmt.Sprintf("prescription rep range reversed: min %d > max %d", p.RepRangeMin, p.RepRangeMax))
	}
}

// EnergyLevel is the lifter's self-reported energy for the day.
type EnergyLevel string

const (
	EnergyLow  EnergyLevel = "low"
	EnergyOK   EnergyLevel = "ok"
	EnergyHigh EnergyLevel = "high"
)

// SorenessLevel is the lifter's self-reported soreness for the day.
type SorenessLevel string

const (
	SorenessNone SorenessLevel = "none"
	SorenessMild SorenessLevel = "mild"
	SorenessHigh SorenessLevel = "high"
)

// ReadinessState captures today's readiness check-in. It is immutable per
// plan generation.
type ReadinessState struct {
	Energy               EnergyLevel   `json:"energy"`
	Soreness             SorenessLevel `json:"soreness"`
	TimeAvailableMinutes int           `json:"time_available_minutes"`
}

// SessionHistoryEntry is an immutable snapshot of one past session's top
// set for a single exercise.
type SessionHistoryEntry struct {
	Date           time.Time `json:"date"`
	TopSetWeightKg float64   `json:"top_set_weight_kg"`
	TopSetReps     int       `json:"top_set_reps"`
	TopSetRPE      *float64  `json:"top_set_rpe,omitempty"`
	TotalSets      int       `json:"total_sets"`
	EstimatedOneRM float64   `json:"estimated_one_rm"`
}

// PlannedSet is one prescribed set specification. SetCount collapses
// identical consecutive sets.
type PlannedSet struct {
	WeightKg float64  `json:"weight_kg"`
	Reps     int      `json:"reps"`
	RPECap   *float64 `json:"rpe_cap,omitempty"`
	SetCount int      `json:"set_count"`
}

// ExercisePlan is the full prescription for one exercise on one day.
type ExercisePlan struct {
	ExerciseName string       `json:"exercise_name"`
	WarmupSets   []PlannedSet `json:"warmup_sets,omitempty"`
	TopSet       *PlannedSet  `json:"top_set,omitempty"`
	BackoffSets  []PlannedSet `json:"backoff_sets,omitempty"`
	WorkingSets  []PlannedSet `json:"working_sets,omitempty"`
}

// GeneratedPlan is a complete daily workout prescription. It is produced
// fresh on every call and never persisted by this package.
type GeneratedPlan struct {
	Exercises                []ExercisePlan `json:"exercises"`
	Adjustments              []string       `json:"adjustments,omitempty"`
	Reasoning                []string       `json:"reasoning,omitempty"`
	EstimatedDurationMinutes int            `json:"estimated_duration_minutes"`
}

// StallFixType classifies the recommended intervention for a stalled lift.
type StallFixType string

const (
	FixDeload     StallFixType = "deload"
	FixRepRange   StallFixType = "rep_range"
	FixVariation  StallFixType = "variation"
	FixWeightJump StallFixType = "weight_jump"
)

// StallResult is the outcome of a plateau analysis. Reason, SuggestedFix,
// FixType, and Details are only populated when IsStalled is true.
type StallResult struct {
	IsStalled    bool         `json:"is_stalled"`
	Reason       string       `json:"reason,omitempty"`
	SuggestedFix string       `json:"suggested_fix,omitempty"`
	FixType      StallFixType `json:"fix_type,omitempty"`
	Details      string       `json:"details,omitempty"`
}

// TemplateEntry prescribes one exercise within a workout template. The
// exercise reference is already resolved against the canonical library by
// the caller.
type TemplateEntry struct {
	Exercise     exercise.Exercise `json:"exercise"`
	Prescription PrescriptionSpec  `json:"prescription"`
	Optional     bool              `json:"optional"`
}

// Template is a reusable workout day definition.
type Template struct {
	Name    string          `json:"name"`
	Entries []TemplateEntry `json:"entries"`
}

// History holds recent session snapshots per exercise name, newest first.
type History map[string][]SessionHistoryEntry

// latest returns the most recent entry for an exercise, or nil without
// history.
func (h History) latest(exerciseName string) *SessionHistoryEntry {
	entries := h[exerciseName]
	if len(entries) == 0 {
		return nil
	}
	return &entries[0]
}

// GymProfile describes the equipment the lifter trains with.
type GymProfile struct {
	BarWeightKg float64              `json:"bar_weight_kg"`
	PlatesKg    []float64            `json:"plates_kg"`
	DumbbellsKg []float64            `json:"dumbbells_kg"`
	Equipment   []exercise.Equipment `json:"equipment"`
}

// DefaultGymProfile returns a fully equipped commercial gym.
func DefaultGymProfile() GymProfile {
	return GymProfile{
		BarWeightKg: 20,
		PlatesKg:    []float64{25, 20, 15, 10, 5, 2.5, 1.25},
		DumbbellsKg: []float64{2.5, 5, 7.5, 10, 12.5, 15, 17.5, 20, 22.5, 25, 27.5, 30, 32.5, 35, 40, 45, 50},
		Equipment: []exercise.Equipment{
			exercise.EquipmentBarbell, exercise.EquipmentRack, exercise.EquipmentBench,
			exercise.EquipmentDumbbell, exercise.EquipmentCable, exercise.EquipmentMachine,
			exercise.EquipmentPullupBar, exercise.EquipmentDipStation,
		},
	}
}
