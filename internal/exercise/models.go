// Package exercise defines the canonical exercise library and the logic
// that reconciles free-text names and equipment constraints against it:
// multi-stage fuzzy matching and equipment/pain-aware substitution.
package exercise

// MovementPattern classifies the fundamental motion of an exercise.
type MovementPattern string

const (
	PatternSquat          MovementPattern = "squat"
	PatternHinge          MovementPattern = "hinge"
	PatternHorizontalPush MovementPattern = "horizontal_push"
	PatternHorizontalPull MovementPattern = "horizontal_pull"
	PatternVerticalPush   MovementPattern = "vertical_push"
	PatternVerticalPull   MovementPattern = "vertical_pull"
	PatternLunge          MovementPattern = "lunge"
	PatternCarry          MovementPattern = "carry"
	PatternCore           MovementPattern = "core"
	PatternIsolation      MovementPattern = "isolation"
)

// MuscleGroup names a trainable muscle group.
type MuscleGroup string

const (
	MuscleQuads     MuscleGroup = "quads"
	MuscleHams      MuscleGroup = "hamstrings"
	MuscleGlutes    MuscleGroup = "glutes"
	MuscleCalves    MuscleGroup = "calves"
	MuscleChest     MuscleGroup = "chest"
	MuscleLats      MuscleGroup = "lats"
	MuscleUpperBack MuscleGroup = "upper_back"
	MuscleDelts     MuscleGroup = "delts"
	MuscleRearDelts MuscleGroup = "rear_delts"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleForearms  MuscleGroup = "forearms"
	MuscleCore      MuscleGroup = "core"
	MuscleErectors  MuscleGroup = "spinal_erectors"
)

// Equipment names a piece of gym equipment an exercise depends on.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentRack       Equipment = "rack"
	EquipmentBench      Equipment = "bench"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentPullupBar  Equipment = "pullup_bar"
	EquipmentDipStation Equipment = "dip_station"
)

// Exercise is a read-only entry in the canonical exercise library.
// An exercise with no required equipment is bodyweight-only.
type Exercise struct {
	Name                string            `json:"name"`
	Pattern             MovementPattern   `json:"movement_pattern"`
	PrimaryMuscles      []MuscleGroup     `json:"primary_muscles"`
	SecondaryMuscles    []MuscleGroup     `json:"secondary_muscles"`
	EquipmentRequired   []Equipment       `json:"equipment_required"`
	DescriptionMarkdown string            `json:"description_markdown,omitempty"`
}

// IsBodyweight reports whether the exercise needs no equipment at all.
func (e Exercise) IsBodyweight() bool {
	return len(e.EquipmentRequired) == 0
}

// IsCompound reports whether the exercise works multiple primary muscle
// groups at once.
func (e Exercise) IsCompound() bool {
	return len(e.PrimaryMuscles) >= 2
}

// UsesEquipment reports whether the exercise requires the given equipment.
func (e Exercise) UsesEquipment(eq Equipment) bool {
	for _, required := range e.EquipmentRequired {
		if required == eq {
			return true
		}
	}
	return false
}

// PainFlag marks a body site, and optionally a specific exercise, that is
// currently aggravated and should be trained around.
type PainFlag struct {
	// Site is a body part such as "shoulder" or "knee". It maps to the
	// muscle groups it implicates via the pain taxonomy.
	Site string `json:"site"`
	// Exercise optionally names a single exercise to avoid regardless of
	// which muscles it works.
	Exercise string `json:"exercise,omitempty"`
}

// SubstitutionReason explains why an exercise had to be replaced.
type SubstitutionReason string

const (
	ReasonEquipmentMissing SubstitutionReason = "equipment_missing"
	ReasonPainFlag         SubstitutionReason = "pain_flag"
	ReasonTimeConstraint   SubstitutionReason = "time_constraint"
	ReasonUserPreference   SubstitutionReason = "user_preference"
)

// Substitution records a resolved exercise swap.
type Substitution struct {
	Original   Exercise           `json:"original"`
	Substitute Exercise           `json:"substitute"`
	Reason     SubstitutionReason `json:"reason"`
}
