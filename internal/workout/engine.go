package workout

import (
	"fmt"

	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/plates"
)

// Progression model constants.
const (
	// Weight increments per equipment class.
	StandardWeightIncrementKg = 2.5
	DumbbellWeightIncrementKg = 2.0

	// Readiness adjustment factors.
	LowEnergyRPEDrop   = 0.5
	HighEnergyRPEBoost = 0.5
	LowEnergyWeightCut = 0.05
	HighRPEThreshold   = 9.0

	// Per-set duration estimates in minutes, including rest.
	CompoundSetMinutes  = 4.0
	IsolationSetMinutes = 2.5
	WarmupSetMinutes    = 1.5
)

// warmupRepLadder assigns reps to successive warmup sets, heaviest last.
var warmupRepLadder = []int{8, 5, 3, 2, 2, 1}

// progressionState is the per-exercise decision derived from the most
// recent session.
type progressionState int

const (
	stateNoHistory progressionState = iota
	stateAdvance
	stateMaintain
	stateRegress
	stateHold
)

// planner generates daily prescriptions for one gym profile.
type planner struct {
	gym GymProfile
}

// newPlanner constructs a plan generator for the given gym. The zero
// profile falls back to a standard barbell setup.
func newPlanner(gym GymProfile) *planner {
	if gym.BarWeightKg == 0 {
		gym.BarWeightKg = plates.DefaultBarWeightKg
	}
	if len(gym.PlatesKg) == 0 {
		gym.PlatesKg = plates.StandardPlatesKg
	}
	if len(gym.DumbbellsKg) == 0 {
		gym.DumbbellsKg = plates.StandardDumbbellsKg
	}
	return &planner{gym: gym}
}

// GeneratePlan produces today's full prescription from a template, the
// per-exercise session history (newest first), and the day's readiness.
// Identical inputs always produce identical plans.
func (p *planner) GeneratePlan(template Template, history History, readiness ReadinessState) GeneratedPlan {
	plan := GeneratedPlan{}

	type buildResult struct {
		entry    TemplateEntry
		plan     ExercisePlan
		minutes  float64
		included bool
	}

	built := make([]buildResult, 0, len(template.Entries))
	for _, entry := range template.Entries {
		entry.Prescription.mustValidate()
		exercisePlan, notes := p.buildExercisePlan(entry, history.latest(entry.Exercise.Name), readiness)
		plan.Adjustments = append(plan.Adjustments, notes...)
		built = append(built, buildResult{
			entry:    entry,
			plan:     exercisePlan,
			minutes:  estimateExerciseMinutes(entry.Exercise, exercisePlan),
			included: true,
		})
	}

	plan.Adjustments = append(plan.Adjustments, readinessAdjustmentNotes(readiness)...)

	// Time budgeting: drop optional exercises, last first, until the
	// session fits. Required exercises are never dropped.
	total := 0.0
	for _, b := range built {
		total += b.minutes
	}
	if readiness.TimeAvailableMinutes > 0 {
		for total > float64(readiness.TimeAvailableMinutes) {
			dropped := false
			for i := len(built) - 1; i >= 0; i-- {
				if built[i].included && built[i].entry.Optional {
					built[i].included = false
					total -= built[i].minutes
					plan.Reasoning = append(plan.Reasoning,
						fmt.Sprintf("Skipped optional: %s", built[i].entry.Exercise.Name))
					dropped = true
					break
				}
			}
			if !dropped {
				break
			}
		}
	}

	for _, b := range built {
		if b.included {
			plan.Exercises = append(plan.Exercises, b.plan)
		}
	}
	plan.EstimatedDurationMinutes = int(total + 0.5)
	return plan
}

// buildExercisePlan applies the progression state machine and readiness
// adjustments to a single template entry.
func (p *planner) buildExercisePlan(
	entry TemplateEntry,
	latest *SessionHistoryEntry,
	readiness ReadinessState,
) (ExercisePlan, []string) {
	rx := entry.Prescription
	dumbbell := entry.Exercise.UsesEquipment(exercise.EquipmentDumbbell)

	weight, reps := p.baseTarget(entry, latest)

	var notes []string
	rpeCap := rx.RPECap
	backoffSets := rx.BackoffSets

	// Readiness adjustments run after the base progression.
	switch readiness.Energy {
	case EnergyLow:
		rpeCap -= LowEnergyRPEDrop
		if weight > 0 && latest != nil && latest.TopSetRPE != nil && *latest.TopSetRPE >= HighRPEThreshold &&
			latest.TopSetReps < rx.RepRangeMin {
			weight = p.roundLoad(weight*(1-LowEnergyWeightCut), dumbbell)
			notes = append(notes, fmt.Sprintf("%s: reduced load ~5%% after missed reps at high RPE",
				entry.Exercise.Name))
		}
	case EnergyHigh:
		if readiness.Soreness == SorenessNone {
			rpeCap += HighEnergyRPEBoost
		}
	case EnergyOK:
	}
	if readiness.Soreness == SorenessHigh && backoffSets > 0 {
		backoffSets--
	}

	exercisePlan := ExercisePlan{ExerciseName: entry.Exercise.Name}
	switch rx.Progression {
	case ProgressionTopSetBackoff:
		exercisePlan.WarmupSets = p.warmupSets(weight, dumbbell)
		exercisePlan.TopSet = &PlannedSet{WeightKg: weight, Reps: reps, RPECap: &rpeCap, SetCount: 1}
		if backoffSets > 0 {
			backoffWeight := 0.0
			if weight > 0 {
				backoffWeight = p.roundLoad(weight*(1-rx.BackoffLoadDropPercent/100), dumbbell)
			}
			exercisePlan.BackoffSets = []PlannedSet{{
				WeightKg: backoffWeight,
				Reps:     rx.BackoffRepRangeMin,
				RPECap:   &rpeCap,
				SetCount: backoffSets,
			}}
		}
	case ProgressionDouble, ProgressionStraightSets:
		exercisePlan.WarmupSets = p.warmupSets(weight, dumbbell)
		workingSets := rx.WorkingSets
		if workingSets <= 0 {
			workingSets = 3
		}
		exercisePlan.WorkingSets = []PlannedSet{{
			WeightKg: weight,
			Reps:     reps,
			RPECap:   &rpeCap,
			SetCount: workingSets,
		}}
	}
	return exercisePlan, notes
}

// baseTarget resolves the progression state and returns today's target
// weight and reps before readiness adjustments.
func (p *planner) baseTarget(entry TemplateEntry, latest *SessionHistoryEntry) (float64, int) {
	rx := entry.Prescription
	dumbbell := entry.Exercise.UsesEquipment(exercise.EquipmentDumbbell)

	switch classifyProgression(latest, rx) {
	case stateNoHistory:
		if entry.Exercise.IsBodyweight() {
			return 0, rx.RepRangeMin
		}
		return p.startingWeight(dumbbell), rx.RepRangeMin
	case stateAdvance:
		if entry.Exercise.IsBodyweight() && latest.TopSetWeightKg == 0 {
			// Unloaded bodyweight work progresses by reps alone.
			return 0, rx.RepRangeMin
		}
		return p.incrementLoad(latest.TopSetWeightKg, dumbbell), rx.RepRangeMin
	case stateMaintain:
		reps := latest.TopSetReps + 1
		if reps > rx.RepRangeMax {
			reps = rx.RepRangeMax
		}
		return latest.TopSetWeightKg, reps
	case stateRegress:
		return latest.TopSetWeightKg, rx.RepRangeMin
	default: // stateHold: over the RPE cap, repeat the day.
		reps := latest.TopSetReps
		if reps < rx.RepRangeMin {
			reps = rx.RepRangeMin
		}
		if reps > rx.RepRangeMax {
			reps = rx.RepRangeMax
		}
		return latest.TopSetWeightKg, reps
	}
}

// classifyProgression picks the per-exercise state from the most recent
// session.
func classifyProgression(latest *SessionHistoryEntry, rx PrescriptionSpec) progressionState {
	if latest == nil {
		return stateNoHistory
	}
	underCap := latest.TopSetRPE == nil || *latest.TopSetRPE <= rx.RPECap
	switch {
	case latest.TopSetReps >= rx.RepRangeMax && underCap:
		return stateAdvance
	case latest.TopSetReps < rx.RepRangeMin:
		return stateRegress
	case underCap:
		return stateMaintain
	default:
		return stateHold
	}
}

// startingWeight is the default for an exercise with no history: the bar,
// or the lightest dumbbell.
func (p *planner) startingWeight(dumbbell bool) float64 {
	if dumbbell {
		if len(p.gym.DumbbellsKg) > 0 {
			lightest := p.gym.DumbbellsKg[0]
			for _, d := range p.gym.DumbbellsKg[1:] {
				if d < lightest {
					lightest = d
				}
			}
			return lightest
		}
		return DumbbellWeightIncrementKg
	}
	return p.gym.BarWeightKg
}

// incrementLoad applies the standard weight jump for the equipment class.
func (p *planner) incrementLoad(weightKg float64, dumbbell bool) float64 {
	if dumbbell {
		if next := plates.NextDumbbellUp(weightKg, p.gym.DumbbellsKg); next != nil {
			return *next
		}
		return weightKg + DumbbellWeightIncrementKg
	}
	return weightKg + StandardWeightIncrementKg
}

// roundLoad snaps a computed weight to something the gym can load.
func (p *planner) roundLoad(weightKg float64, dumbbell bool) float64 {
	if dumbbell {
		return plates.NearestDumbbell(weightKg, p.gym.DumbbellsKg)
	}
	return plates.NearestLoadable(weightKg, p.gym.BarWeightKg, p.gym.PlatesKg)
}

// warmupSets ramps up to the working weight. Barbell lifts get a plate
// ramp; dumbbell lifts get a single lighter warmup when the rack has one.
func (p *planner) warmupSets(workingWeightKg float64, dumbbell bool) []PlannedSet {
	if dumbbell {
		warmup := plates.NearestDumbbell(workingWeightKg/2, p.gym.DumbbellsKg)
		if warmup <= 0 || warmup >= workingWeightKg {
			return nil
		}
		return []PlannedSet{{WeightKg: warmup, Reps: 8, SetCount: 1}}
	}

	ramp := plates.WarmupWeights(workingWeightKg, p.gym.BarWeightKg)
	sets := make([]PlannedSet, 0, len(ramp))
	for i, w := range ramp {
		reps := warmupRepLadder[len(warmupRepLadder)-1]
		if i < len(warmupRepLadder) {
			reps = warmupRepLadder[i]
		}
		sets = append(sets, PlannedSet{WeightKg: w, Reps: reps, SetCount: 1})
	}
	return sets
}

// readinessAdjustmentNotes describes plan-wide readiness effects.
func readinessAdjustmentNotes(readiness ReadinessState) []string {
	var notes []string
	if readiness.Energy == EnergyLow {
		notes = append(notes, "Low energy: RPE caps reduced by 0.5")
	}
	if readiness.Energy == EnergyHigh && readiness.Soreness == SorenessNone {
		notes = append(notes, "High energy and no soreness: RPE caps raised by 0.5")
	}
	if readiness.Soreness == SorenessHigh {
		notes = append(notes, "High soreness: one backoff set dropped per exercise")
	}
	return notes
}

// estimateExerciseMinutes estimates the time cost of one exercise plan,
// differentiating compound and isolation work.
func estimateExerciseMinutes(ex exercise.Exercise, plan ExercisePlan) float64 {
	perSet := IsolationSetMinutes
	if ex.IsCompound() {
		perSet = CompoundSetMinutes
	}

	minutes := 0.0
	for _, s := range plan.WarmupSets {
		minutes += WarmupSetMinutes * float64(s.SetCount)
	}
	if plan.TopSet != nil {
		minutes += perSet * float64(plan.TopSet.SetCount)
	}
	for _, s := range plan.BackoffSets {
		minutes += perSet * float64(s.SetCount)
	}
	for _, s := range plan.WorkingSets {
		minutes += perSet * float64(s.SetCount)
	}
	return minutes
}
