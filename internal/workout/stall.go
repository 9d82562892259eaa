package workout

import (
	"fmt"

	"github.com/liftwise/coach/internal/plates"
	"github.com/liftwise/coach/internal/strength"
)

// StallThresholds holds the heuristic constants behind plateau
// classification. The defaults are deliberately preserved from long use
// rather than re-derived; override individual fields to tune.
type StallThresholds struct {
	// MinSessions is how much history an analysis needs before it will
	// call anything a stall.
	MinSessions int
	// E1RMTolerancePercent is the band within which estimated 1RM counts
	// as flat.
	E1RMTolerancePercent float64
	// DeloadRPE is the average RPE at which a flat lift is grinding hard
	// enough to warrant a deload.
	DeloadRPE float64
	// DeloadDropPercent is the suggested weight reduction for a deload.
	DeloadDropPercent float64
	// LowRepCeiling marks rep counts low enough to suggest widening the
	// rep range.
	LowRepCeiling int
	// HighRepFloor marks rep counts high enough to suggest forcing a
	// weight jump.
	HighRepFloor int
}

// DefaultStallThresholds are the stock heuristics.
var DefaultStallThresholds = StallThresholds{
	MinSessions:          3,
	E1RMTolerancePercent: 1.0,
	DeloadRPE:            9.0,
	DeloadDropPercent:    9.0,
	LowRepCeiling:        4,
	HighRepFloor:         10,
}

// AnalyzeStall classifies recent performance on one exercise using the
// default thresholds. Sessions are ordered newest first.
func AnalyzeStall(exerciseName string, lastSessions []SessionHistoryEntry, rx PrescriptionSpec) StallResult {
	return DefaultStallThresholds.Analyze(exerciseName, lastSessions, rx)
}

// Analyze classifies recent performance on one exercise. With fewer than
// MinSessions entries the lift is never considered stalled.
func (t StallThresholds) Analyze(
	exerciseName string,
	lastSessions []SessionHistoryEntry,
	rx PrescriptionSpec,
) StallResult {
	rx.mustValidate()
	if len(lastSessions) < t.MinSessions {
		return StallResult{IsStalled: false}
	}

	newest := lastSessions[0]
	oldest := lastSessions[len(lastSessions)-1]
	newestE1RM := strength.Estimate(newest.TopSetWeightKg, newest.TopSetReps)
	oldestE1RM := strength.Estimate(oldest.TopSetWeightKg, oldest.TopSetReps)
	tolerance := oldestE1RM * t.E1RMTolerancePercent / 100

	// Progressing: estimated 1RM trending up, or reps climbing at a
	// constant weight.
	if newestE1RM > oldestE1RM+tolerance {
		return StallResult{IsStalled: false}
	}
	if constantWeight(lastSessions) && newest.TopSetReps > oldest.TopSetReps {
		return StallResult{IsStalled: false}
	}

	// Regressing: estimated 1RM trending down.
	if newestE1RM < oldestE1RM-tolerance {
		return StallResult{
			IsStalled: true,
			Reason:    "regressing performance",
			SuggestedFix: fmt.Sprintf("Estimated 1RM dropped from %.1fkg to %.1fkg; check recovery before changing the program",
				oldestE1RM, newestE1RM),
			Details: fmt.Sprintf("e1RM %.1fkg -> %.1fkg over %d sessions", oldestE1RM, newestE1RM, len(lastSessions)),
		}
	}

	// Flat within tolerance: pick the intervention.
	return t.classifyFlatStall(exerciseName, lastSessions, newest)
}

// classifyFlatStall decides the fix for a lift whose estimated 1RM has
// gone flat.
func (t StallThresholds) classifyFlatStall(
	exerciseName string,
	lastSessions []SessionHistoryEntry,
	newest SessionHistoryEntry,
) StallResult {
	result := StallResult{
		IsStalled: true,
		Reason:    fmt.Sprintf("no e1RM progress across %d sessions", len(lastSessions)),
	}

	if avg, ok := averageRPE(lastSessions); ok && avg >= t.DeloadRPE {
		deloadWeight := plates.NearestLoadable(
			newest.TopSetWeightKg*(1-t.DeloadDropPercent/100),
			plates.DefaultBarWeightKg, plates.StandardPlatesKg)
		result.FixType = FixDeload
		result.SuggestedFix = fmt.Sprintf("Deload %s to about %.1fkg and build back up", exerciseName, deloadWeight)
		result.Details = fmt.Sprintf("average RPE %.1f at %.1fkg; target ~%.1fkg (-%.0f%%)",
			avg, newest.TopSetWeightKg, deloadWeight, t.DeloadDropPercent)
		return result
	}

	switch {
	case newest.TopSetReps <= t.LowRepCeiling:
		result.FixType = FixRepRange
		result.SuggestedFix = fmt.Sprintf("Move %s to a higher rep range (6-8) at a lighter weight", exerciseName)
		result.Details = fmt.Sprintf("stuck at %d reps; widen range to 6-8", newest.TopSetReps)
	case newest.TopSetReps >= t.HighRepFloor:
		result.FixType = FixWeightJump
		jump := newest.TopSetWeightKg + StandardWeightIncrementKg
		result.SuggestedFix = fmt.Sprintf("Force a weight increase on %s to %.1fkg", exerciseName, jump)
		result.Details = fmt.Sprintf("%d stable reps at %.1fkg; jump to %.1fkg",
			newest.TopSetReps, newest.TopSetWeightKg, jump)
	default:
		result.FixType = FixVariation
		result.SuggestedFix = fmt.Sprintf("Switch %s for a close variation for a few weeks", exerciseName)
		result.Details = fmt.Sprintf("%d reps at %.1fkg with no progress; rotate the movement",
			newest.TopSetReps, newest.TopSetWeightKg)
	}
	return result
}

// constantWeight reports whether every session used the same top-set
// weight.
func constantWeight(sessions []SessionHistoryEntry) bool {
	for _, s := range sessions[1:] {
		if s.TopSetWeightKg != sessions[0].TopSetWeightKg {
			return false
		}
	}
	return true
}

// averageRPE averages the recorded RPEs, ignoring sessions without one.
func averageRPE(sessions []SessionHistoryEntry) (float64, bool) {
	sum := 0.0
	count := 0
	for _, s := range sessions {
		if s.TopSetRPE != nil {
			sum += *s.TopSetRPE
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
