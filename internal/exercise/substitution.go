package exercise

import "sort"

// Substitute scoring weights. Primary-muscle overlap dominates, a shared
// movement pattern counts more than secondary overlap.
const (
	primaryMuscleWeight   = 3
	patternMatchWeight    = 2
	secondaryMuscleWeight = 1
)

// ScoredSubstitute pairs a candidate replacement with its similarity score.
type ScoredSubstitute struct {
	Exercise Exercise `json:"exercise"`
	Score    int      `json:"score"`
}

// FindSubstitutes returns up to limit alternatives for the named exercise,
// best first. Candidates must share the movement pattern or a primary
// muscle with the original, be performable with the available equipment,
// and not be implicated by an active pain flag. An unknown exercise name
// returns an empty result.
func FindSubstitutes(
	exerciseName string,
	availableEquipment []Equipment,
	library []Exercise,
	painFlags []PainFlag,
	limit int,
) []ScoredSubstitute {
	source := lookupByName(exerciseName, library)
	if source == nil || limit <= 0 {
		return nil
	}

	var scored []ScoredSubstitute
	for _, candidate := range library {
		if candidate.Name == source.Name {
			continue
		}
		if !sharesPatternOrPrimary(*source, candidate) {
			continue
		}
		if !equipmentAvailable(candidate, availableEquipment) {
			continue
		}
		if implicatedByPain(candidate, painFlags) {
			continue
		}
		scored = append(scored, ScoredSubstitute{
			Exercise: candidate,
			Score:    similarityScore(*source, candidate),
		})
	}

	// Stable sort keeps library order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// BestSubstitute returns the single highest-scoring substitute, or nil
// when no candidate survives the filters.
func BestSubstitute(
	exerciseName string,
	availableEquipment []Equipment,
	library []Exercise,
	painFlags []PainFlag,
) *Exercise {
	subs := FindSubstitutes(exerciseName, availableEquipment, library, painFlags, 1)
	if len(subs) == 0 {
		return nil
	}
	return &subs[0].Exercise
}

// NeedsSubstitution reports whether the exercise cannot be performed as
// prescribed and why. Bodyweight exercises never need equipment
// substitution.
func NeedsSubstitution(e Exercise, availableEquipment []Equipment, painFlags []PainFlag) (SubstitutionReason, bool) {
	if !e.IsBodyweight() && !equipmentAvailable(e, availableEquipment) {
		return ReasonEquipmentMissing, true
	}
	if implicatedByPain(e, painFlags) {
		return ReasonPainFlag, true
	}
	return "", false
}

func lookupByName(name string, library []Exercise) *Exercise {
	for i := range library {
		if normalize(library[i].Name) == normalize(name) {
			return &library[i]
		}
	}
	return nil
}

func sharesPatternOrPrimary(source, candidate Exercise) bool {
	if candidate.Pattern == source.Pattern {
		return true
	}
	return countMuscleOverlap(source.PrimaryMuscles, candidate.PrimaryMuscles) > 0
}

// equipmentAvailable reports whether every required piece of equipment is
// in the available set.
func equipmentAvailable(e Exercise, available []Equipment) bool {
	for _, required := range e.EquipmentRequired {
		found := false
		for _, have := range available {
			if have == required {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// implicatedByPain reports whether an active pain flag rules the exercise
// out, either by naming it directly or by implicating one of its primary
// muscle groups.
func implicatedByPain(e Exercise, painFlags []PainFlag) bool {
	for _, flag := range painFlags {
		if flag.Exercise != "" && normalize(flag.Exercise) == normalize(e.Name) {
			return true
		}
		if countMuscleOverlap(e.PrimaryMuscles, musclesForPainSite(flag.Site)) > 0 {
			return true
		}
	}
	return false
}

func similarityScore(source, candidate Exercise) int {
	score := primaryMuscleWeight * countMuscleOverlap(source.PrimaryMuscles, candidate.PrimaryMuscles)
	score += secondaryMuscleWeight * countMuscleOverlap(source.SecondaryMuscles, candidate.SecondaryMuscles)
	if source.Pattern == candidate.Pattern {
		score += patternMatchWeight
	}
	return score
}

func countMuscleOverlap(a, b []MuscleGroup) int {
	overlap := 0
	for _, muscle := range a {
		for _, other := range b {
			if muscle == other {
				overlap++
				break
			}
		}
	}
	return overlap
}
