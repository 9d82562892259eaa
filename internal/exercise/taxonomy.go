package exercise

// painSiteMuscles maps a reported pain site to the muscle groups it
// implicates. An exercise whose primary muscles intersect the site's groups
// is considered aggravating for that site.
var painSiteMuscles = map[string][]MuscleGroup{
	"shoulder":   {MuscleDelts, MuscleRearDelts, MuscleChest},
	"elbow":      {MuscleBiceps, MuscleTriceps, MuscleForearms},
	"wrist":      {MuscleForearms},
	"knee":       {MuscleQuads, MuscleCalves},
	"hip":        {MuscleGlutes, MuscleHams},
	"lower back": {MuscleErectors, MuscleHams, MuscleGlutes},
	"neck":       {MuscleUpperBack},
}

// musclesForPainSite returns the muscle groups implicated by a pain site,
// or nil for an unknown site.
func musclesForPainSite(site string) []MuscleGroup {
	return painSiteMuscles[normalize(site)]
}
