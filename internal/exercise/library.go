package exercise

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// DefaultLibrary returns the compiled-in canonical exercise library. The
// caller owns the returned slice and may filter or extend it; the entries
// themselves are value objects.
func DefaultLibrary() []Exercise {
	return []Exercise{
		{
			Name:                "Squat",
			Pattern:             PatternSquat,
			PrimaryMuscles:      []MuscleGroup{MuscleQuads, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleHams, MuscleErectors, MuscleCore},
			EquipmentRequired:   []Equipment{EquipmentBarbell, EquipmentRack},
			DescriptionMarkdown: "Barbell back squat. Brace, sit down between the hips, and drive up keeping the **bar over mid-foot**. Depth target is the hip crease below the knee.",
		},
		{
			Name:                "Front Squat",
			Pattern:             PatternSquat,
			PrimaryMuscles:      []MuscleGroup{MuscleQuads},
			SecondaryMuscles:    []MuscleGroup{MuscleGlutes, MuscleCore},
			EquipmentRequired:   []Equipment{EquipmentBarbell, EquipmentRack},
			DescriptionMarkdown: "Squat with the bar racked on the front delts. Elbows stay **high** throughout so the torso stays upright and the upper back takes the load.",
		},
		{
			Name:                "Leg Press",
			Pattern:             PatternSquat,
			PrimaryMuscles:      []MuscleGroup{MuscleQuads, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleHams},
			EquipmentRequired:   []Equipment{EquipmentMachine},
			DescriptionMarkdown: "Machine squat pattern. Lower under control until the knees near the chest without the lower back rolling off the pad, then press through the whole foot.",
		},
		{
			Name:                "Goblet Squat",
			Pattern:             PatternSquat,
			PrimaryMuscles:      []MuscleGroup{MuscleQuads, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleCore},
			EquipmentRequired:   []Equipment{EquipmentDumbbell},
			DescriptionMarkdown: "Squat holding one dumbbell at the chest. The counterweight keeps the torso upright, which makes it a natural entry point for the squat pattern.",
		},
		{
			Name:                "Deadlift",
			Pattern:             PatternHinge,
			PrimaryMuscles:      []MuscleGroup{MuscleHams, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleErectors, MuscleLats, MuscleForearms},
			EquipmentRequired:   []Equipment{EquipmentBarbell},
			DescriptionMarkdown: "Lift the bar from the floor to lockout by hinging at the hips. Set the back **flat**, take the slack out of the bar, and push the floor away.",
		},
		{
			Name:                "Romanian Deadlift",
			Pattern:             PatternHinge,
			PrimaryMuscles:      []MuscleGroup{MuscleHams, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleErectors},
			EquipmentRequired:   []Equipment{EquipmentBarbell},
			DescriptionMarkdown: "Hip hinge starting from the top. Push the hips back with a soft knee until the hamstrings stop the bar, usually around mid-shin, then stand up.",
		},
		{
			Name:                "Hip Thrust",
			Pattern:             PatternHinge,
			PrimaryMuscles:      []MuscleGroup{MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleHams},
			EquipmentRequired:   []Equipment{EquipmentBarbell, EquipmentBench},
			DescriptionMarkdown: "Shoulders on a bench, bar over the hips. Drive the hips to full extension and pause at the top with the chin tucked and ribs down.",
		},
		{
			Name:                "Bench Press",
			Pattern:             PatternHorizontalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleChest, MuscleTriceps},
			SecondaryMuscles:    []MuscleGroup{MuscleDelts},
			EquipmentRequired:   []Equipment{EquipmentBarbell, EquipmentBench, EquipmentRack},
			DescriptionMarkdown: "Barbell press from the chest while lying on a bench. Keep the shoulder blades **pinned**, touch near the sternum, and press back over the shoulders.",
		},
		{
			Name:                "Incline Bench Press",
			Pattern:             PatternHorizontalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleChest, MuscleDelts},
			SecondaryMuscles:    []MuscleGroup{MuscleTriceps},
			EquipmentRequired:   []Equipment{EquipmentBarbell, EquipmentBench, EquipmentRack},
			DescriptionMarkdown: "Bench press on a 30 to 45 degree incline, shifting emphasis to the upper chest and front delts. Touch higher on the chest than the flat press.",
		},
		{
			Name:                "Dumbbell Bench Press",
			Pattern:             PatternHorizontalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleChest, MuscleTriceps},
			SecondaryMuscles:    []MuscleGroup{MuscleDelts},
			EquipmentRequired:   []Equipment{EquipmentDumbbell, EquipmentBench},
			DescriptionMarkdown: "Bench press with a dumbbell in each hand. The free weights allow a deeper stretch and a natural wrist angle; kick the bells up from the knees to start.",
		},
		{
			Name:                "Push-Up",
			Pattern:             PatternHorizontalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleChest, MuscleTriceps},
			SecondaryMuscles:    []MuscleGroup{MuscleDelts, MuscleCore},
			EquipmentRequired:   nil,
			DescriptionMarkdown: "Bodyweight horizontal press. Hold a straight line from head to heels and lower until the chest nearly touches the floor. Elevate the hands to scale down.",
		},
		{
			Name:                "Overhead Press",
			Pattern:             PatternVerticalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleDelts, MuscleTriceps},
			SecondaryMuscles:    []MuscleGroup{MuscleCore},
			EquipmentRequired:   []Equipment{EquipmentBarbell, EquipmentRack},
			DescriptionMarkdown: "Standing barbell press from the shoulders to overhead lockout. Squeeze the glutes to keep the ribs down and finish with the bar over the mid-foot.",
		},
		{
			Name:                "Dumbbell Shoulder Press",
			Pattern:             PatternVerticalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleDelts, MuscleTriceps},
			SecondaryMuscles:    nil,
			EquipmentRequired:   []Equipment{EquipmentDumbbell},
			DescriptionMarkdown: "Overhead press with dumbbells, seated or standing. Start at the shoulders with neutral or slightly turned-out palms and press to lockout without flaring the ribs.",
		},
		{
			Name:                "Barbell Row",
			Pattern:             PatternHorizontalPull,
			PrimaryMuscles:      []MuscleGroup{MuscleLats, MuscleUpperBack},
			SecondaryMuscles:    []MuscleGroup{MuscleBiceps, MuscleRearDelts},
			EquipmentRequired:   []Equipment{EquipmentBarbell},
			DescriptionMarkdown: "Hinge to roughly 45 degrees and pull the bar to the lower ribs. The torso angle stays **fixed**; momentum from the hips means the weight is too heavy.",
		},
		{
			Name:                "Dumbbell Row",
			Pattern:             PatternHorizontalPull,
			PrimaryMuscles:      []MuscleGroup{MuscleLats, MuscleUpperBack},
			SecondaryMuscles:    []MuscleGroup{MuscleBiceps},
			EquipmentRequired:   []Equipment{EquipmentDumbbell, EquipmentBench},
			DescriptionMarkdown: "One-arm row supported on a bench. Pull the dumbbell to the hip, not the armpit, and let the shoulder blade move through a full range each rep.",
		},
		{
			Name:                "Seated Cable Row",
			Pattern:             PatternHorizontalPull,
			PrimaryMuscles:      []MuscleGroup{MuscleLats, MuscleUpperBack},
			SecondaryMuscles:    []MuscleGroup{MuscleBiceps, MuscleRearDelts},
			EquipmentRequired:   []Equipment{EquipmentCable},
			DescriptionMarkdown: "Row a cable handle to the torso from a seated position. The constant cable tension makes it easy to control the eccentric and pause at the squeeze.",
		},
		{
			Name:                "Pull-Up",
			Pattern:             PatternVerticalPull,
			PrimaryMuscles:      []MuscleGroup{MuscleLats, MuscleBiceps},
			SecondaryMuscles:    []MuscleGroup{MuscleUpperBack, MuscleForearms},
			EquipmentRequired:   []Equipment{EquipmentPullupBar},
			DescriptionMarkdown: "Hang from a bar and pull until the chin clears it. Start each rep from a **dead hang**; add load with a belt or scale down with a band.",
		},
		{
			Name:                "Lat Pulldown",
			Pattern:             PatternVerticalPull,
			PrimaryMuscles:      []MuscleGroup{MuscleLats, MuscleBiceps},
			SecondaryMuscles:    []MuscleGroup{MuscleUpperBack},
			EquipmentRequired:   []Equipment{EquipmentCable},
			DescriptionMarkdown: "Cable version of the vertical pull. Pull the bar to the collarbone with a tall chest, leaning back only a few degrees.",
		},
		{
			Name:                "Bulgarian Split Squat",
			Pattern:             PatternLunge,
			PrimaryMuscles:      []MuscleGroup{MuscleQuads, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleHams, MuscleCore},
			EquipmentRequired:   []Equipment{EquipmentDumbbell, EquipmentBench},
			DescriptionMarkdown: "Single-leg squat with the rear foot elevated on a bench. Drop the back knee straight down and keep most of the weight on the front leg.",
		},
		{
			Name:                "Walking Lunge",
			Pattern:             PatternLunge,
			PrimaryMuscles:      []MuscleGroup{MuscleQuads, MuscleGlutes},
			SecondaryMuscles:    []MuscleGroup{MuscleHams, MuscleCalves},
			EquipmentRequired:   nil,
			DescriptionMarkdown: "Alternating forward lunges, stepping through each rep. Take a stride long enough that the front shin stays near vertical at the bottom.",
		},
		{
			Name:                "Barbell Curl",
			Pattern:             PatternIsolation,
			PrimaryMuscles:      []MuscleGroup{MuscleBiceps},
			SecondaryMuscles:    []MuscleGroup{MuscleForearms},
			EquipmentRequired:   []Equipment{EquipmentBarbell},
			DescriptionMarkdown: "Curl a barbell from full elbow extension with the upper arms pinned to the sides. Swinging from the hips turns it into a different exercise.",
		},
		{
			Name:                "Dumbbell Curl",
			Pattern:             PatternIsolation,
			PrimaryMuscles:      []MuscleGroup{MuscleBiceps},
			SecondaryMuscles:    []MuscleGroup{MuscleForearms},
			EquipmentRequired:   []Equipment{EquipmentDumbbell},
			DescriptionMarkdown: "Dumbbell biceps curl, together or alternating. Supinate the palm through the curl and control the lowering for the full stimulus.",
		},
		{
			Name:                "Triceps Pushdown",
			Pattern:             PatternIsolation,
			PrimaryMuscles:      []MuscleGroup{MuscleTriceps},
			SecondaryMuscles:    nil,
			EquipmentRequired:   []Equipment{EquipmentCable},
			DescriptionMarkdown: "Extend the elbows against a high cable with the upper arms locked at the sides. Full extension at the bottom, controlled return to ninety degrees.",
		},
		{
			Name:                "Lateral Raise",
			Pattern:             PatternIsolation,
			PrimaryMuscles:      []MuscleGroup{MuscleDelts},
			SecondaryMuscles:    nil,
			EquipmentRequired:   []Equipment{EquipmentDumbbell},
			DescriptionMarkdown: "Raise light dumbbells out to the sides to shoulder height, leading with the elbows. A slight forward lean keeps the tension on the side delts.",
		},
		{
			Name:                "Dip",
			Pattern:             PatternVerticalPush,
			PrimaryMuscles:      []MuscleGroup{MuscleChest, MuscleTriceps},
			SecondaryMuscles:    []MuscleGroup{MuscleDelts},
			EquipmentRequired:   []Equipment{EquipmentDipStation},
			DescriptionMarkdown: "Lower between parallel bars until the upper arms are at least parallel to the floor, then press to lockout. Lean forward to bias the chest.",
		},
		{
			Name:                "Plank",
			Pattern:             PatternCore,
			PrimaryMuscles:      []MuscleGroup{MuscleCore},
			SecondaryMuscles:    []MuscleGroup{MuscleErectors},
			EquipmentRequired:   nil,
			DescriptionMarkdown: "Hold a straight line on forearms and toes. Squeeze the glutes and tuck the pelvis; when the hips sag the set is over.",
		},
	}
}

// DescriptionHTML renders the exercise's markdown description to HTML.
// An exercise without a description returns an empty string.
func DescriptionHTML(e Exercise) (string, error) {
	if e.DescriptionMarkdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(e.DescriptionMarkdown), &buf); err != nil {
		return "", fmt.Errorf("render exercise description: %w", err)
	}
	return buf.String(), nil
}
