package service

import (
	"math"

	"github.com/calai-app/calai/pkg/model"
)

// activityMultipliers maps each activity tier to its TDEE multiplier.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityActive:           1.725,
	model.ActivityVeryActive:       1.9,
}

// goalOffsets adjusts the TDEE toward the user's primary goal, in kcal/day.
var goalOffsets = map[model.PrimaryGoal]float64{
	model.GoalLoseWeight:     -500,
	model.GoalMaintainWeight: 0,
	model.GoalGainMuscle:     300,
}

// genderOffset returns the Mifflin-St Jeor constant; the neutral variant is
// the midpoint used when the user prefers not to say.
func genderOffset(g model.Gender) float64 {
	switch g {
	case model.GenderMale:
		return 5
	case model.GenderFemale:
		return -161
	default:
		return -78
	}
}

// CalculateGoals derives daily macro targets from a profile and current
// weight via the Mifflin-St Jeor BMR model. The target calories split 40%
// to carbs, 30% to protein, and 30% to fats, each rounded to whole grams.
// Degenerate inputs (age 0, height 0) produce degenerate but defined
// output; validation is the caller's concern.
func CalculateGoals(profile model.Profile, weightLbs float64) model.MacroGoals {
	weightKg := LbsToKg(weightLbs)
	heightCm := InchesToCm(profile.HeightInches)

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(profile.Age) + genderOffset(profile.Gender)
	tdee := bmr * activityMultipliers[profile.ActivityLevel]
	target := tdee + goalOffsets[profile.PrimaryGoal]

	return model.MacroGoals{
		Protein: int(math.Round(target * 0.30 / 4)),
		Carbs:   int(math.Round(target * 0.40 / 4)),
		Fats:    int(math.Round(target * 0.30 / 9)),
	}
}
