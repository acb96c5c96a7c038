package service

import (
	"testing"

	"github.com/calai-app/calai/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestCalculateGoals_ModerateLoseWeight(t *testing.T) {
	profile := model.Profile{
		Gender:        model.GenderMale,
		Age:           30,
		HeightInches:  70,
		ActivityLevel: model.ActivityModeratelyActive,
		PrimaryGoal:   model.GoalLoseWeight,
	}

	goals := CalculateGoals(profile, 180)

	// BMR 1862.8, TDEE 2887.3, target 2387.3 kcal
	assert.Equal(t, 179, goals.Protein)
	assert.Equal(t, 239, goals.Carbs)
	assert.Equal(t, 80, goals.Fats)
}

func TestCalculateGoals_GenderOffsets(t *testing.T) {
	base := model.Profile{
		Age:           25,
		HeightInches:  65,
		ActivityLevel: model.ActivitySedentary,
		PrimaryGoal:   model.GoalMaintainWeight,
	}

	male := base
	male.Gender = model.GenderMale
	female := base
	female.Gender = model.GenderFemale
	other := base
	other.Gender = model.GenderOther

	maleGoals := CalculateGoals(male, 150)
	femaleGoals := CalculateGoals(female, 150)
	otherGoals := CalculateGoals(other, 150)

	// Male carries the highest BMR constant, female the lowest, and the
	// neutral variant sits between them.
	assert.Greater(t, maleGoals.Carbs, otherGoals.Carbs)
	assert.Greater(t, otherGoals.Carbs, femaleGoals.Carbs)
}

func TestCalculateGoals_GoalOffsets(t *testing.T) {
	base := model.Profile{
		Gender:        model.GenderFemale,
		Age:           40,
		HeightInches:  64,
		ActivityLevel: model.ActivityLightlyActive,
	}

	tests := []struct {
		name string
		goal model.PrimaryGoal
	}{
		{"lose weight cuts 500 kcal", model.GoalLoseWeight},
		{"maintain keeps TDEE", model.GoalMaintainWeight},
		{"gain muscle adds 300 kcal", model.GoalGainMuscle},
	}

	var calories []float64
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.PrimaryGoal = tt.goal
			goals := CalculateGoals(p, 140)
			calories = append(calories, goals.Calories())
		})
	}

	assert.Less(t, calories[0], calories[1])
	assert.Less(t, calories[1], calories[2])
}

func TestMacroGoals_CaloriesDerived(t *testing.T) {
	goals := model.MacroGoals{Protein: 150, Carbs: 200, Fats: 70}

	assert.Equal(t, float64(150*4+200*4+70*9), goals.Calories())
}
