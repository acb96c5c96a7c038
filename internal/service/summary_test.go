package service

import (
	"testing"
	"time"

	"github.com/calai-app/calai/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeDay(t *testing.T) {
	u := model.UserData{
		MacroGoals: model.MacroGoals{Protein: 150, Carbs: 200, Fats: 70},
		LoggedMeals: []model.Meal{
			{Name: "oats", Calories: 350, Protein: 12, Carbs: 60, Fats: 6, Date: "2025-03-15"},
			{Name: "salad", Calories: 420, Protein: 30, Carbs: 25, Fats: 22, Date: "2025-03-15"},
			{Name: "other day", Calories: 900, Date: "2025-03-14"},
		},
		LoggedActivities: []model.Activity{
			{Type: "Running", CaloriesBurned: 320, Date: "2025-03-15"},
			{Type: "Walking", CaloriesBurned: 100, Date: "2025-03-14"},
		},
	}

	s := SummarizeDay(u, "2025-03-15")

	assert.Equal(t, float64(770), s.Nutrition.Calories)
	assert.Equal(t, float64(42), s.Nutrition.Protein)
	assert.Equal(t, float64(320), s.CaloriesBurned)
	assert.Equal(t, float64(150*4+200*4+70*9), s.CalorieGoal)
}

func TestDailySummary_RemainingExtendsWithBurn(t *testing.T) {
	s := DailySummary{
		Nutrition:      NutritionTotals{Calories: 1800},
		CaloriesBurned: 400,
		CalorieGoal:    2000,
	}

	assert.Equal(t, float64(600), s.Remaining())
}

func TestGroupMealsByType_PreservesLogIndices(t *testing.T) {
	u := model.UserData{LoggedMeals: []model.Meal{
		{Name: "toast", Type: model.MealBreakfast, Date: "2025-03-15"},
		{Name: "old entry", Type: model.MealLunch, Date: "2025-03-14"},
		{Name: "soup", Type: model.MealLunch, Date: "2025-03-15"},
		{Name: "eggs", Type: model.MealBreakfast, Date: "2025-03-15"},
	}}

	grouped := GroupMealsByType(u, "2025-03-15")

	if assert.Len(t, grouped[model.MealBreakfast], 2) {
		assert.Equal(t, 0, grouped[model.MealBreakfast][0].Index)
		assert.Equal(t, 3, grouped[model.MealBreakfast][1].Index)
	}
	if assert.Len(t, grouped[model.MealLunch], 1) {
		// The index addresses the full logged list, not the day's slice.
		assert.Equal(t, 2, grouped[model.MealLunch][0].Index)
	}
}

func TestAverageWeek_DividesByDaysWithMeals(t *testing.T) {
	asOf := time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local)
	u := model.UserData{
		LoggedMeals: []model.Meal{
			{Name: "a", Calories: 2000, Date: "2025-03-15"},
			{Name: "b", Calories: 1000, Date: "2025-03-13"},
			{Name: "outside window", Calories: 5000, Date: "2025-03-01"},
		},
		LoggedActivities: []model.Activity{
			{Type: "Running", CaloriesBurned: 300, Date: "2025-03-14"},
		},
	}

	avg := AverageWeek(u, asOf)

	// Two days carry meals, so 3000 kcal averages to 1500, not 3000/7.
	assert.Equal(t, float64(1500), avg.Nutrition.Calories)
	assert.Equal(t, 2, avg.DaysWithMeals)
	assert.Equal(t, float64(300), avg.CaloriesBurned)
}

func TestAverageWeek_EmptyWindowIsZero(t *testing.T) {
	asOf := time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local)

	avg := AverageWeek(model.UserData{}, asOf)

	assert.Zero(t, avg.Nutrition.Calories)
	assert.Zero(t, avg.CaloriesBurned)
	assert.Zero(t, avg.DaysWithMeals)
}

func TestReportSeries(t *testing.T) {
	asOf := time.Date(2025, 3, 15, 18, 0, 0, 0, time.Local)
	u := model.UserData{
		LoggedMeals: []model.Meal{
			{Name: "a", Calories: 500, Date: "2025-03-15"},
			{Name: "b", Calories: 700, Date: "2025-03-13"},
		},
		LoggedActivities: []model.Activity{
			{Type: "Running", CaloriesBurned: 250, Date: "2025-03-15"},
		},
	}

	series := ReportSeries(u, asOf, 7)

	assert.Len(t, series, 7)
	assert.Equal(t, "2025-03-09", series[0].Date, "oldest day first")
	assert.Equal(t, "2025-03-15", series[6].Date)
	assert.Equal(t, float64(700), series[4].Nutrition.Calories)
	assert.Equal(t, float64(500), series[6].Nutrition.Calories)
	assert.Equal(t, float64(250), series[6].CaloriesBurned)
}

func TestBMI(t *testing.T) {
	// 180 lbs at 70 inches: 180/4900*703 = 25.82...
	assert.InDelta(t, 25.82, BMI(180, 70), 0.01)
	assert.Zero(t, BMI(180, 0))
}

func TestCategorizeBMI(t *testing.T) {
	tests := []struct {
		bmi  float64
		want BMICategory
	}{
		{17.0, BMIUnderweight},
		{18.5, BMIHealthy},
		{24.9, BMIHealthy},
		{25.0, BMIOverweight},
		{29.9, BMIOverweight},
		{30.0, BMIObese},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeBMI(tt.bmi), "bmi %.1f", tt.bmi)
	}
}
