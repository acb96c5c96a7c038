package service

import (
	"time"

	"github.com/calai-app/calai/pkg/model"
)

// Aggregators are pure folds over the logged collections; they are re-run
// on every read and hold no state.

// NutritionTotals is the macro sum of a set of meals.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func (t *NutritionTotals) add(m model.Meal) {
	t.Calories += m.Calories
	t.Protein += m.Protein
	t.Carbs += m.Carbs
	t.Fats += m.Fats
}

// DailySummary aggregates one calendar day for display.
type DailySummary struct {
	Date           string          `json:"date"`
	Nutrition      NutritionTotals `json:"nutrition"`
	CaloriesBurned float64         `json:"caloriesBurned"`
	CalorieGoal    float64         `json:"calorieGoal"`
}

// Remaining is the calorie budget left for the day; calories burned through
// activity extend the budget.
func (s DailySummary) Remaining() float64 {
	return s.CalorieGoal + s.CaloriesBurned - s.Nutrition.Calories
}

// SummarizeDay folds the day's meals and activities into totals against the
// goal implied by the macro targets.
func SummarizeDay(u model.UserData, date string) DailySummary {
	s := DailySummary{Date: date, CalorieGoal: u.MacroGoals.Calories()}
	for _, m := range u.LoggedMeals {
		if m.Date == date {
			s.Nutrition.add(m)
		}
	}
	for _, a := range u.LoggedActivities {
		if a.Date == date {
			s.CaloriesBurned += a.CaloriesBurned
		}
	}
	return s
}

// IndexedMeal carries a meal together with its position in the full logged
// list, so grouped views can still address it for deletion or detail.
type IndexedMeal struct {
	model.Meal
	Index int `json:"index"`
}

// GroupMealsByType partitions one day's meals into the four meal-type
// buckets, preserving log order within each bucket.
func GroupMealsByType(u model.UserData, date string) map[model.MealType][]IndexedMeal {
	grouped := make(map[model.MealType][]IndexedMeal, len(model.MealTypes))
	for i, m := range u.LoggedMeals {
		if m.Date != date {
			continue
		}
		grouped[m.Type] = append(grouped[m.Type], IndexedMeal{Meal: m, Index: i})
	}
	return grouped
}

// WeeklyAverages holds per-day averages over the trailing 7-day window.
// Nutrition divides by days that have at least one meal and calories burned
// by days that have at least one activity, so empty days don't dilute.
type WeeklyAverages struct {
	Nutrition      NutritionTotals `json:"nutrition"`
	CaloriesBurned float64         `json:"caloriesBurned"`
	DaysWithMeals  int             `json:"daysWithMeals"`
}

// AverageWeek computes averages over [asOf-6d, asOf] inclusive. All fields
// are zero when no day in the window has a meal.
func AverageWeek(u model.UserData, asOf time.Time) WeeklyAverages {
	start := DayKey(asOf.AddDate(0, 0, -6))
	end := DayKey(asOf)

	var totals NutritionTotals
	mealDays := map[string]struct{}{}
	for _, m := range u.LoggedMeals {
		if m.Date < start || m.Date > end {
			continue
		}
		totals.add(m)
		mealDays[m.Date] = struct{}{}
	}

	var burned float64
	activityDays := map[string]struct{}{}
	for _, a := range u.LoggedActivities {
		if a.Date < start || a.Date > end {
			continue
		}
		burned += a.CaloriesBurned
		activityDays[a.Date] = struct{}{}
	}

	avg := WeeklyAverages{DaysWithMeals: len(mealDays)}
	if n := float64(len(mealDays)); n > 0 {
		avg.Nutrition = NutritionTotals{
			Calories: totals.Calories / n,
			Protein:  totals.Protein / n,
			Carbs:    totals.Carbs / n,
			Fats:     totals.Fats / n,
		}
	}
	if n := float64(len(activityDays)); n > 0 {
		avg.CaloriesBurned = burned / n
	}
	return avg
}

// DayPoint is one day of a report series.
type DayPoint struct {
	Date           string          `json:"date"`
	Nutrition      NutritionTotals `json:"nutrition"`
	CaloriesBurned float64         `json:"caloriesBurned"`
}

// ReportSeries builds the per-day chart series for the trailing window of
// the given length (7 or 30 days), oldest day first.
func ReportSeries(u model.UserData, asOf time.Time, days int) []DayPoint {
	series := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := DayKey(asOf.AddDate(0, 0, -i))
		point := DayPoint{Date: date}
		for _, m := range u.LoggedMeals {
			if m.Date == date {
				point.Nutrition.add(m)
			}
		}
		for _, a := range u.LoggedActivities {
			if a.Date == date {
				point.CaloriesBurned += a.CaloriesBurned
			}
		}
		series = append(series, point)
	}
	return series
}

// BMICategory labels a BMI value
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMIHealthy     BMICategory = "Healthy"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// BMI computes body mass index from imperial units.
func BMI(weightLbs, heightInches float64) float64 {
	if heightInches == 0 {
		return 0
	}
	return (weightLbs / (heightInches * heightInches)) * 703
}

// CategorizeBMI maps a BMI value to its display category.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMIHealthy
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
