package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/calai-app/calai/pkg/model"
)

// This file is the update layer of the per-user store. Every operation is a
// pure (UserData, input) -> UserData function: the input aggregate is never
// mutated, modified collections are rebuilt, and the caller persists the
// returned aggregate wholesale. Time-dependent operations take the clock as
// an argument so tests can pin it.

const maxRecentFoods = 5

// defaultWeightLbs stands in for the current weight when a profile edit
// happens with an empty weight history.
const defaultWeightLbs = 150

// NewUserData seeds the aggregate for a freshly registered user. The
// profile must already carry its identifier.
func NewUserData(profile model.Profile, currentWeightLbs float64, now time.Time) model.UserData {
	goalWeight := currentWeightLbs
	if profile.PrimaryGoal == model.GoalLoseWeight {
		goalWeight = currentWeightLbs - 15
	}
	return model.UserData{
		Profile:            profile,
		LoggedMeals:        []model.Meal{},
		LoggedActivities:   []model.Activity{},
		MacroGoals:         CalculateGoals(profile, currentWeightLbs),
		WeightHistory:      []model.WeightEntry{{Date: DayKey(now), WeightLbs: currentWeightLbs}},
		GoalWeightLbs:      goalWeight,
		WaterIntakeHistory: map[string]float64{},
		WaterGoal:          90,
		StepsHistory:       map[string]int{},
		StepsGoal:          10000,
		DayStreak:          0,
		FavoriteFoods:      []model.FoodSearchResult{},
		PreppedMeals:       []model.PreppedMeal{},
		Page:               model.PageDashboard,
		ThemePreference:    model.ThemeSystem,
		CustomActivities:   []model.CustomActivity{},
		RecentFoods:        []model.FoodSearchResult{},
		Reminders:          model.DefaultReminders(),
	}
}

// nextStreak computes the day streak that results from logging a record
// dated logDate. Back-dated records never move the streak; the first record
// of today extends the streak when anything was logged yesterday and resets
// it to 1 otherwise. The scan covers the collections as they were before
// the new record is appended.
func nextStreak(u model.UserData, logDate string, now time.Time) int {
	today := DayKey(now)
	if logDate != today {
		return u.DayStreak
	}
	if hasLogOn(u, today) {
		return u.DayStreak
	}
	if hasLogOn(u, DayKey(now.AddDate(0, 0, -1))) {
		return u.DayStreak + 1
	}
	return 1
}

func hasLogOn(u model.UserData, date string) bool {
	for _, m := range u.LoggedMeals {
		if m.Date == date {
			return true
		}
	}
	for _, a := range u.LoggedActivities {
		if a.Date == date {
			return true
		}
	}
	return false
}

// LogMeal appends a meal, recomputes the day streak, and returns to the
// dashboard.
func LogMeal(u model.UserData, meal model.Meal, now time.Time) model.UserData {
	u.DayStreak = nextStreak(u, meal.Date, now)
	u.LoggedMeals = append(append([]model.Meal{}, u.LoggedMeals...), meal)
	u.Page = model.PageDashboard
	return u
}

// LogActivity appends an activity, recomputes the day streak, and returns
// to the dashboard.
func LogActivity(u model.UserData, activity model.Activity, now time.Time) model.UserData {
	u.DayStreak = nextStreak(u, activity.Date, now)
	u.LoggedActivities = append(append([]model.Activity{}, u.LoggedActivities...), activity)
	u.Page = model.PageDashboard
	return u
}

// RemoveMeal filters out the meal at the given position. An out-of-range
// index is a no-op.
func RemoveMeal(u model.UserData, index int) model.UserData {
	u.LoggedMeals = removeMealAt(u.LoggedMeals, index)
	return u
}

// RemoveMealAndNavigate removes a meal and sets the current page in the
// same update, so a detail view's teardown cannot re-navigate after the
// deletion already has.
func RemoveMealAndNavigate(u model.UserData, index int, page model.Page) model.UserData {
	u.LoggedMeals = removeMealAt(u.LoggedMeals, index)
	u.Page = page
	return u
}

// RemoveActivity filters out the activity at the given position. An
// out-of-range index is a no-op.
func RemoveActivity(u model.UserData, index int) model.UserData {
	if index < 0 || index >= len(u.LoggedActivities) {
		return u
	}
	kept := make([]model.Activity, 0, len(u.LoggedActivities)-1)
	kept = append(kept, u.LoggedActivities[:index]...)
	kept = append(kept, u.LoggedActivities[index+1:]...)
	u.LoggedActivities = kept
	return u
}

func removeMealAt(meals []model.Meal, index int) []model.Meal {
	if index < 0 || index >= len(meals) {
		return meals
	}
	kept := make([]model.Meal, 0, len(meals)-1)
	kept = append(kept, meals[:index]...)
	kept = append(kept, meals[index+1:]...)
	return kept
}

// UpdateWeight upserts today's weight entry, keeps the history sorted
// ascending by date, and replaces the goal weight.
func UpdateWeight(u model.UserData, currentLbs, goalLbs float64, now time.Time) model.UserData {
	today := DayKey(now)
	history := append([]model.WeightEntry{}, u.WeightHistory...)
	replaced := false
	for i := range history {
		if history[i].Date == today {
			history[i] = model.WeightEntry{Date: today, WeightLbs: currentLbs}
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, model.WeightEntry{Date: today, WeightLbs: currentLbs})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date < history[j].Date })
	u.WeightHistory = history
	u.GoalWeightLbs = goalLbs
	u.Page = model.PageSettings
	return u
}

// UpdateProfile replaces the profile and re-derives the macro goals from
// the latest weight entry. Manual macro overrides do not survive a profile
// edit.
func UpdateProfile(u model.UserData, profile model.Profile) model.UserData {
	weight := u.CurrentWeightLbs()
	if weight == 0 {
		weight = defaultWeightLbs
	}
	u.Profile = profile
	u.MacroGoals = CalculateGoals(profile, weight)
	u.Page = model.PageSettings
	return u
}

// UpdateMacroGoals overrides the macro targets directly, bypassing the
// calculator. Only another explicit override or a profile edit replaces
// them.
func UpdateMacroGoals(u model.UserData, goals model.MacroGoals) model.UserData {
	u.MacroGoals = goals
	u.Page = model.PageSettings
	return u
}

// UpdateWaterIntake sets (not increments) the water amount for a date.
func UpdateWaterIntake(u model.UserData, date string, flOz float64) model.UserData {
	history := make(map[string]float64, len(u.WaterIntakeHistory)+1)
	for k, v := range u.WaterIntakeHistory {
		history[k] = v
	}
	history[date] = flOz
	u.WaterIntakeHistory = history
	return u
}

// UpdateSteps sets the step count for a date.
func UpdateSteps(u model.UserData, date string, steps int) model.UserData {
	history := make(map[string]int, len(u.StepsHistory)+1)
	for k, v := range u.StepsHistory {
		history[k] = v
	}
	history[date] = steps
	u.StepsHistory = history
	return u
}

// ToggleFavorite adds the food to favorites, or removes it when a favorite
// with the same name (case-insensitive) already exists.
func ToggleFavorite(u model.UserData, food model.FoodSearchResult) model.UserData {
	kept := make([]model.FoodSearchResult, 0, len(u.FavoriteFoods)+1)
	found := false
	for _, f := range u.FavoriteFoods {
		if strings.EqualFold(f.Name, food.Name) {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		kept = append(kept, food)
	}
	u.FavoriteFoods = kept
	return u
}

// AddPreppedMeal appends a prepped meal. The caller assigns the durable
// identifier before dispatching.
func AddPreppedMeal(u model.UserData, meal model.PreppedMeal) model.UserData {
	u.PreppedMeals = append(append([]model.PreppedMeal{}, u.PreppedMeals...), meal)
	return u
}

// LogPreppedMeal materializes a meal record scaled by the serving count and
// routes it through LogMeal. The prepped meal itself is never changed by
// logging.
func LogPreppedMeal(u model.UserData, meal model.PreppedMeal, servings int, mealType model.MealType, date string, now time.Time) model.UserData {
	label := "serving"
	if servings != 1 {
		label = "servings"
	}
	logged := model.Meal{
		Name:     fmt.Sprintf("%s (%d %s)", meal.Name, servings, label),
		Calories: meal.CaloriesPerServing * float64(servings),
		Protein:  meal.ProteinPerServing * float64(servings),
		Carbs:    meal.CarbsPerServing * float64(servings),
		Fats:     meal.FatsPerServing * float64(servings),
		Type:     mealType,
		Date:     date,
	}
	return LogMeal(u, logged, now)
}

// DeletePreppedMeal removes a prepped meal by identifier; an unknown id is
// a no-op.
func DeletePreppedMeal(u model.UserData, id string) model.UserData {
	kept := make([]model.PreppedMeal, 0, len(u.PreppedMeals))
	for _, m := range u.PreppedMeals {
		if m.ID == id {
			continue
		}
		kept = append(kept, m)
	}
	u.PreppedMeals = kept
	return u
}

// AddCustomActivity appends a user-defined MET entry. No deduplication.
func AddCustomActivity(u model.UserData, activity model.CustomActivity) model.UserData {
	u.CustomActivities = append(append([]model.CustomActivity{}, u.CustomActivities...), activity)
	return u
}

// AddFoodToRecents prepends the food to the recents list, dropping any
// existing entry with the same name (case-insensitive) and truncating to
// the five most recent.
func AddFoodToRecents(u model.UserData, food model.FoodSearchResult) model.UserData {
	recents := make([]model.FoodSearchResult, 0, len(u.RecentFoods)+1)
	recents = append(recents, food)
	for _, f := range u.RecentFoods {
		if strings.EqualFold(f.Name, food.Name) {
			continue
		}
		recents = append(recents, f)
	}
	if len(recents) > maxRecentFoods {
		recents = recents[:maxRecentFoods]
	}
	u.RecentFoods = recents
	return u
}

// UpdateReminders replaces the five-slot reminder configuration wholesale.
func UpdateReminders(u model.UserData, settings model.ReminderSettings) model.UserData {
	u.Reminders = settings
	return u
}

// NavigateTo records the UI's current page.
func NavigateTo(u model.UserData, page model.Page) model.UserData {
	u.Page = page
	return u
}

// SetThemePreference records the per-user theme choice.
func SetThemePreference(u model.UserData, pref model.ThemePreference) model.UserData {
	u.ThemePreference = pref
	return u
}
