package service

import (
	"math"
	"strings"

	"github.com/calai-app/calai/pkg/model"
)

// BuiltinActivities is the fixed catalog of activities and their MET
// intensity values, merged at lookup time with the user's custom entries.
var BuiltinActivities = []model.CustomActivity{
	{Type: "Running", Emoji: "🏃", MET: 9.8},
	{Type: "Walking", Emoji: "🚶", MET: 3.5},
	{Type: "Cycling", Emoji: "🚴", MET: 7.5},
	{Type: "Weight Lifting", Emoji: "🏋️", MET: 3.0},
	{Type: "Yoga", Emoji: "🧘", MET: 2.5},
	{Type: "Swimming", Emoji: "🏊", MET: 5.8},
}

// ActivityCatalog returns the builtin catalog followed by the user's custom
// activities, in definition order.
func ActivityCatalog(u model.UserData) []model.CustomActivity {
	catalog := make([]model.CustomActivity, 0, len(BuiltinActivities)+len(u.CustomActivities))
	catalog = append(catalog, BuiltinActivities...)
	catalog = append(catalog, u.CustomActivities...)
	return catalog
}

// LookupActivity finds an activity by type name, case-insensitively,
// checking custom activities after the builtin catalog.
func LookupActivity(u model.UserData, activityType string) (model.CustomActivity, bool) {
	for _, a := range ActivityCatalog(u) {
		if strings.EqualFold(a.Type, activityType) {
			return a, true
		}
	}
	return model.CustomActivity{}, false
}

// CaloriesBurned estimates calories for a session via the MET formula:
// MET * weight(kg) * duration(hours), rounded to the nearest calorie.
func CaloriesBurned(met float64, weightLbs float64, durationMinutes int) float64 {
	if met <= 0 || weightLbs <= 0 || durationMinutes <= 0 {
		return 0
	}
	return math.Round(met * LbsToKg(weightLbs) * float64(durationMinutes) / 60)
}
