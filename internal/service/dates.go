package service

import (
	"time"

	"github.com/calai-app/calai/pkg/model"
)

// DayKeyLayout is the calendar-day key format used for all per-day
// bucketing (meals, water, weight, streaks).
const DayKeyLayout = "2006-01-02"

// DayKey truncates a time to its calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a calendar-day key back into a local midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, time.Local)
}

// AddDays shifts a calendar-day key by n days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, n)), nil
}

// MealTypeForHour maps a local clock hour to the meal-type bucket used when
// logging an analyzed photo: 5-11 Breakfast, 11-16 Lunch, 16-22 Dinner,
// anything else Snacks.
func MealTypeForHour(hour int) model.MealType {
	switch {
	case hour >= 5 && hour < 11:
		return model.MealBreakfast
	case hour >= 11 && hour < 16:
		return model.MealLunch
	case hour >= 16 && hour < 22:
		return model.MealDinner
	default:
		return model.MealSnacks
	}
}
