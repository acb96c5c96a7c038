package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func TestAnalyzeMealPhoto(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("```json\n"+`{
		"mealName": "Avocado Toast with Egg",
		"calories": 420,
		"protein": 18,
		"carbs": 35,
		"fats": 24,
		"fiber": 9,
		"sodium": 520,
		"portionSuggestion": "A reasonable single serving."
	}`+"\n```", nil)

	f := NewFoodIntelligence(completer, zap.NewNop())
	// Pin the clock to a breakfast hour so the heuristic is deterministic.
	f.SetClock(func() time.Time { return time.Date(2025, 3, 15, 8, 30, 0, 0, time.Local) })

	analysis, err := f.AnalyzeMealPhoto(context.Background(), "ZmFrZWltYWdl")

	assert.NoError(t, err)
	assert.Equal(t, "Avocado Toast with Egg", analysis.Name)
	assert.Equal(t, float64(420), analysis.Calories)
	assert.Equal(t, model.MealBreakfast, analysis.Type)
	if assert.NotNil(t, analysis.Fiber) {
		assert.Equal(t, float64(9), *analysis.Fiber)
	}
	assert.Nil(t, analysis.Sugar, "absent optional fields stay nil")
	if assert.NotNil(t, analysis.SodiumMg) {
		assert.Equal(t, float64(520), *analysis.SodiumMg)
	}
}

func TestAnalyzeMealPhoto_MealTypeFollowsClock(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(`{"mealName": "Ramen", "calories": 550}`, nil)

	f := NewFoodIntelligence(completer, zap.NewNop())
	f.SetClock(func() time.Time { return time.Date(2025, 3, 15, 19, 0, 0, 0, time.Local) })

	analysis, err := f.AnalyzeMealPhoto(context.Background(), "aW1n")

	assert.NoError(t, err)
	assert.Equal(t, model.MealDinner, analysis.Type)
}

func TestAnalyzeMealPhoto_GarbageResponse(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("I cannot identify this image.", nil)

	f := NewFoodIntelligence(completer, zap.NewNop())

	_, err := f.AnalyzeMealPhoto(context.Background(), "aW1n")

	assert.Error(t, err)
}

func TestSearchFood_CachesByNormalizedQuery(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(`[
		{"name": "Grilled Chicken Breast (100g)", "calories": 165, "protein": 31, "carbs": 0, "fats": 3.6}
	]`, nil)

	f := NewFoodIntelligence(completer, zap.NewNop())

	first, err := f.SearchFood(context.Background(), "chicken breast")
	assert.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, "Grilled Chicken Breast (100g)", first[0].Name)

	// Same query with different casing and padding hits the cache.
	second, err := f.SearchFood(context.Background(), "  Chicken Breast ")
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	completer.AssertNumberOfCalls(t, "Complete", 1)
}

func TestSearchFood_CompleterError(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	f := NewFoodIntelligence(completer, zap.NewNop())

	_, err := f.SearchFood(context.Background(), "pizza")

	assert.Error(t, err)
}

func TestWeeklySuggestions(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(
		"```json\n"+`{"suggestions": ["Great job on your activity!", "Add a protein snack in the afternoon."]}`+"\n```", nil)

	f := NewFoodIntelligence(completer, zap.NewNop())

	suggestions, err := f.WeeklySuggestions(context.Background(), SuggestionPayload{
		Profile:     model.Profile{PrimaryGoal: model.GoalLoseWeight, Age: 30},
		MacroGoals:  model.MacroGoals{Protein: 179, Carbs: 239, Fats: 80},
		CalorieGoal: 2392,
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Great job on your activity!",
		"Add a protein snack in the afternoon.",
	}, suggestions)
}

func TestBuildSuggestionPrompt_IncludesGoalsAndAverages(t *testing.T) {
	prompt := buildSuggestionPrompt(SuggestionPayload{
		Profile:     model.Profile{PrimaryGoal: model.GoalLoseWeight, Age: 30, Gender: model.GenderMale, ActivityLevel: model.ActivityModeratelyActive},
		MacroGoals:  model.MacroGoals{Protein: 179, Carbs: 239, Fats: 80},
		CalorieGoal: 2392,
		AvgNutrition:      service.NutritionTotals{Calories: 2100, Protein: 140, Carbs: 220, Fats: 75},
		AvgCaloriesBurned: 310,
	})

	assert.Contains(t, prompt, "Daily Calorie Goal: 2392 kcal")
	assert.Contains(t, prompt, "Protein Goal: 179g")
	assert.Contains(t, prompt, "Average Daily Calorie Intake: 2100 kcal")
	assert.Contains(t, prompt, "Average Daily Calories Burned from Activity: 310 kcal")
}

func TestUnmarshalResponse_StripsCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"bare json", `{"suggestions": ["a"]}`},
		{"json fence", "```json\n{\"suggestions\": [\"a\"]}\n```"},
		{"plain fence", "```\n{\"suggestions\": [\"a\"]}\n```"},
		{"surrounding whitespace", "  \n{\"suggestions\": [\"a\"]}\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed struct {
				Suggestions []string `json:"suggestions"`
			}
			err := unmarshalResponse(tt.response, &parsed)
			assert.NoError(t, err)
			assert.Equal(t, []string{"a"}, parsed.Suggestions)
		})
	}
}
