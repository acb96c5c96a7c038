package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

// FoodIntelligence bundles the generative-AI features: meal photo
// analysis, free-text food search, and weekly insight suggestions. Results
// are handed to the store's update layer unchanged; this package never
// mutates user state.
type FoodIntelligence struct {
	completer Completer
	logger    *zap.Logger
	now       func() time.Time

	mu          sync.Mutex
	searchCache map[string][]model.FoodSearchResult
}

// NewFoodIntelligence creates the AI feature service.
func NewFoodIntelligence(completer Completer, logger *zap.Logger) *FoodIntelligence {
	return &FoodIntelligence{
		completer:   completer,
		logger:      logger,
		now:         time.Now,
		searchCache: make(map[string][]model.FoodSearchResult),
	}
}

// SetClock overrides the time source used for the meal-type heuristic.
func (f *FoodIntelligence) SetClock(now func() time.Time) { f.now = now }

// AnalyzeMealPhoto sends a base64-encoded JPEG to the completion API and
// returns the nutritional estimate. The meal type is attached from the
// local time-of-day heuristic, not from the model.
func (f *FoodIntelligence) AnalyzeMealPhoto(ctx context.Context, base64Image string) (model.MealAnalysis, error) {
	f.logger.Info("analyzing meal photo", zap.Int("image_bytes", len(base64Image)))

	parts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: analyzePrompt,
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:image/jpeg;base64," + base64Image,
				},
			},
		},
	}
	messages := []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: parts,
				},
			},
		},
	}

	response, err := f.completer.Complete(ctx, messages)
	if err != nil {
		return model.MealAnalysis{}, fmt.Errorf("analyze meal photo: %w", err)
	}

	var parsed struct {
		MealName          string   `json:"mealName"`
		Calories          float64  `json:"calories"`
		Protein           float64  `json:"protein"`
		Carbs             float64  `json:"carbs"`
		Fats              float64  `json:"fats"`
		Fiber             *float64 `json:"fiber"`
		Sugar             *float64 `json:"sugar"`
		Sodium            *float64 `json:"sodium"`
		PortionSuggestion string   `json:"portionSuggestion"`
	}
	if err := unmarshalResponse(response, &parsed); err != nil {
		f.logger.Error("failed to parse meal analysis",
			zap.Error(err),
			zap.String("response", response),
		)
		return model.MealAnalysis{}, fmt.Errorf("parse meal analysis: %w", err)
	}

	analysis := model.MealAnalysis{
		Name:              parsed.MealName,
		Calories:          parsed.Calories,
		Protein:           parsed.Protein,
		Carbs:             parsed.Carbs,
		Fats:              parsed.Fats,
		Fiber:             parsed.Fiber,
		Sugar:             parsed.Sugar,
		SodiumMg:          parsed.Sodium,
		PortionSuggestion: parsed.PortionSuggestion,
		Type:              service.MealTypeForHour(f.now().Hour()),
	}

	f.logger.Info("meal photo analyzed",
		zap.String("name", analysis.Name),
		zap.Float64("calories", analysis.Calories),
		zap.String("type", string(analysis.Type)),
	)
	return analysis, nil
}

// SearchFood queries the completion API for nutrition snapshots matching a
// free-text query. Results are cached per normalized query for the process
// lifetime.
func (f *FoodIntelligence) SearchFood(ctx context.Context, query string) ([]model.FoodSearchResult, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(query))

	f.mu.Lock()
	if cached, ok := f.searchCache[cacheKey]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	f.logger.Info("searching foods", zap.String("query", query))

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(searchSystemPrompt),
		openai.UserMessage(fmt.Sprintf("Find nutritional information for %q.", query)),
	}
	response, err := f.completer.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}

	var results []model.FoodSearchResult
	if err := unmarshalResponse(response, &results); err != nil {
		f.logger.Error("failed to parse food search results",
			zap.Error(err),
			zap.String("response", response),
		)
		return nil, fmt.Errorf("parse food search results: %w", err)
	}

	f.mu.Lock()
	f.searchCache[cacheKey] = results
	f.mu.Unlock()
	return results, nil
}

// SuggestionPayload is the read-only aggregate handed to the weekly
// insights prompt.
type SuggestionPayload struct {
	Profile           model.Profile
	MacroGoals        model.MacroGoals
	CalorieGoal       float64
	AvgNutrition      service.NutritionTotals
	AvgCaloriesBurned float64
}

// WeeklySuggestions asks the model for 2-3 short coaching suggestions based
// on the user's goals and trailing 7-day averages.
func (f *FoodIntelligence) WeeklySuggestions(ctx context.Context, payload SuggestionPayload) ([]string, error) {
	f.logger.Info("generating weekly suggestions",
		zap.String("goal", string(payload.Profile.PrimaryGoal)),
	)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(suggestionSystemPrompt),
		openai.UserMessage(buildSuggestionPrompt(payload)),
	}
	response, err := f.completer.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("weekly suggestions: %w", err)
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := unmarshalResponse(response, &parsed); err != nil {
		f.logger.Error("failed to parse suggestions",
			zap.Error(err),
			zap.String("response", response),
		)
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}
	return parsed.Suggestions, nil
}

func buildSuggestionPrompt(p SuggestionPayload) string {
	return fmt.Sprintf(`Analyze this user's data and provide 2-3 short, simple, actionable suggestions.

User Profile:
- Goal: %s
- Age: %d
- Gender: %s
- Activity Level: %s

User's Goals:
- Daily Calorie Goal: %.0f kcal
- Protein Goal: %dg
- Carbohydrates Goal: %dg
- Fats Goal: %dg

User's Average Performance (last 7 days):
- Average Daily Calorie Intake: %.0f kcal
- Average Daily Protein Intake: %.0fg
- Average Daily Carbohydrates Intake: %.0fg
- Average Daily Fats Intake: %.0fg
- Average Daily Calories Burned from Activity: %.0f kcal`,
		p.Profile.PrimaryGoal,
		p.Profile.Age,
		p.Profile.Gender,
		p.Profile.ActivityLevel,
		p.CalorieGoal,
		p.MacroGoals.Protein,
		p.MacroGoals.Carbs,
		p.MacroGoals.Fats,
		p.AvgNutrition.Calories,
		p.AvgNutrition.Protein,
		p.AvgNutrition.Carbs,
		p.AvgNutrition.Fats,
		p.AvgCaloriesBurned,
	)
}

// unmarshalResponse strips any markdown code fences the model added and
// decodes the JSON payload.
func unmarshalResponse(response string, v any) error {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)
	if err := json.Unmarshal([]byte(response), v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

const analyzePrompt = `Analyze the food in this image. Provide a detailed nutritional estimate and a constructive portion-size suggestion.

Return ONLY valid JSON in this shape, no additional text:
{
  "mealName": "short descriptive name, e.g. 'Avocado Toast with Egg'",
  "calories": estimated total calories,
  "protein": estimated grams of protein,
  "carbs": estimated grams of carbohydrates,
  "fats": estimated grams of fat,
  "fiber": estimated grams of fiber,
  "sugar": estimated grams of sugar,
  "sodium": estimated milligrams of sodium,
  "portionSuggestion": "a brief, helpful note on the portion size"
}`

const searchSystemPrompt = `You are a nutrition database. Given a food query (in English or another language), return matching food items with nutrition for a standard serving size. Keep food names in the language of the query.

Return ONLY a valid JSON array in this shape, no additional text:
[
  {
    "name": "food name with serving size, e.g. 'Grilled Chicken Breast (100g)'",
    "description": "one-sentence description",
    "calories": calories per serving,
    "protein": grams of protein,
    "carbs": grams of carbohydrates,
    "fats": grams of fat,
    "imageUrl": "URL of a representative public image"
  }
]`

const suggestionSystemPrompt = `Act as a friendly, encouraging, and insightful AI fitness and nutrition coach. Keep each suggestion to one sentence; the tone should be positive and motivational. If protein is low, suggest a high-protein snack; if calories run high for a weight-loss goal, suggest a small swap; if activity is good, praise it and suggest a small addition.

Return ONLY valid JSON in this shape, no additional text:
{"suggestions": ["...", "..."]}`
