package calai

import (
	"context"
	"fmt"
	"time"

	"github.com/calai-app/calai/internal/ai"
	"github.com/calai-app/calai/internal/service"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Weekly averages, trends, and AI insights",
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show trailing 7-day averages and BMI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			avg := service.AverageWeek(data, a.session.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Days with meals: %d of 7\n", avg.DaysWithMeals)
			fmt.Fprintf(out, "Avg intake: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				avg.Nutrition.Calories, avg.Nutrition.Protein, avg.Nutrition.Carbs, avg.Nutrition.Fats)
			fmt.Fprintf(out, "Avg burned: %.0f kcal\n", avg.CaloriesBurned)

			bmi := service.BMI(data.CurrentWeightLbs(), data.Profile.HeightInches)
			fmt.Fprintf(out, "BMI: %.1f (%s)\n", bmi, service.CategorizeBMI(bmi))
			fmt.Fprintf(out, "Weight: %s | Goal: %s\n",
				service.FormatWeight(data.CurrentWeightLbs(), data.Profile.UnitSystem),
				service.FormatWeight(data.GoalWeightLbs, data.Profile.UnitSystem))
			return nil
		})
	},
}

var reportSeriesDays int

var reportSeriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show the per-day calorie and activity series",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportSeriesDays != 7 && reportSeriesDays != 30 {
			return fmt.Errorf("--days must be 7 or 30")
		}
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			series := service.ReportSeries(data, a.session.Now(), reportSeriesDays)
			out := cmd.OutOrStdout()
			for _, point := range series {
				fmt.Fprintf(out, "%s  in %5.0f kcal  out %5.0f kcal  P %.0fg C %.0fg F %.0fg\n",
					point.Date, point.Nutrition.Calories, point.CaloriesBurned,
					point.Nutrition.Protein, point.Nutrition.Carbs, point.Nutrition.Fats)
			}
			return nil
		})
	},
}

var reportSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate 2-3 AI coaching suggestions from the 7-day averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			intelligence, err := newFoodIntelligence(a)
			if err != nil {
				return err
			}

			avg := service.AverageWeek(data, a.session.Now())
			payload := ai.SuggestionPayload{
				Profile:           data.Profile,
				MacroGoals:        data.MacroGoals,
				CalorieGoal:       data.MacroGoals.Calories(),
				AvgNutrition:      avg.Nutrition,
				AvgCaloriesBurned: avg.CaloriesBurned,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			suggestions, err := intelligence.WeeklySuggestions(ctx, payload)
			if err != nil {
				return fmt.Errorf("could not generate insights right now: %w", err)
			}
			for _, s := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", s)
			}
			return nil
		})
	},
}

// newFoodIntelligence wires the AI collaborator from config.
func newFoodIntelligence(a *app) (*ai.FoodIntelligence, error) {
	if a.cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("AI features need CALAI_AI_API_KEY to be set")
	}
	client, err := ai.NewClient(a.cfg.AI.BaseURL, a.cfg.AI.APIKey, a.cfg.AI.Model, a.logger)
	if err != nil {
		return nil, err
	}
	return ai.NewFoodIntelligence(client, a.logger), nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportWeekCmd, reportSeriesCmd, reportSuggestCmd)
	reportSeriesCmd.Flags().IntVar(&reportSeriesDays, "days", 7, "Window length: 7 or 30")
}
