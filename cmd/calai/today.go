package calai

import (
	"fmt"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's intake, activity, water, and remaining budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			date, err := parseDateOrToday(a, todayDate)
			if err != nil {
				return err
			}

			summary := service.SummarizeDay(data, date)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", date)
			fmt.Fprintf(out, "Streak: %d day(s)\n", data.DayStreak)
			fmt.Fprintf(out, "Intake: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				summary.Nutrition.Calories, summary.Nutrition.Protein, summary.Nutrition.Carbs, summary.Nutrition.Fats)
			fmt.Fprintf(out, "Burned: %.0f kcal\n", summary.CaloriesBurned)
			fmt.Fprintf(out, "Goal: %.0f kcal | Remaining: %.0f kcal\n", summary.CalorieGoal, summary.Remaining())
			fmt.Fprintf(out, "Water: %s of %s\n",
				service.FormatWater(data.WaterIntakeHistory[date], data.Profile.UnitSystem),
				service.FormatWater(data.WaterGoal, data.Profile.UnitSystem))
			fmt.Fprintf(out, "Steps: %d of %d\n", data.StepsHistory[date], data.StepsGoal)

			grouped := service.GroupMealsByType(data, date)
			for _, mealType := range model.MealTypes {
				meals := grouped[mealType]
				if len(meals) == 0 {
					continue
				}
				fmt.Fprintf(out, "\n%s:\n", mealType)
				for _, m := range meals {
					fmt.Fprintf(out, "  [%d] %s  %.0f kcal\n", m.Index, m.Name, m.Calories)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
