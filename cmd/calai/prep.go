package calai

import (
	"fmt"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var prepCmd = &cobra.Command{
	Use:   "prep",
	Short: "Manage prepped meals with per-serving macros",
}

var (
	prepAddName     string
	prepAddServings int
	prepAddCalories float64
	prepAddProtein  float64
	prepAddCarbs    float64
	prepAddFats     float64
)

var prepAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a prepped meal (macros are per serving)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if prepAddName == "" {
			return fmt.Errorf("--name is required")
		}
		if prepAddServings < 1 {
			return fmt.Errorf("--servings must be at least 1")
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			id := a.session.AddPreppedMeal(model.PreppedMeal{
				Name:               prepAddName,
				Servings:           prepAddServings,
				CaloriesPerServing: prepAddCalories,
				ProteinPerServing:  prepAddProtein,
				CarbsPerServing:    prepAddCarbs,
				FatsPerServing:     prepAddFats,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Prepped meal saved: %s (%s)\n", prepAddName, id)
			return nil
		})
	},
}

var prepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prepped meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			if len(data.PreppedMeals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No prepped meals saved.")
				return nil
			}
			for _, m := range data.PreppedMeals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d servings  %.0f kcal/serving (P%.0f C%.0f F%.0f)\n",
					m.ID, m.Name, m.Servings, m.CaloriesPerServing, m.ProteinPerServing, m.CarbsPerServing, m.FatsPerServing)
			}
			return nil
		})
	},
}

var (
	prepLogServings int
	prepLogType     string
	prepLogDate     string
)

var prepLogCmd = &cobra.Command{
	Use:   "log <prep-id>",
	Short: "Log servings of a prepped meal as a meal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if prepLogServings < 1 {
			return fmt.Errorf("--servings must be at least 1")
		}
		mealType, err := parseMealType(prepLogType)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			var meal model.PreppedMeal
			found := false
			for _, m := range data.PreppedMeals {
				if m.ID == args[0] {
					meal = m
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("no prepped meal with id %q", args[0])
			}
			date, err := parseDateOrToday(a, prepLogDate)
			if err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.LogPreppedMeal(u, meal, prepLogServings, mealType, date, a.session.Now())
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d serving(s) of %s as %s on %s\n",
				prepLogServings, meal.Name, mealType, date)
			return nil
		})
	},
}

var prepDeleteCmd = &cobra.Command{
	Use:   "delete <prep-id>",
	Short: "Delete a prepped meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.DeletePreppedMeal(u, args[0])
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Prepped meal %s deleted.\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(prepCmd)
	prepCmd.AddCommand(prepAddCmd, prepListCmd, prepLogCmd, prepDeleteCmd)

	prepAddCmd.Flags().StringVar(&prepAddName, "name", "", "Name of the prepped meal")
	prepAddCmd.Flags().IntVar(&prepAddServings, "servings", 1, "Number of servings prepared")
	prepAddCmd.Flags().Float64Var(&prepAddCalories, "calories", 0, "Calories per serving")
	prepAddCmd.Flags().Float64Var(&prepAddProtein, "protein", 0, "Protein per serving (g)")
	prepAddCmd.Flags().Float64Var(&prepAddCarbs, "carbs", 0, "Carbs per serving (g)")
	prepAddCmd.Flags().Float64Var(&prepAddFats, "fats", 0, "Fats per serving (g)")

	prepLogCmd.Flags().IntVar(&prepLogServings, "servings", 1, "Servings to log")
	prepLogCmd.Flags().StringVar(&prepLogType, "type", "", "Meal type (default inferred from time of day)")
	prepLogCmd.Flags().StringVar(&prepLogDate, "date", "", "Date YYYY-MM-DD (default today)")
}
