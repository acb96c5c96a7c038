package calai

import (
	"fmt"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log meals and activities",
}

var (
	logMealName     string
	logMealCalories float64
	logMealProtein  float64
	logMealCarbs    float64
	logMealFats     float64
	logMealFiber    float64
	logMealSugar    float64
	logMealSodium   float64
	logMealType     string
	logMealDate     string
)

var logMealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log a meal manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logMealName == "" {
			return fmt.Errorf("--name is required")
		}
		if logMealCalories < 0 || logMealProtein < 0 || logMealCarbs < 0 || logMealFats < 0 {
			return fmt.Errorf("macro values must not be negative")
		}
		mealType, err := parseMealType(logMealType)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			date, err := parseDateOrToday(a, logMealDate)
			if err != nil {
				return err
			}
			meal := model.Meal{
				Name:     logMealName,
				Calories: logMealCalories,
				Protein:  logMealProtein,
				Carbs:    logMealCarbs,
				Fats:     logMealFats,
				Type:     mealType,
				Date:     date,
			}
			if cmd.Flags().Changed("fiber") {
				meal.Fiber = &logMealFiber
			}
			if cmd.Flags().Changed("sugar") {
				meal.Sugar = &logMealSugar
			}
			if cmd.Flags().Changed("sodium") {
				meal.SodiumMg = &logMealSodium
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.LogMeal(u, meal, a.session.Now())
			})
			data, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s, %.0f kcal) on %s\n", meal.Name, meal.Type, meal.Calories, meal.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Day streak: %d\n", data.DayStreak)
			return nil
		})
	},
}

var (
	logActivityType     string
	logActivityName     string
	logActivityDuration int
	logActivityDate     string
)

var logActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Log an exercise session; calories come from the MET formula",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logActivityType == "" {
			return fmt.Errorf("--type is required")
		}
		if logActivityDuration <= 0 {
			return fmt.Errorf("--duration must be a positive number of minutes")
		}
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			date, err := parseDateOrToday(a, logActivityDate)
			if err != nil {
				return err
			}
			entry, ok := service.LookupActivity(data, logActivityType)
			if !ok {
				return fmt.Errorf("unknown activity %q; see 'calai activity list' or add one with 'calai activity add'", logActivityType)
			}
			name := logActivityName
			if name == "" {
				name = entry.Type
			}
			activity := model.Activity{
				Name:            name,
				Type:            entry.Type,
				DurationMinutes: logActivityDuration,
				CaloriesBurned:  service.CaloriesBurned(entry.MET, data.CurrentWeightLbs(), logActivityDuration),
				Date:            date,
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.LogActivity(u, activity, a.session.Now())
			})
			updated, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s for %d min (%.0f kcal burned) on %s\n",
				activity.Type, activity.DurationMinutes, activity.CaloriesBurned, activity.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Day streak: %d\n", updated.DayStreak)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove logged records by position",
}

var removeMealCmd = &cobra.Command{
	Use:   "meal <index>",
	Short: "Remove a logged meal by its diary index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.RemoveMeal(u, index)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed meal %d\n", index)
			return nil
		})
	},
}

var removeActivityCmd = &cobra.Command{
	Use:   "activity <index>",
	Short: "Remove a logged activity by its diary index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.RemoveActivity(u, index)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %d\n", index)
			return nil
		})
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage the activity catalog",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin and custom activities with MET values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			for _, entry := range service.ActivityCatalog(data) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s MET %.1f\n", entry.Emoji, entry.Type, entry.MET)
			}
			return nil
		})
	},
}

var (
	addActivityType  string
	addActivityEmoji string
	addActivityMET   float64
)

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom activity with its MET value",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addActivityType == "" {
			return fmt.Errorf("--type is required")
		}
		if addActivityMET <= 0 {
			return fmt.Errorf("--met must be a positive number")
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			custom := model.CustomActivity{Type: addActivityType, Emoji: addActivityEmoji, MET: addActivityMET}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.AddCustomActivity(u, custom)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity %s (MET %.1f)\n", custom.Type, custom.MET)
			return nil
		})
	},
}

func parseIndexArg(raw string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(raw, "%d", &index); err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index %q", raw)
	}
	return index, nil
}

func init() {
	rootCmd.AddCommand(logCmd, removeCmd, activityCmd)
	logCmd.AddCommand(logMealCmd, logActivityCmd)
	removeCmd.AddCommand(removeMealCmd, removeActivityCmd)
	activityCmd.AddCommand(activityListCmd, activityAddCmd)

	logMealCmd.Flags().StringVar(&logMealName, "name", "", "Meal name")
	logMealCmd.Flags().Float64Var(&logMealCalories, "calories", 0, "Calories")
	logMealCmd.Flags().Float64Var(&logMealProtein, "protein", 0, "Protein grams")
	logMealCmd.Flags().Float64Var(&logMealCarbs, "carbs", 0, "Carb grams")
	logMealCmd.Flags().Float64Var(&logMealFats, "fats", 0, "Fat grams")
	logMealCmd.Flags().Float64Var(&logMealFiber, "fiber", 0, "Fiber grams")
	logMealCmd.Flags().Float64Var(&logMealSugar, "sugar", 0, "Sugar grams")
	logMealCmd.Flags().Float64Var(&logMealSodium, "sodium", 0, "Sodium milligrams")
	logMealCmd.Flags().StringVar(&logMealType, "type", "", "Meal type: Breakfast, Lunch, Dinner, Snacks (default by time of day)")
	logMealCmd.Flags().StringVar(&logMealDate, "date", "", "Date YYYY-MM-DD (default today)")

	logActivityCmd.Flags().StringVar(&logActivityType, "type", "", "Activity type from the catalog")
	logActivityCmd.Flags().StringVar(&logActivityName, "name", "", "Label for this session (default the type)")
	logActivityCmd.Flags().IntVar(&logActivityDuration, "duration", 0, "Duration in minutes")
	logActivityCmd.Flags().StringVar(&logActivityDate, "date", "", "Date YYYY-MM-DD (default today)")

	activityAddCmd.Flags().StringVar(&addActivityType, "type", "", "Activity name")
	activityAddCmd.Flags().StringVar(&addActivityEmoji, "emoji", "🏅", "Display emoji")
	activityAddCmd.Flags().Float64Var(&addActivityMET, "met", 0, "MET intensity value")
}
