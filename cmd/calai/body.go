package calai

import (
	"fmt"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var (
	weightCurrent float64
	weightGoal    float64
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Update today's weight and the goal weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		if weightCurrent <= 0 {
			return fmt.Errorf("--current must be a positive number of lbs")
		}
		if weightGoal <= 0 {
			return fmt.Errorf("--goal must be a positive number of lbs")
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.UpdateWeight(u, weightCurrent, weightGoal, a.session.Now())
			})
			data, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Weight updated: %s (goal %s)\n",
				service.FormatWeight(weightCurrent, data.Profile.UnitSystem),
				service.FormatWeight(weightGoal, data.Profile.UnitSystem))
			return nil
		})
	},
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the weight history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			for _, entry := range data.WeightHistory {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					entry.Date, service.FormatWeight(entry.WeightLbs, data.Profile.UnitSystem))
			}
			return nil
		})
	},
}

var (
	waterAmount float64
	waterDate   string
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Set a day's water intake (absolute fl oz, not an increment)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if waterAmount < 0 {
			return fmt.Errorf("--amount must not be negative")
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			date, err := parseDateOrToday(a, waterDate)
			if err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.UpdateWaterIntake(u, date, waterAmount)
			})
			data, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %s\n", date,
				service.FormatWater(waterAmount, data.Profile.UnitSystem))
			return nil
		})
	},
}

var (
	stepsCount int
	stepsDate  string
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Set a day's step count",
	RunE: func(cmd *cobra.Command, args []string) error {
		if stepsCount < 0 {
			return fmt.Errorf("--count must not be negative")
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			date, err := parseDateOrToday(a, stepsDate)
			if err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.UpdateSteps(u, date, stepsCount)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Steps on %s: %d\n", date, stepsCount)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd, waterCmd, stepsCmd)
	weightCmd.AddCommand(weightHistoryCmd)

	weightCmd.Flags().Float64Var(&weightCurrent, "current", 0, "Current weight in lbs")
	weightCmd.Flags().Float64Var(&weightGoal, "goal", 0, "Goal weight in lbs")

	waterCmd.Flags().Float64Var(&waterAmount, "amount", 0, "Total fl oz for the day")
	waterCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")

	stepsCmd.Flags().IntVar(&stepsCount, "count", 0, "Total steps for the day")
	stepsCmd.Flags().StringVar(&stepsDate, "date", "", "Date YYYY-MM-DD (default today)")
}
