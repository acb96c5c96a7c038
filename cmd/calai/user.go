package calai

import (
	"fmt"

	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage profiles and the active session",
}

var (
	registerName     string
	registerAge      int
	registerGender   string
	registerHeightIn float64
	registerActivity string
	registerGoal     string
	registerUnits    string
	registerWeight   float64
	registerAvatar   string
)

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new profile and log in as it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if registerName == "" {
			return fmt.Errorf("--name is required")
		}
		if registerAge <= 0 {
			return fmt.Errorf("--age must be a positive number")
		}
		if registerHeightIn <= 0 {
			return fmt.Errorf("--height must be a positive number of inches")
		}
		if registerWeight <= 0 {
			return fmt.Errorf("--weight must be a positive number of lbs")
		}
		gender, err := parseGender(registerGender)
		if err != nil {
			return err
		}
		activity, err := parseActivityLevel(registerActivity)
		if err != nil {
			return err
		}
		goal, err := parsePrimaryGoal(registerGoal)
		if err != nil {
			return err
		}
		units := model.UnitImperial
		if registerUnits == "metric" {
			units = model.UnitMetric
		}

		profile := model.Profile{
			Name:          registerName,
			Age:           registerAge,
			Avatar:        registerAvatar,
			Gender:        gender,
			HeightInches:  registerHeightIn,
			ActivityLevel: activity,
			PrimaryGoal:   goal,
			UnitSystem:    units,
		}
		return withApp(func(a *app) error {
			id, err := a.session.Register(profile, registerWeight)
			if err != nil {
				return err
			}
			data, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", profile.Name, id)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goals: %.0f kcal | P %dg | C %dg | F %dg\n",
				data.MacroGoals.Calories(), data.MacroGoals.Protein, data.MacroGoals.Carbs, data.MacroGoals.Fats)
			return nil
		})
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login <user-id>",
	Short: "Switch the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.session.Login(args[0]); err != nil {
				return err
			}
			data, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", data.Profile.Name)
			return nil
		})
	},
}

var userLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			users := a.session.Users()
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles yet; run 'calai user register'")
				return nil
			}
			current, _ := a.session.CurrentID()
			for _, p := range users {
				marker := " "
				if p.ID == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", marker, p.ID, p.Name)
			}
			return nil
		})
	},
}

var userDeleteConfirm bool

var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active profile and all its data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !userDeleteConfirm {
			return fmt.Errorf("deletion is irreversible; pass --yes to confirm")
		}
		return withApp(func(a *app) error {
			if err := a.session.DeleteCurrentUser(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile deleted")
			return nil
		})
	},
}

func parseGender(raw string) (model.Gender, error) {
	switch raw {
	case "male":
		return model.GenderMale, nil
	case "female":
		return model.GenderFemale, nil
	case "other", "":
		return model.GenderOther, nil
	}
	return "", fmt.Errorf("invalid gender %q (expected male, female, or other)", raw)
}

func parseActivityLevel(raw string) (model.ActivityLevel, error) {
	levels := map[string]model.ActivityLevel{
		"sedentary":   model.ActivitySedentary,
		"light":       model.ActivityLightlyActive,
		"moderate":    model.ActivityModeratelyActive,
		"active":      model.ActivityActive,
		"very-active": model.ActivityVeryActive,
	}
	if level, ok := levels[raw]; ok {
		return level, nil
	}
	return "", fmt.Errorf("invalid activity level %q (expected sedentary, light, moderate, active, or very-active)", raw)
}

func parsePrimaryGoal(raw string) (model.PrimaryGoal, error) {
	switch raw {
	case "lose":
		return model.GoalLoseWeight, nil
	case "maintain", "":
		return model.GoalMaintainWeight, nil
	case "gain":
		return model.GoalGainMuscle, nil
	}
	return "", fmt.Errorf("invalid goal %q (expected lose, maintain, or gain)", raw)
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userRegisterCmd, userLoginCmd, userLogoutCmd, userListCmd, userDeleteCmd)

	userRegisterCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	userRegisterCmd.Flags().IntVar(&registerAge, "age", 0, "Age in years")
	userRegisterCmd.Flags().StringVar(&registerGender, "gender", "other", "Gender: male, female, or other")
	userRegisterCmd.Flags().Float64Var(&registerHeightIn, "height", 0, "Height in inches")
	userRegisterCmd.Flags().StringVar(&registerActivity, "activity", "sedentary", "Activity level: sedentary, light, moderate, active, very-active")
	userRegisterCmd.Flags().StringVar(&registerGoal, "goal", "maintain", "Primary goal: lose, maintain, gain")
	userRegisterCmd.Flags().StringVar(&registerUnits, "units", "imperial", "Display units: imperial or metric")
	userRegisterCmd.Flags().Float64Var(&registerWeight, "weight", 0, "Current weight in lbs")
	userRegisterCmd.Flags().StringVar(&registerAvatar, "avatar", "", "Avatar emoji or URL")

	userDeleteCmd.Flags().BoolVar(&userDeleteConfirm, "yes", false, "Confirm deletion")
}
