package calai

import (
	"fmt"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit the active profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile, goals, and streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			p := data.Profile
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
			fmt.Fprintf(out, "Age %d | %s | %s | %s\n", p.Age, p.Gender,
				service.FormatHeight(p.HeightInches, p.UnitSystem), p.ActivityLevel)
			fmt.Fprintf(out, "Goal: %s | Units: %s | Theme: %s\n", p.PrimaryGoal, p.UnitSystem, data.ThemePreference)
			fmt.Fprintf(out, "Weight: %s (goal %s)\n",
				service.FormatWeight(data.CurrentWeightLbs(), p.UnitSystem),
				service.FormatWeight(data.GoalWeightLbs, p.UnitSystem))
			fmt.Fprintf(out, "Daily targets: %.0f kcal | P %dg | C %dg | F %dg | %s water | %d steps\n",
				data.MacroGoals.Calories(), data.MacroGoals.Protein, data.MacroGoals.Carbs,
				data.MacroGoals.Fats, service.FormatWater(data.WaterGoal, p.UnitSystem), data.StepsGoal)
			fmt.Fprintf(out, "Day streak: %d\n", data.DayStreak)
			return nil
		})
	},
}

var (
	profileName     string
	profileAge      int
	profileGender   string
	profileHeightIn float64
	profileActivity string
	profileGoal     string
	profileUnits    string
	profileAvatar   string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile attributes and recompute macro goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			p := data.Profile
			if cmd.Flags().Changed("name") {
				p.Name = profileName
			}
			if cmd.Flags().Changed("age") {
				if profileAge <= 0 {
					return fmt.Errorf("--age must be a positive number")
				}
				p.Age = profileAge
			}
			if cmd.Flags().Changed("gender") {
				p.Gender, err = parseGender(profileGender)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("height") {
				if profileHeightIn <= 0 {
					return fmt.Errorf("--height must be a positive number of inches")
				}
				p.HeightInches = profileHeightIn
			}
			if cmd.Flags().Changed("activity") {
				p.ActivityLevel, err = parseActivityLevel(profileActivity)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("goal") {
				p.PrimaryGoal, err = parsePrimaryGoal(profileGoal)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("units") {
				switch profileUnits {
				case "imperial":
					p.UnitSystem = model.UnitImperial
				case "metric":
					p.UnitSystem = model.UnitMetric
				default:
					return fmt.Errorf("invalid units %q (expected imperial or metric)", profileUnits)
				}
			}
			if cmd.Flags().Changed("avatar") {
				p.Avatar = profileAvatar
			}

			a.session.Apply(func(u model.UserData) model.UserData {
				return service.UpdateProfile(u, p)
			})
			updated, _ := a.session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated. Daily goals: %.0f kcal | P %dg | C %dg | F %dg\n",
				updated.MacroGoals.Calories(), updated.MacroGoals.Protein,
				updated.MacroGoals.Carbs, updated.MacroGoals.Fats)
			return nil
		})
	},
}

var (
	macrosProtein int
	macrosCarbs   int
	macrosFats    int
)

var macrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "Override the daily macro targets directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		if macrosProtein < 0 || macrosCarbs < 0 || macrosFats < 0 {
			return fmt.Errorf("macro targets must not be negative")
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			goals := model.MacroGoals{Protein: macrosProtein, Carbs: macrosCarbs, Fats: macrosFats}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.UpdateMacroGoals(u, goals)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Macro goals set: %.0f kcal | P %dg | C %dg | F %dg\n",
				goals.Calories(), goals.Protein, goals.Carbs, goals.Fats)
			return nil
		})
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme <light|dark|system>",
	Short: "Set the theme preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pref model.ThemePreference
		switch args[0] {
		case "light":
			pref = model.ThemeLight
		case "dark":
			pref = model.ThemeDark
		case "system":
			pref = model.ThemeSystem
		default:
			return fmt.Errorf("invalid theme %q (expected light, dark, or system)", args[0])
		}
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.SetThemePreference(u, pref)
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", pref)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd, macrosCmd, themeCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)

	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileUpdateCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileUpdateCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male, female, or other")
	profileUpdateCmd.Flags().Float64Var(&profileHeightIn, "height", 0, "Height in inches")
	profileUpdateCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary, light, moderate, active, very-active")
	profileUpdateCmd.Flags().StringVar(&profileGoal, "goal", "", "Primary goal: lose, maintain, gain")
	profileUpdateCmd.Flags().StringVar(&profileUnits, "units", "", "Display units: imperial or metric")
	profileUpdateCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Avatar emoji or URL")

	macrosCmd.Flags().IntVar(&macrosProtein, "protein", 0, "Protein target (g)")
	macrosCmd.Flags().IntVar(&macrosCarbs, "carbs", 0, "Carbs target (g)")
	macrosCmd.Flags().IntVar(&macrosFats, "fats", 0, "Fats target (g)")
}
