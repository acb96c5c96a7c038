package calai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/calai-app/calai/internal/barcode"
	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search foods, scan barcodes, and analyze meal photos",
}

var (
	foodSearchLog  bool
	foodSearchType string
	foodSearchDate string
)

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name with AI nutrition estimates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			intelligence, err := newFoodIntelligence(a)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			results, err := intelligence.SearchFood(ctx, query)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}

			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s  %.0f kcal (P%.0f C%.0f F%.0f)  %s\n",
					i, r.Name, r.Calories, r.Protein, r.Carbs, r.Fats, r.Description)
			}

			if !foodSearchLog {
				return nil
			}
			picked := results[0]
			mealType, err := parseMealType(foodSearchType)
			if err != nil {
				return err
			}
			date, err := parseDateOrToday(a, foodSearchDate)
			if err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				u = service.AddFoodToRecents(u, picked)
				return service.LogMeal(u, model.Meal{
					Name:        picked.Name,
					Description: picked.Description,
					Calories:    picked.Calories,
					Protein:     picked.Protein,
					Carbs:       picked.Carbs,
					Fats:        picked.Fats,
					Type:        mealType,
					Date:        date,
				}, a.session.Now())
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s as %s on %s\n", picked.Name, mealType, date)
			return nil
		})
	},
}

var (
	barcodeLog  bool
	barcodeType string
	barcodeDate string
)

var foodBarcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Look up a product barcode on Open Food Facts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			client := &barcode.Client{}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			product, err := client.Lookup(ctx, args[0])
			if err != nil {
				return err
			}

			name := product.Name
			if product.Brand != "" {
				name = fmt.Sprintf("%s (%s)", product.Name, product.Brand)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %.0f kcal (P%.0f C%.0f F%.0f)\n",
				name, product.Calories, product.Protein, product.Carbs, product.Fats)

			if !barcodeLog {
				return nil
			}
			mealType, err := parseMealType(barcodeType)
			if err != nil {
				return err
			}
			date, err := parseDateOrToday(a, barcodeDate)
			if err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				u = service.AddFoodToRecents(u, model.FoodSearchResult{
					Name:     name,
					Calories: product.Calories,
					Protein:  product.Protein,
					Carbs:    product.Carbs,
					Fats:     product.Fats,
					ImageURL: product.ImageURL,
				})
				return service.LogMeal(u, model.Meal{
					Name:     name,
					Calories: product.Calories,
					Protein:  product.Protein,
					Carbs:    product.Carbs,
					Fats:     product.Fats,
					Type:     mealType,
					Date:     date,
				}, a.session.Now())
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s as %s on %s\n", name, mealType, date)
			return nil
		})
	},
}

var (
	analyzeLog  bool
	analyzeDate string
)

var foodAnalyzeCmd = &cobra.Command{
	Use:   "analyze <photo.jpg>",
	Short: "Estimate macros from a meal photo with AI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if _, err := requireUser(a); err != nil {
				return err
			}
			intelligence, err := newFoodIntelligence(a)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read photo: %w", err)
			}
			encoded := base64.StdEncoding.EncodeToString(raw)

			ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
			defer cancel()
			analysis, err := intelligence.AnalyzeMealPhoto(ctx, encoded)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %.0f kcal (P%.0f C%.0f F%.0f)  %s\n",
				analysis.Name, analysis.Calories, analysis.Protein, analysis.Carbs, analysis.Fats, analysis.Type)
			if analysis.PortionSuggestion != "" {
				fmt.Fprintf(out, "Portion: %s\n", analysis.PortionSuggestion)
			}

			if !analyzeLog {
				return nil
			}
			date, err := parseDateOrToday(a, analyzeDate)
			if err != nil {
				return err
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.LogMeal(u, model.Meal{
					Name:     analysis.Name,
					Calories: analysis.Calories,
					Protein:  analysis.Protein,
					Carbs:    analysis.Carbs,
					Fats:     analysis.Fats,
					Fiber:    analysis.Fiber,
					Sugar:    analysis.Sugar,
					SodiumMg: analysis.SodiumMg,
					Type:     analysis.Type,
					Date:     date,
				}, a.session.Now())
			})
			fmt.Fprintf(out, "Logged %s as %s on %s\n", analysis.Name, analysis.Type, date)
			return nil
		})
	},
}

var (
	favoriteCalories float64
	favoriteProtein  float64
	favoriteCarbs    float64
	favoriteFats     float64
)

var foodFavoriteCmd = &cobra.Command{
	Use:   "favorite <name>",
	Short: "Toggle a food in the favorites list (name match is case-insensitive)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			food := model.FoodSearchResult{
				Name:     name,
				Calories: favoriteCalories,
				Protein:  favoriteProtein,
				Carbs:    favoriteCarbs,
				Fats:     favoriteFats,
			}
			// Prefer the stored macros when toggling off an existing favorite.
			for _, f := range data.FavoriteFoods {
				if strings.EqualFold(f.Name, name) {
					food = f
					break
				}
			}
			a.session.Apply(func(u model.UserData) model.UserData {
				return service.ToggleFavorite(u, food)
			})
			updated, _ := a.session.Current()
			for _, f := range updated.FavoriteFoods {
				if strings.EqualFold(f.Name, name) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", name)
					return nil
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", name)
			return nil
		})
	},
}

var foodFavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			if len(data.FavoriteFoods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
				return nil
			}
			for _, f := range data.FavoriteFoods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %.0f kcal (P%.0f C%.0f F%.0f)\n",
					f.Name, f.Calories, f.Protein, f.Carbs, f.Fats)
			}
			return nil
		})
	},
}

var foodRecentsCmd = &cobra.Command{
	Use:   "recents",
	Short: "List recently logged foods, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			if len(data.RecentFoods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recent foods.")
				return nil
			}
			for _, f := range data.RecentFoods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %.0f kcal (P%.0f C%.0f F%.0f)\n",
					f.Name, f.Calories, f.Protein, f.Carbs, f.Fats)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodBarcodeCmd, foodAnalyzeCmd, foodFavoriteCmd, foodFavoritesCmd, foodRecentsCmd)

	foodSearchCmd.Flags().BoolVar(&foodSearchLog, "log", false, "Log the top result as a meal")
	foodSearchCmd.Flags().StringVar(&foodSearchType, "type", "", "Meal type when logging (default inferred from time of day)")
	foodSearchCmd.Flags().StringVar(&foodSearchDate, "date", "", "Date YYYY-MM-DD when logging (default today)")

	foodBarcodeCmd.Flags().BoolVar(&barcodeLog, "log", false, "Log the product as a meal")
	foodBarcodeCmd.Flags().StringVar(&barcodeType, "type", "", "Meal type when logging (default inferred from time of day)")
	foodBarcodeCmd.Flags().StringVar(&barcodeDate, "date", "", "Date YYYY-MM-DD when logging (default today)")

	foodAnalyzeCmd.Flags().BoolVar(&analyzeLog, "log", false, "Log the analyzed meal")
	foodAnalyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "Date YYYY-MM-DD when logging (default today)")

	foodFavoriteCmd.Flags().Float64Var(&favoriteCalories, "calories", 0, "Calories for a new favorite")
	foodFavoriteCmd.Flags().Float64Var(&favoriteProtein, "protein", 0, "Protein (g) for a new favorite")
	foodFavoriteCmd.Flags().Float64Var(&favoriteCarbs, "carbs", 0, "Carbs (g) for a new favorite")
	foodFavoriteCmd.Flags().Float64Var(&favoriteFats, "fats", 0, "Fats (g) for a new favorite")
}
