package calai

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calai-app/calai/internal/config"
	"github.com/calai-app/calai/internal/db"
	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/internal/session"
	"github.com/calai-app/calai/internal/store"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "calai",
	Short: "calai tracks meals, activity, water, and weight from your terminal",
	Long:  "calai is a local-first nutrition and activity tracker with multi-user profiles, AI-assisted logging, reports, and reminders.",
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the calai database")
}

// app bundles the wired dependencies commands work against.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *session.Session
}

// withApp loads configuration, opens the store, and hands a fully wired app
// to the command body, closing everything afterwards.
func withApp(run func(*app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	sqldb, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	if err := db.Migrate(sqldb); err != nil {
		return err
	}

	sess, err := session.New(store.New(sqldb, logger), logger)
	if err != nil {
		return err
	}

	return run(&app{cfg: cfg, logger: logger, session: sess})
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Environment == "production" || cfg.Logging.Format == "json" {
		return zap.NewProduction()
	}
	zcfg := zap.NewDevelopmentConfig()
	if err := zcfg.Level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	return zcfg.Build()
}

// requireUser fetches the active user's snapshot or explains how to get one.
func requireUser(a *app) (model.UserData, error) {
	data, ok := a.session.Current()
	if !ok {
		return model.UserData{}, fmt.Errorf("no active user; run 'calai user login' or 'calai user register' first")
	}
	return data, nil
}

// parseDateOrToday validates an optional YYYY-MM-DD flag, defaulting to the
// session clock's calendar day.
func parseDateOrToday(a *app, raw string) (string, error) {
	if raw == "" {
		return service.DayKey(a.session.Now()), nil
	}
	if _, err := service.ParseDayKey(raw); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
	}
	return raw, nil
}

func parseMealType(raw string) (model.MealType, error) {
	if raw == "" {
		return service.MealTypeForHour(time.Now().Hour()), nil
	}
	for _, t := range model.MealTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q (expected Breakfast, Lunch, Dinner, or Snacks)", raw)
}
