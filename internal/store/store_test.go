package store

import (
	"path/filepath"
	"testing"

	"github.com/calai-app/calai/internal/db"
	"github.com/calai-app/calai/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "calai.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })
	require.NoError(t, db.Migrate(sqldb))
	return New(sqldb, zap.NewNop())
}

func TestLoadRegistry_FreshInstallIsEmpty(t *testing.T) {
	s := testStore(t)

	reg, err := s.LoadRegistry()

	assert.NoError(t, err)
	assert.NotNil(t, reg)
	assert.Empty(t, reg)
}

func TestSaveAndLoadRegistry(t *testing.T) {
	s := testStore(t)
	fiber := 4.0
	reg := model.Registry{
		"u1": {
			Profile: model.Profile{ID: "u1", Name: "Alex", UnitSystem: model.UnitImperial},
			LoggedMeals: []model.Meal{
				{Name: "oats", Calories: 350, Fiber: &fiber, Type: model.MealBreakfast, Date: "2025-03-15"},
			},
			WaterIntakeHistory: map[string]float64{"2025-03-15": 64},
			Reminders:          model.DefaultReminders(),
		},
	}

	require.NoError(t, s.SaveRegistry(reg))

	loaded, err := s.LoadRegistry()
	assert.NoError(t, err)
	assert.Equal(t, reg, loaded)
}

func TestSaveRegistry_OverwritesWholesale(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveRegistry(model.Registry{
		"u1": {Profile: model.Profile{ID: "u1"}},
		"u2": {Profile: model.Profile{ID: "u2"}},
	}))

	require.NoError(t, s.SaveRegistry(model.Registry{
		"u1": {Profile: model.Profile{ID: "u1", Name: "renamed"}},
	}))

	loaded, err := s.LoadRegistry()
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "renamed", loaded["u1"].Profile.Name)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.LoadCurrentUser()
	assert.NoError(t, err)
	assert.False(t, ok, "fresh install has no session")

	require.NoError(t, s.SaveCurrentUser("u1"))
	id, ok, err := s.LoadCurrentUser()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	// An empty id clears the session.
	require.NoError(t, s.SaveCurrentUser(""))
	_, ok, err = s.LoadCurrentUser()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMigrate_Idempotent(t *testing.T) {
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "calai.db"))
	require.NoError(t, err)
	defer sqldb.Close()

	require.NoError(t, db.Migrate(sqldb))
	var first int
	require.NoError(t, sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&first))

	require.NoError(t, db.Migrate(sqldb))
	var second int
	require.NoError(t, sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&second))

	assert.Equal(t, first, second, "re-running migrations applies nothing new")
	assert.GreaterOrEqual(t, first, 1)
}
