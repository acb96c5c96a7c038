package session

import (
	"fmt"
	"time"

	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage defines the durable persistence the session needs. The SQLite
// store implements it; tests substitute mocks.
type Storage interface {
	LoadRegistry() (model.Registry, error)
	SaveRegistry(reg model.Registry) error
	LoadCurrentUser() (string, bool, error)
	SaveCurrentUser(id string) error
}

// Session owns the in-memory user registry and the active-user pointer,
// writing both through to durable storage on every change. All mutation of
// per-user state flows through Apply, which replaces the whole aggregate.
type Session struct {
	storage  Storage
	logger   *zap.Logger
	registry model.Registry
	current  string
	now      func() time.Time
}

// New loads the registry and session pointer from storage. A current-user
// id that no longer resolves to a registry entry is discarded.
func New(storage Storage, logger *zap.Logger) (*Session, error) {
	reg, err := storage.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("load user registry: %w", err)
	}
	s := &Session{
		storage:  storage,
		logger:   logger,
		registry: reg,
		now:      time.Now,
	}
	id, ok, err := storage.LoadCurrentUser()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if ok {
		if _, exists := reg[id]; exists {
			s.current = id
		} else {
			logger.Warn("stored session points at unknown user, clearing",
				zap.String("user_id", id),
			)
		}
	}
	return s, nil
}

// SetClock overrides the process clock, for tests.
func (s *Session) SetClock(now func() time.Time) { s.now = now }

// Register creates a new user seeded with defaults, persists it, and makes
// it the active user.
func (s *Session) Register(profile model.Profile, currentWeightLbs float64) (string, error) {
	profile.ID = uuid.NewString()
	data := service.NewUserData(profile, currentWeightLbs, s.now())

	s.registry[profile.ID] = data
	if err := s.storage.SaveRegistry(s.registry); err != nil {
		return "", fmt.Errorf("persist new user: %w", err)
	}

	s.current = profile.ID
	if err := s.storage.SaveCurrentUser(profile.ID); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", profile.ID),
		zap.String("name", profile.Name),
	)
	return profile.ID, nil
}

// Login makes an existing user the active one.
func (s *Session) Login(id string) error {
	if _, ok := s.registry[id]; !ok {
		return fmt.Errorf("unknown user %q", id)
	}
	s.current = id
	if err := s.storage.SaveCurrentUser(id); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info("user logged in", zap.String("user_id", id))
	return nil
}

// Logout clears the active user.
func (s *Session) Logout() error {
	s.current = ""
	if err := s.storage.SaveCurrentUser(""); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// DeleteCurrentUser removes the active user's aggregate wholesale and
// clears the session.
func (s *Session) DeleteCurrentUser() error {
	if s.current == "" {
		return fmt.Errorf("no active user")
	}
	id := s.current
	delete(s.registry, id)
	if err := s.storage.SaveRegistry(s.registry); err != nil {
		return fmt.Errorf("persist user deletion: %w", err)
	}
	s.current = ""
	if err := s.storage.SaveCurrentUser(""); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// Users lists the registered profiles.
func (s *Session) Users() []model.Profile {
	profiles := make([]model.Profile, 0, len(s.registry))
	for _, data := range s.registry {
		profiles = append(profiles, data.Profile)
	}
	return profiles
}

// CurrentID returns the active user id, or false when logged out.
func (s *Session) CurrentID() (string, bool) {
	if s.current == "" {
		return "", false
	}
	return s.current, true
}

// Current returns a snapshot of the active user's aggregate.
func (s *Session) Current() (model.UserData, bool) {
	if s.current == "" {
		return model.UserData{}, false
	}
	data, ok := s.registry[s.current]
	return data, ok
}

// Apply runs an update function against the active user's aggregate and
// writes the result through to storage. With no active user the update is
// silently dropped. A persistence failure is logged but does not roll back
// the in-memory state; memory and disk may diverge until the next
// successful write.
func (s *Session) Apply(update func(model.UserData) model.UserData) {
	if s.current == "" {
		return
	}
	data, ok := s.registry[s.current]
	if !ok {
		return
	}
	s.registry[s.current] = update(data)
	if err := s.storage.SaveRegistry(s.registry); err != nil {
		s.logger.Error("failed to persist update, in-memory state retained",
			zap.Error(err),
			zap.String("user_id", s.current),
		)
	}
}

// AddPreppedMeal assigns a durable identifier and appends the prepped meal.
func (s *Session) AddPreppedMeal(meal model.PreppedMeal) string {
	meal.ID = uuid.NewString()
	s.Apply(func(u model.UserData) model.UserData {
		return service.AddPreppedMeal(u, meal)
	})
	return meal.ID
}

// Now exposes the session clock so callers date their records consistently.
func (s *Session) Now() time.Time { return s.now() }
