package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/calai-app/calai/pkg/model"
	"go.uber.org/zap"
)

// Notifier delivers a (title, body) notification. Delivery is a
// collaborator concern; the scheduler only decides when to fire.
type Notifier interface {
	Notify(title, body string) error
}

// Scheduler polls the clock against the active user's reminder
// configuration and fires at most one notification per slot per calendar
// day. Fired markers live for the scheduler's lifetime only: switching
// users or changing the configuration must tear this scheduler down and
// start a fresh one.
type Scheduler struct {
	settings  model.ReminderSettings
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
	permitted func() bool
	interval  time.Duration
	fired     map[model.ReminderType]string // slot -> date already fired
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithPermission injects the platform notification-permission check. The
// scheduler queries it on every tick and never mutates it.
func WithPermission(permitted func() bool) Option {
	return func(s *Scheduler) { s.permitted = permitted }
}

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// New creates a scheduler for one user's reminder configuration.
func New(settings model.ReminderSettings, notifier Notifier, logger *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
		permitted: func() bool { return true },
		interval:  30 * time.Second,
		fired:     make(map[model.ReminderType]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run polls until the context is cancelled. The caller cancels and
// recreates the scheduler whenever the active user or their reminder
// configuration changes.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick fires every enabled slot whose configured time matches the current
// wall-clock minute and which has not fired yet today.
func (s *Scheduler) tick() {
	if !s.permitted() {
		return
	}
	now := s.now()
	today := now.Format("2006-01-02")
	minute := now.Format("15:04")

	for _, slot := range model.ReminderTypes {
		cfg, ok := s.settings[slot]
		if !ok || !cfg.Enabled || cfg.Time != minute {
			continue
		}
		if s.fired[slot] == today {
			continue
		}
		title, body := messageFor(slot)
		if err := s.notifier.Notify(title, body); err != nil {
			s.logger.Error("failed to deliver reminder",
				zap.Error(err),
				zap.String("slot", string(slot)),
			)
			continue
		}
		s.fired[slot] = today
		s.logger.Info("reminder fired",
			zap.String("slot", string(slot)),
			zap.String("time", minute),
		)
	}
}

func messageFor(slot model.ReminderType) (title, body string) {
	if slot == model.ReminderWater {
		return "💧 Stay Hydrated!", "Time to log your water intake."
	}
	return "🍽️ Meal Time!", fmt.Sprintf("Don't forget to log your %s.", slot)
}
