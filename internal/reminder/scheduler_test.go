package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calai-app/calai/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(title, body string) error {
	args := m.Called(title, body)
	return args.Error(0)
}

func enabledAt(slot model.ReminderType, clock string) model.ReminderSettings {
	settings := model.DefaultReminders()
	settings[slot] = model.Reminder{Enabled: true, Time: clock}
	return settings
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTick_FiresOncePerSlotPerDay(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)
	s := New(enabledAt(model.ReminderWater, "10:00"), notifier, zap.NewNop(), WithClock(fixedClock(at)))

	// Two ticks inside the same minute deliver exactly one notification.
	s.tick()
	s.tick()

	notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestTick_RefiresOnANewDay(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	current := time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)
	s := New(enabledAt(model.ReminderWater, "10:00"), notifier, zap.NewNop(),
		WithClock(func() time.Time { return current }))

	s.tick()
	current = current.AddDate(0, 0, 1)
	s.tick()

	notifier.AssertNumberOfCalls(t, "Notify", 2)
}

func TestTick_SkipsDisabledAndMismatchedSlots(t *testing.T) {
	notifier := new(MockNotifier)

	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)
	settings := model.DefaultReminders() // every slot disabled
	s := New(settings, notifier, zap.NewNop(), WithClock(fixedClock(at)))
	s.tick()

	s = New(enabledAt(model.ReminderLunch, "12:30"), notifier, zap.NewNop(), WithClock(fixedClock(at)))
	s.tick()

	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestTick_RespectsPermission(t *testing.T) {
	notifier := new(MockNotifier)

	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)
	s := New(enabledAt(model.ReminderWater, "10:00"), notifier, zap.NewNop(),
		WithClock(fixedClock(at)),
		WithPermission(func() bool { return false }),
	)

	s.tick()

	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestTick_FailedDeliveryRetries(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("notification center down")).Once()
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)
	s := New(enabledAt(model.ReminderWater, "10:00"), notifier, zap.NewNop(), WithClock(fixedClock(at)))

	// The fired marker is only set on success, so the next tick tries again.
	s.tick()
	s.tick()
	s.tick()

	notifier.AssertNumberOfCalls(t, "Notify", 2)
}

func TestMessageFor(t *testing.T) {
	title, body := messageFor(model.ReminderWater)
	assert.Equal(t, "💧 Stay Hydrated!", title)
	assert.Equal(t, "Time to log your water intake.", body)

	title, body = messageFor(model.ReminderDinner)
	assert.Equal(t, "🍽️ Meal Time!", title)
	assert.Equal(t, "Don't forget to log your Dinner.", body)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	notifier := new(MockNotifier)
	s := New(model.DefaultReminders(), notifier, zap.NewNop(), WithInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
