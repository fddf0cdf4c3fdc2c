package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type fakeBookingRepository struct {
	bookings      []*domain.Booking
	err           error
	requestedDate time.Time
}

func (r *fakeBookingRepository) GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	r.requestedDate = date
	return r.bookings, r.err
}

type fakeReminderSender struct {
	sent []int64
	errs map[int64]error
}

func (s *fakeReminderSender) SendReminder(ctx context.Context, booking *domain.Booking) error {
	s.sent = append(s.sent, booking.ID)
	if s.errs != nil {
		return s.errs[booking.ID]
	}
	return nil
}

func newTestScheduler(repo *fakeBookingRepository, sender *fakeReminderSender, now time.Time) *Scheduler {
	s := New(repo, sender, time.Hour, &fakeLogger{})
	s.timeProvider = &fakeTimeProvider{now: now}
	return s
}

func TestSweep_SendsRemindersForTomorrow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepository{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed},
		{ID: 2, Status: domain.StatusConfirmed},
	}}
	sender := &fakeReminderSender{}

	newTestScheduler(repo, sender, now).Sweep(context.Background())

	assert.Equal(t, now.AddDate(0, 0, 1), repo.requestedDate)
	assert.Equal(t, []int64{1, 2}, sender.sent)
}

func TestSweep_ContinuesAfterSendFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepository{bookings: []*domain.Booking{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	sender := &fakeReminderSender{errs: map[int64]error{2: errors.New("push failed")}}

	newTestScheduler(repo, sender, now).Sweep(context.Background())

	assert.Equal(t, []int64{1, 2, 3}, sender.sent)
}

func TestSweep_RepositoryError(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepository{err: errors.New("connection refused")}
	sender := &fakeReminderSender{}

	newTestScheduler(repo, sender, now).Sweep(context.Background())
	assert.Empty(t, sender.sent)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepository{}
	sender := &fakeReminderSender{}
	s := newTestScheduler(repo, sender, now)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}

	// Первый проход выполняется сразу при запуске
	require.False(t, repo.requestedDate.IsZero())
}
