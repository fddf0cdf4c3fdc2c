package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camp-taezhny/BookingService/internal/domain"
	bookingRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/booking"
	notificationRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/notification"
	pushClient "github.com/camp-taezhny/BookingService/internal/integrations/webpush"
	"github.com/camp-taezhny/BookingService/internal/service/notifications/models"
	"github.com/camp-taezhny/BookingService/pkg/types"
)

// --- fakes ---

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

type fakeNotificationRepository struct {
	created        []*domain.Notification
	reminderExists bool
	subscription   *domain.PushSubscription
	savedSub       *domain.PushSubscription
	deletedSubIDs  []int64
	sentAtIDs      []int64
	notifications  []*domain.Notification
	unread         int
	markReadErr    error
}

func (r *fakeNotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	saved := *n
	saved.ID = int64(len(r.created) + 1)
	saved.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r.created = append(r.created, &saved)
	return &saved, nil
}

func (r *fakeNotificationRepository) GetByPhone(ctx context.Context, phone string) ([]*domain.Notification, error) {
	return r.notifications, nil
}

func (r *fakeNotificationRepository) CountUnreadByPhone(ctx context.Context, phone string) (int, error) {
	return r.unread, nil
}

func (r *fakeNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.markReadErr
}

func (r *fakeNotificationRepository) SetSentAt(ctx context.Context, id int64, sentAt time.Time) error {
	r.sentAtIDs = append(r.sentAtIDs, id)
	return nil
}

func (r *fakeNotificationRepository) ExistsByBookingAndType(ctx context.Context, bookingID int64, notificationType domain.NotificationType) (bool, error) {
	return r.reminderExists, nil
}

func (r *fakeNotificationRepository) SaveSubscription(ctx context.Context, sub *domain.PushSubscription) (*domain.PushSubscription, error) {
	saved := *sub
	saved.ID = 7
	r.savedSub = &saved
	return &saved, nil
}

func (r *fakeNotificationRepository) GetSubscriptionByBooking(ctx context.Context, bookingID int64) (*domain.PushSubscription, error) {
	if r.subscription == nil {
		return nil, notificationRepo.ErrSubscriptionNotFound
	}
	return r.subscription, nil
}

func (r *fakeNotificationRepository) DeleteSubscription(ctx context.Context, id int64) error {
	r.deletedSubIDs = append(r.deletedSubIDs, id)
	return nil
}

type fakeBookingRepository struct {
	booking *domain.Booking
}

func (r *fakeBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

type fakePushClient struct {
	sent []pushClient.Payload
	err  error
}

func (c *fakePushClient) Send(ctx context.Context, sub *domain.PushSubscription, payload pushClient.Payload) error {
	c.sent = append(c.sent, payload)
	return c.err
}

// --- fixtures ---

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		ServiceID:       1,
		ServiceName:     "Медицинская справка",
		Date:            time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		TimeSlot:        types.TimeString("10:15"),
		Phone:           "+7 (912) 345-67-89",
		Status:          domain.StatusConfirmed,
		ReferenceNumber: "20260311-A7K2",
	}
}

func testSubscription() *domain.PushSubscription {
	return &domain.PushSubscription{
		ID:        7,
		BookingID: 42,
		Endpoint:  "https://push.example.org/send/abc",
		P256dhKey: "p256dh-key",
		AuthKey:   "auth-key",
	}
}

func newTestService(repo *fakeNotificationRepository, bookings *fakeBookingRepository, push PushClient) *Service {
	svc := NewService(repo, bookings, push, &fakeLogger{})
	svc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return svc
}

// --- tests ---

func TestSubscribe(t *testing.T) {
	repo := &fakeNotificationRepository{}
	svc := newTestService(repo, &fakeBookingRepository{booking: testBooking()}, nil)

	resp, err := svc.Subscribe(context.Background(), &models.SubscribeRequest{
		BookingID: 42,
		Endpoint:  "https://push.example.org/send/abc",
		Keys:      models.SubscriptionKeys{P256dh: "p256dh-key", Auth: "auth-key"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int64(42), resp.BookingID)
	require.NotNil(t, repo.savedSub)
	assert.Equal(t, "p256dh-key", repo.savedSub.P256dhKey)
}

func TestSubscribe_BookingNotFound(t *testing.T) {
	svc := newTestService(&fakeNotificationRepository{}, &fakeBookingRepository{}, nil)

	_, err := svc.Subscribe(context.Background(), &models.SubscribeRequest{
		BookingID: 99,
		Endpoint:  "https://push.example.org/send/abc",
		Keys:      models.SubscriptionKeys{P256dh: "k", Auth: "a"},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSubscribe_MissingKeys(t *testing.T) {
	svc := newTestService(&fakeNotificationRepository{}, &fakeBookingRepository{booking: testBooking()}, nil)

	_, err := svc.Subscribe(context.Background(), &models.SubscribeRequest{
		BookingID: 42,
		Endpoint:  "https://push.example.org/send/abc",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendCancellation_RecordsAndPushes(t *testing.T) {
	repo := &fakeNotificationRepository{subscription: testSubscription()}
	push := &fakePushClient{}
	svc := newTestService(repo, &fakeBookingRepository{}, push)

	err := svc.SendCancellation(context.Background(), testBooking())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.NotificationCancellation, repo.created[0].Type)
	assert.Equal(t, "Запись отменена", repo.created[0].Title)
	assert.Contains(t, repo.created[0].Message, "№20260311-A7K2")
	assert.Contains(t, repo.created[0].Message, "11.03.2026")

	require.Len(t, push.sent, 1)
	assert.Equal(t, "Запись отменена", push.sent[0].Title)
	assert.Equal(t, repo.sentAtIDs, []int64{1})
}

func TestSendCancellation_WithoutPushClient(t *testing.T) {
	repo := &fakeNotificationRepository{subscription: testSubscription()}
	svc := newTestService(repo, &fakeBookingRepository{}, nil)

	err := svc.SendCancellation(context.Background(), testBooking())
	require.NoError(t, err)

	// Запись в ленте создается, попытка доставки не фиксируется
	assert.Len(t, repo.created, 1)
	assert.Empty(t, repo.sentAtIDs)
}

func TestSendCancellation_NoSubscription(t *testing.T) {
	repo := &fakeNotificationRepository{}
	push := &fakePushClient{}
	svc := newTestService(repo, &fakeBookingRepository{}, push)

	err := svc.SendCancellation(context.Background(), testBooking())
	require.NoError(t, err)

	assert.Len(t, repo.created, 1)
	assert.Empty(t, push.sent)
}

func TestSendCancellation_GoneSubscriptionIsDeleted(t *testing.T) {
	repo := &fakeNotificationRepository{subscription: testSubscription()}
	push := &fakePushClient{err: pushClient.ErrSubscriptionGone}
	svc := newTestService(repo, &fakeBookingRepository{}, push)

	err := svc.SendCancellation(context.Background(), testBooking())
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, repo.deletedSubIDs)
}

func TestSendCancellation_PushFailureIsSwallowed(t *testing.T) {
	repo := &fakeNotificationRepository{subscription: testSubscription()}
	push := &fakePushClient{err: errors.New("endpoint timeout")}
	svc := newTestService(repo, &fakeBookingRepository{}, push)

	err := svc.SendCancellation(context.Background(), testBooking())
	assert.NoError(t, err)
	assert.Empty(t, repo.deletedSubIDs)
}

func TestSendReminder(t *testing.T) {
	repo := &fakeNotificationRepository{}
	svc := newTestService(repo, &fakeBookingRepository{}, nil)

	err := svc.SendReminder(context.Background(), testBooking())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.NotificationReminder, repo.created[0].Type)
	assert.Equal(t, "Напоминание о записи", repo.created[0].Title)
	assert.Contains(t, repo.created[0].Message, "завтра, 11.03.2026 в 10:15")
}

func TestSendReminder_Deduplicated(t *testing.T) {
	repo := &fakeNotificationRepository{reminderExists: true}
	svc := newTestService(repo, &fakeBookingRepository{}, nil)

	err := svc.SendReminder(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestListByPhone_NormalizesPhone(t *testing.T) {
	repo := &fakeNotificationRepository{notifications: []*domain.Notification{
		{ID: 1, BookingID: 42, Title: "Напоминание о записи", Type: domain.NotificationReminder,
			CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
	}}
	svc := newTestService(repo, &fakeBookingRepository{}, nil)

	resp, err := svc.ListByPhone(context.Background(), "89123456789")
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, int64(1), resp.Notifications[0].ID)
}

func TestListByPhone_InvalidPhone(t *testing.T) {
	svc := newTestService(&fakeNotificationRepository{}, &fakeBookingRepository{}, nil)

	_, err := svc.ListByPhone(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnreadCount(t *testing.T) {
	repo := &fakeNotificationRepository{unread: 3}
	svc := newTestService(repo, &fakeBookingRepository{}, nil)

	resp, err := svc.UnreadCount(context.Background(), "+79123456789")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
}

func TestMarkRead_NotFound(t *testing.T) {
	repo := &fakeNotificationRepository{markReadErr: notificationRepo.ErrNotificationNotFound}
	svc := newTestService(repo, &fakeBookingRepository{}, nil)

	err := svc.MarkRead(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
