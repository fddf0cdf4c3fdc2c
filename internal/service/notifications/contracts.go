package notifications

import (
	"context"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
	"github.com/camp-taezhny/BookingService/internal/integrations/webpush"
)

// NotificationRepository интерфейс репозитория уведомлений и подписок
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByPhone(ctx context.Context, phone string) ([]*domain.Notification, error)
	CountUnreadByPhone(ctx context.Context, phone string) (int, error)
	MarkRead(ctx context.Context, id int64) error
	SetSentAt(ctx context.Context, id int64, sentAt time.Time) error
	ExistsByBookingAndType(ctx context.Context, bookingID int64, notificationType domain.NotificationType) (bool, error)
	SaveSubscription(ctx context.Context, sub *domain.PushSubscription) (*domain.PushSubscription, error)
	GetSubscriptionByBooking(ctx context.Context, bookingID int64) (*domain.PushSubscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PushClient интерфейс клиента доставки web-push
type PushClient interface {
	Send(ctx context.Context, sub *domain.PushSubscription, payload webpush.Payload) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
