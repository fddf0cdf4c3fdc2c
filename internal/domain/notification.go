package domain

import "time"

// NotificationType вид уведомления
type NotificationType string

const (
	NotificationReminder     NotificationType = "reminder"
	NotificationCancellation NotificationType = "cancellation"
)

// Notification внутрисервисное уведомление, привязанное к бронированию.
// Запись создается всегда, push-доставка поверх нее best-effort.
type Notification struct {
	ID        int64
	BookingID int64
	Title     string
	Message   string
	Type      NotificationType
	IsRead    bool
	CreatedAt time.Time

	// SentAt время попытки push-доставки, nil если push не отправлялся
	SentAt *time.Time
}

// PushSubscription web-push подписка браузера, одна на бронирование
type PushSubscription struct {
	ID        int64
	BookingID int64
	Endpoint  string
	P256dhKey string
	AuthKey   string
	CreatedAt time.Time
}
