package models

import (
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// Request модели

// SubscribeRequest запрос на регистрацию push-подписки бронирования
type SubscribeRequest struct {
	BookingID int64            `json:"booking_id"`
	Endpoint  string           `json:"endpoint"`
	Keys      SubscriptionKeys `json:"keys"`
}

// SubscriptionKeys ключи шифрования подписки из браузерного PushSubscription
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Response модели

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"` // RFC3339
}

// NotificationListResponse список уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

// UnreadCountResponse количество непрочитанных уведомлений
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// SubscriptionResponse подтверждение регистрации подписки
type SubscriptionResponse struct {
	ID        int64 `json:"id"`
	BookingID int64 `json:"booking_id"`
}

// FromDomainNotification конвертирует domain модель в response
func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		BookingID: n.BookingID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainNotificationList конвертирует список domain моделей в response
func FromDomainNotificationList(notifications []*domain.Notification) *NotificationListResponse {
	items := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, FromDomainNotification(n))
	}
	return &NotificationListResponse{Notifications: items, Total: len(items)}
}
