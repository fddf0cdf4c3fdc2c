package list_notifications

import (
	"context"

	"github.com/camp-taezhny/BookingService/internal/service/notifications/models"
)

type NotificationsService interface {
	ListByPhone(ctx context.Context, rawPhone string) (*models.NotificationListResponse, error)
	UnreadCount(ctx context.Context, rawPhone string) (*models.UnreadCountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
