package subscribe_push

import (
	"context"

	"github.com/camp-taezhny/BookingService/internal/service/notifications/models"
)

type NotificationsService interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
