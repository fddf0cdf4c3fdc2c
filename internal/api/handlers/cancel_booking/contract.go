package cancel_booking

import (
	"context"

	"github.com/camp-taezhny/BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
