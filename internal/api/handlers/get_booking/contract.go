package get_booking

import (
	"context"

	"github.com/camp-taezhny/BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Lookup(ctx context.Context, reference string) (*models.BookingLookupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
