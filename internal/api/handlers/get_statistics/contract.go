package get_statistics

import (
	"context"
	"time"

	"github.com/camp-taezhny/BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetStatistics(ctx context.Context, startDate, endDate *time.Time) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
