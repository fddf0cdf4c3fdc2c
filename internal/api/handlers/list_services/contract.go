package list_services

import (
	"context"

	"github.com/camp-taezhny/BookingService/internal/service/services/models"
)

type ServicesService interface {
	ListActive(ctx context.Context) (*models.ServiceListResponse, error)
	ListAll(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
