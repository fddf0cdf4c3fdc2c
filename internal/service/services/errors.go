package services

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrDuplicateName возвращается, когда услуга с таким названием уже существует
	ErrDuplicateName = errors.New("service name already exists")

	// ErrServiceHasBookings возвращается при попытке удалить услугу с бронированиями
	ErrServiceHasBookings = errors.New("service has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
