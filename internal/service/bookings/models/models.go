package models

import (
	"errors"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на выборку бронирований администратором
type ListBookingsRequest struct {
	ServiceID *int64     `json:"service_id,omitempty"` // Фильтр по услуге (опционально)
	Date      *time.Time `json:"date,omitempty"`       // Фильтр по дате (опционально)
	Camp      *string    `json:"camp,omitempty"`       // Фильтр по лагерю (опционально)
	Status    *string    `json:"status,omitempty"`     // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ServiceID: r.ServiceID,
		Date:      r.Date,
		Camp:      r.Camp,
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		if !domain.ValidStatus(status) {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"reference_number"` // "20251015-A7K2"
	ServiceID       int64  `json:"service_id"`
	ServiceName     string `json:"service_name"`
	Date            string `json:"date"`      // "2025-10-15"
	TimeSlot        string `json:"time_slot"` // "10:15"
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	Phone           string `json:"phone"` // "+7 (XXX) XXX-XX-XX"
	Camp            string `json:"camp"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"` // RFC3339
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// BookingLookupResponse ответ публичного поиска по номеру брони:
// сама запись плюс все записи на тот же телефон
type BookingLookupResponse struct {
	Booking       BookingResponse   `json:"booking"`
	PhoneBookings []BookingResponse `json:"phone_bookings"`
}

// ScheduleHour бронирования одного часа рабочего дня
type ScheduleHour struct {
	Hour     string            `json:"hour"` // "10:00"
	Bookings []BookingResponse `json:"bookings"`
}

// ScheduleResponse расписание подтвержденных записей на дату:
// плоский список по порядку слотов и группировка по часам
type ScheduleResponse struct {
	Date     string            `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
	Hours    []ScheduleHour    `json:"hours"`
	Total    int               `json:"total"`
}

// StatisticsResponse агрегаты по подтвержденным бронированиям
type StatisticsResponse struct {
	Total     int            `json:"total"`
	ByService map[string]int `json:"by_service"`
	ByCamp    map[string]int `json:"by_camp"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		ReferenceNumber: b.ReferenceNumber,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		Date:            b.Date.Format(domain.DateFormat),
		TimeSlot:        b.TimeSlot.String(),
		LastName:        b.LastName,
		FirstName:       b.FirstName,
		Phone:           b.Phone,
		Camp:            b.Camp,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: items, Total: len(items)}
}

// FromDomainStatistics конвертирует domain агрегаты в response
func FromDomainStatistics(s *domain.Statistics) *StatisticsResponse {
	return &StatisticsResponse{
		Total:     s.Total,
		ByService: s.ByService,
		ByCamp:    s.ByCamp,
	}
}
