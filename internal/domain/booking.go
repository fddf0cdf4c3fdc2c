package domain

import (
	"time"

	"github.com/camp-taezhny/BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reserved appointment slot for a camp service
type Booking struct {
	ID              int64
	ServiceID       int64
	Date            time.Time
	TimeSlot        types.TimeString
	LastName        string
	FirstName       string
	Phone           string // normalized "+7 (XXX) XXX-XX-XX"
	Camp            string
	Status          BookingStatus
	ReferenceNumber string // "YYYYMMDD-XXXX"

	// Denormalized for listings and schedules
	ServiceName string

	CreatedAt time.Time
}

// IsConfirmed returns true if the booking still counts toward slot capacity
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled.
// The only allowed transition is confirmed -> cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// ValidStatus returns true if the status is one of the known values
func ValidStatus(s BookingStatus) bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// BookingsFilter фильтр для выборки бронирований администратором
type BookingsFilter struct {
	ServiceID *int64
	Date      *time.Time
	Camp      *string
	Status    *BookingStatus
}

// Statistics агрегаты по подтвержденным бронированиям
type Statistics struct {
	Total     int
	ByService map[string]int
	ByCamp    map[string]int
}
