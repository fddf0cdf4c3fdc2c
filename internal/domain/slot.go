package domain

import "github.com/camp-taezhny/BookingService/pkg/types"

// SlotAvailability occupancy of a single 15-minute slot on a given date
type SlotAvailability struct {
	TimeSlot       types.TimeString
	ConfirmedCount int
	MaxPerSlot     int
}

// IsAvailable returns true if the slot can accept another confirmed booking
func (s *SlotAvailability) IsAvailable() bool {
	return s.ConfirmedCount < s.MaxPerSlot
}
