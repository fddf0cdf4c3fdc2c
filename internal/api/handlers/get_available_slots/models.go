package get_available_slots

import (
	"github.com/camp-taezhny/BookingService/internal/domain"
	getAvailableSlots "github.com/camp-taezhny/BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time      string `json:"time"` // "10:15"
	Available bool   `json:"available"`
	Count     int    `json:"count"` // подтвержденных бронирований
	Max       int    `json:"max"`   // вместимость слота
	FreeSpots int    `json:"free_spots"`
}

// SlotsResponse HTTP модель сетки слотов на дату
type SlotsResponse struct {
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      slot.Time.String(),
			Available: slot.Available,
			Count:     slot.ConfirmedCount,
			Max:       slot.MaxPerSlot,
			FreeSpots: slot.FreeSpots,
		})
	}
	return &SlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
