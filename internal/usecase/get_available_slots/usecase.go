package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	settings     Settings
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, settings Settings, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		settings:     settings,
		logger:       logger,
	}
}

// Execute возвращает сетку слотов на дату с количеством свободных мест.
// Счетчики берутся одним запросом с группировкой, а не по слоту за раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	if err := uc.validateDate(req.Date); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	counts, err := uc.bookingRepo.CountConfirmedForSlots(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(uc.settings.TimeSlots))
	for _, slotTime := range uc.settings.TimeSlots {
		availability := domain.SlotAvailability{
			TimeSlot:       slotTime,
			ConfirmedCount: counts[slotTime.String()],
			MaxPerSlot:     uc.settings.MaxPerSlot,
		}

		free := availability.MaxPerSlot - availability.ConfirmedCount
		if free < 0 {
			free = 0
		}

		slots = append(slots, Slot{
			Time:           availability.TimeSlot,
			Available:      availability.IsAvailable(),
			ConfirmedCount: availability.ConfirmedCount,
			MaxPerSlot:     availability.MaxPerSlot,
			FreeSpots:      free,
		})
	}

	return &Response{Date: req.Date, Slots: slots}, nil
}

// validateDate проверяет, что дата попадает в окно бронирования
func (uc *UseCase) validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.Before(today) {
		return ErrDateInPast
	}

	maxDate := today.AddDate(0, 0, uc.settings.DaysAhead)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only view %d days ahead", ErrDateTooFarInFuture, uc.settings.DaysAhead)
	}

	return nil
}
