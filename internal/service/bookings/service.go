package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
	bookingRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/booking"
	"github.com/camp-taezhny/BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    NotificationSender
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, notifier NotificationSender, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByReference получает бронирование по номеру брони
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Lookup находит бронирование по номеру брони и прикладывает
// все записи, оформленные на тот же телефон
func (s *Service) Lookup(ctx context.Context, reference string) (*models.BookingLookupResponse, error) {
	booking, err := s.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	phoneBookings, err := s.bookingRepo.GetByPhone(ctx, booking.Phone)
	if err != nil {
		s.logger.Error("Lookup: failed to get phone bookings for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
	}

	return &models.BookingLookupResponse{
		Booking:       *booking,
		PhoneBookings: models.FromDomainBookingList(phoneBookings).Bookings,
	}, nil
}

// GetByPhone получает историю бронирований по номеру телефона
func (s *Service) GetByPhone(ctx context.Context, rawPhone string) (*models.BookingListResponse, error) {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	s.logger.Info("GetByPhone: fetching bookings for phone=%s", phone)

	bookings, err := s.bookingRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("GetByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования с фильтрацией по услуге, дате, лагерю и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Единственный допустимый переход
// статуса confirmed -> cancelled, повторная отмена отклоняется.
// Уведомление об отмене отправляется best-effort.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d has status=%s, cannot cancel", id, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		s.logger.Error("Cancel: failed to update status for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled

	if err := s.notifier.SendCancellation(ctx, booking); err != nil {
		// Отмена уже состоялась, проблему доставки только логируем
		s.logger.Error("Cancel: failed to send cancellation notification for booking id=%d: %v", id, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetSchedule возвращает подтвержденные записи на дату, сгруппированные
// по часам рабочего дня. Часы без записей не включаются.
func (s *Service) GetSchedule(ctx context.Context, date time.Time) (*models.ScheduleResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.logger.Info("GetSchedule: fetching schedule for date=%s", date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetConfirmedByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	flat := make([]models.BookingResponse, 0, len(bookings))
	byHour := make(map[string][]models.BookingResponse)
	for _, b := range bookings {
		resp := *models.FromDomainBooking(b)
		flat = append(flat, resp)

		slotHour, err := b.TimeSlot.Hour()
		if err != nil {
			s.logger.Warn("GetSchedule: booking id=%d has malformed time slot %q", b.ID, b.TimeSlot)
			continue
		}
		hour := fmt.Sprintf("%02d:00", slotHour)
		byHour[hour] = append(byHour[hour], resp)
	}

	hours := make([]string, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Strings(hours)

	schedule := make([]models.ScheduleHour, 0, len(hours))
	for _, hour := range hours {
		schedule = append(schedule, models.ScheduleHour{Hour: hour, Bookings: byHour[hour]})
	}

	return &models.ScheduleResponse{
		Date:     date.Format(domain.DateFormat),
		Bookings: flat,
		Hours:    schedule,
		Total:    len(bookings),
	}, nil
}

// GetStatistics возвращает агрегаты по подтвержденным бронированиям.
// Период опционален с обеих сторон.
func (s *Service) GetStatistics(ctx context.Context, startDate, endDate *time.Time) (*models.StatisticsResponse, error) {
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}

	stats, err := s.bookingRepo.GetStatistics(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("GetStatistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStatistics(stats), nil
}
