package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
	bookingRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/service"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	settings     Settings
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		settings:     settings,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости слота и вставка выполняются в сериализуемой
// транзакции, чтобы две конкурирующие записи не переполнили слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, camp=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.Camp)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных, все ошибки полей собираются сразу
	if verrs := validateRequest(req, now, uc.settings); verrs != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", verrs)
		return nil, verrs
	}

	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		// Недостижимо после validateRequest, но оставляем защиту от рассинхрона
		return nil, ValidationErrors{"phone": "Некорректный номер телефона"}
	}

	// 2. Услуга должна существовать и быть активной
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is disabled", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	var result *domain.Booking

	// 3. Проверка вместимости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.bookingRepo.CountConfirmedForSlot(txCtx, req.Date, req.TimeSlot.String())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count slot bookings: %v", err)
			return fmt.Errorf("%w: failed to count slot bookings: %v", ErrInternal, err)
		}

		if count >= uc.settings.MaxPerSlot {
			uc.logger.Warn("CreateBooking: slot %s %s is full, %d/%d taken",
				req.Date.Format(domain.DateFormat), req.TimeSlot, count, uc.settings.MaxPerSlot)
			return ValidationErrors{"time_slot": "Это время уже занято, выберите другое"}
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d taken", count, uc.settings.MaxPerSlot)

		created, err := uc.createWithReference(txCtx, req, service, phone, now)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s",
		result.ID, result.ReferenceNumber)

	return &Response{
		ID:              result.ID,
		ReferenceNumber: result.ReferenceNumber,
		ServiceID:       result.ServiceID,
		ServiceName:     result.ServiceName,
		Date:            result.Date,
		TimeSlot:        result.TimeSlot,
		LastName:        result.LastName,
		FirstName:       result.FirstName,
		Phone:           result.Phone,
		Camp:            result.Camp,
		Status:          string(result.Status),
		// Список документов отдаем сразу, чтобы клиент показал памятку
		RequiredDocuments: service.RequiredDocuments,
		CreatedAt:         result.CreatedAt,
	}, nil
}

// createWithReference генерирует номер брони и вставляет запись.
// Коллизия суффикса маловероятна, но при гонке уникальный индекс
// вернет ErrDuplicateReference и попытка повторяется с новым номером.
func (uc *UseCase) createWithReference(
	ctx context.Context,
	req *Request,
	service *domain.Service,
	phone string,
	now time.Time,
) (*domain.Booking, error) {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		reference := generateReference(now)

		exists, err := uc.bookingRepo.ExistsByReference(ctx, reference)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check reference %s: %v", reference, err)
			return nil, fmt.Errorf("%w: failed to check reference: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateBooking: reference %s already taken, attempt %d", reference, attempt)
			continue
		}

		booking := &domain.Booking{
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			TimeSlot:        req.TimeSlot,
			LastName:        normalizeSpaces(req.LastName),
			FirstName:       normalizeSpaces(req.FirstName),
			Phone:           phone,
			Camp:            req.Camp,
			Status:          domain.StatusConfirmed,
			ReferenceNumber: reference,
			// Денормализация названия услуги для списков и расписаний
			ServiceName: service.Name,
		}

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateReference) {
				uc.logger.Warn("CreateBooking: reference %s collided on insert, attempt %d", reference, attempt)
				continue
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return created, nil
	}

	return nil, fmt.Errorf("%w: failed to generate unique reference after %d attempts",
		ErrInternal, maxReferenceAttempts)
}
