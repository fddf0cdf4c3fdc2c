package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/camp-taezhny/BookingService/internal/domain"
	bookingRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/booking"
	notificationRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/notification"
	pushClient "github.com/camp-taezhny/BookingService/internal/integrations/webpush"
	"github.com/camp-taezhny/BookingService/internal/service/notifications/models"
)

// Service сервис уведомлений: внутрисервисная лента плюс web-push поверх нее
type Service struct {
	notificationRepo NotificationRepository
	bookingRepo      BookingRepository
	push             PushClient // nil, если VAPID-ключи не настроены
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	notificationRepo NotificationRepository,
	bookingRepo BookingRepository,
	push PushClient,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		bookingRepo:      bookingRepo,
		push:             push,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Subscribe регистрирует push-подписку бронирования.
// Повторная регистрация для того же бронирования заменяет подписку.
func (s *Service) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriptionResponse, error) {
	s.logger.Info("Subscribe: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Endpoint) == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidInput)
	}
	if req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return nil, fmt.Errorf("%w: subscription keys are required", ErrInvalidInput)
	}

	if _, err := s.bookingRepo.GetByID(ctx, req.BookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Subscribe: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Subscribe: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Subscribe - repository error: %v", ErrInternal, err)
	}

	sub, err := s.notificationRepo.SaveSubscription(ctx, &domain.PushSubscription{
		BookingID: req.BookingID,
		Endpoint:  req.Endpoint,
		P256dhKey: req.Keys.P256dh,
		AuthKey:   req.Keys.Auth,
	})
	if err != nil {
		s.logger.Error("Subscribe: failed to save subscription for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Subscribe - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Subscribe: saved subscription id=%d for booking=%d", sub.ID, sub.BookingID)
	return &models.SubscriptionResponse{ID: sub.ID, BookingID: sub.BookingID}, nil
}

// SendCancellation создает уведомление об отмене и пытается доставить push
func (s *Service) SendCancellation(ctx context.Context, booking *domain.Booking) error {
	title := "Запись отменена"
	message := fmt.Sprintf("Ваша запись №%s (%s) на %s в %s отменена",
		booking.ReferenceNumber, booking.ServiceName,
		booking.Date.Format("02.01.2006"), booking.TimeSlot)

	return s.dispatch(ctx, booking, domain.NotificationCancellation, title, message)
}

// SendReminder создает напоминание о завтрашней записи и пытается доставить push.
// Повторный вызов для того же бронирования ничего не делает, поэтому
// планировщик может запускаться сколь угодно часто.
func (s *Service) SendReminder(ctx context.Context, booking *domain.Booking) error {
	exists, err := s.notificationRepo.ExistsByBookingAndType(ctx, booking.ID, domain.NotificationReminder)
	if err != nil {
		s.logger.Error("SendReminder: failed to check existing reminder for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: SendReminder - repository error: %v", ErrInternal, err)
	}
	if exists {
		return nil
	}

	title := "Напоминание о записи"
	message := fmt.Sprintf("Напоминаем: завтра, %s в %s, у вас запись №%s (%s)",
		booking.Date.Format("02.01.2006"), booking.TimeSlot,
		booking.ReferenceNumber, booking.ServiceName)

	return s.dispatch(ctx, booking, domain.NotificationReminder, title, message)
}

// ListByPhone возвращает уведомления по всем бронированиям телефона
func (s *Service) ListByPhone(ctx context.Context, rawPhone string) (*models.NotificationListResponse, error) {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	notifications, err := s.notificationRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("ListByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByPhone - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications), nil
}

// UnreadCount возвращает количество непрочитанных уведомлений телефона
func (s *Service) UnreadCount(ctx context.Context, rawPhone string) (*models.UnreadCountResponse, error) {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	count, err := s.notificationRepo.CountUnreadByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("UnreadCount: repository error: %v", err)
		return nil, fmt.Errorf("%w: UnreadCount - repository error: %v", ErrInternal, err)
	}

	return &models.UnreadCountResponse{Count: count}, nil
}

// MarkRead помечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found", id)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// dispatch записывает уведомление и поверх него пытается доставить push.
// Запись в ленте создается всегда; неудачная push-доставка не считается
// ошибкой операции.
func (s *Service) dispatch(
	ctx context.Context,
	booking *domain.Booking,
	notificationType domain.NotificationType,
	title, message string,
) error {
	notification, err := s.notificationRepo.CreateNotification(ctx, &domain.Notification{
		BookingID: booking.ID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		IsRead:    false,
	})
	if err != nil {
		s.logger.Error("dispatch: failed to create %s notification for booking id=%d: %v",
			notificationType, booking.ID, err)
		return fmt.Errorf("%w: dispatch - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("dispatch: created %s notification id=%d for booking=%d",
		notificationType, notification.ID, booking.ID)

	if s.push == nil {
		return nil
	}

	sub, err := s.notificationRepo.GetSubscriptionByBooking(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrSubscriptionNotFound) {
			return nil
		}
		s.logger.Error("dispatch: failed to get subscription for booking id=%d: %v", booking.ID, err)
		return nil
	}

	// Фиксируем попытку доставки независимо от ее исхода
	if err := s.notificationRepo.SetSentAt(ctx, notification.ID, s.timeProvider.Now()); err != nil {
		s.logger.Error("dispatch: failed to set sent_at for notification id=%d: %v", notification.ID, err)
	}

	payload := pushClient.Payload{
		Title:     title,
		Message:   message,
		Timestamp: s.timeProvider.Now(),
	}

	if err := s.push.Send(ctx, sub, payload); err != nil {
		if errors.Is(err, pushClient.ErrSubscriptionGone) {
			// Браузер отозвал подписку, чистим ее, чтобы не долбить endpoint
			if delErr := s.notificationRepo.DeleteSubscription(ctx, sub.ID); delErr != nil &&
				!errors.Is(delErr, notificationRepo.ErrSubscriptionNotFound) {
				s.logger.Error("dispatch: failed to delete gone subscription id=%d: %v", sub.ID, delErr)
			}
			return nil
		}
		s.logger.Warn("dispatch: push delivery failed for booking id=%d: %v", booking.ID, err)
		return nil
	}

	s.logger.Info("dispatch: push delivered for booking=%d", booking.ID)
	return nil
}
