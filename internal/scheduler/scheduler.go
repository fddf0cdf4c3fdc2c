// Package scheduler фоновая проверка завтрашних записей и отправка
// напоминаний. Один горутин, проходы строго последовательные.
package scheduler

import (
	"context"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// Scheduler периодически рассылает напоминания о завтрашних записях.
// Повторные проходы безопасны: дедупликация выполняется на уровне
// сервиса уведомлений, одно бронирование получает одно напоминание.
type Scheduler struct {
	bookingRepo  BookingRepository
	sender       ReminderSender
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// New создает новый экземпляр планировщика
func New(bookingRepo BookingRepository, sender ReminderSender, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		bookingRepo:  bookingRepo,
		sender:       sender,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run запускает цикл проверок и блокируется до отмены контекста.
// Первый проход выполняется сразу, не дожидаясь первого тика.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Scheduler: started, interval=%s", s.interval)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep отправляет напоминания по всем подтвержденным записям на завтра
func (s *Scheduler) Sweep(ctx context.Context) {
	tomorrow := s.timeProvider.Now().AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.GetConfirmedByDate(ctx, tomorrow)
	if err != nil {
		s.logger.Error("Scheduler: failed to get bookings for %s: %v",
			tomorrow.Format(domain.DateFormat), err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	s.logger.Info("Scheduler: checking %d bookings for %s",
		len(bookings), tomorrow.Format(domain.DateFormat))

	for _, booking := range bookings {
		if err := s.sender.SendReminder(ctx, booking); err != nil {
			// Одна неудача не останавливает проход
			s.logger.Error("Scheduler: failed to send reminder for booking id=%d: %v", booking.ID, err)
		}
	}
}
