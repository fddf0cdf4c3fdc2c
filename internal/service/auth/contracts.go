package auth

import (
	"context"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// AdminRepository интерфейс репозитория администраторов и сессий
type AdminRepository interface {
	CreateUser(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	CountUsers(ctx context.Context) (int, error)
	CreateSession(ctx context.Context, session *domain.AdminSession) (*domain.AdminSession, error)
	GetSession(ctx context.Context, token string) (*domain.AdminSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
