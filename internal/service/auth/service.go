package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/camp-taezhny/BookingService/internal/domain"
	adminRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/adminuser"
	"github.com/camp-taezhny/BookingService/internal/service/auth/models"
)

// Service сервис аутентификации администраторов.
// Сессии хранятся в БД, токен передается в заголовке X-Admin-Token.
type Service struct {
	adminRepo    AdminRepository
	sessionTTL   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(adminRepo AdminRepository, sessionTTL time.Duration, logger Logger) *Service {
	return &Service{
		adminRepo:    adminRepo,
		sessionTTL:   sessionTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Bootstrap создает учетную запись администратора из конфигурации,
// если в базе еще нет ни одного администратора
func (s *Service) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.Warn("Bootstrap: admin credentials are not configured, skipping")
		return nil
	}

	count, err := s.adminRepo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("%w: Bootstrap - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: Bootstrap - failed to hash password: %v", ErrInternal, err)
	}

	user, err := s.adminRepo.CreateUser(ctx, &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Гонка двух инстансов при первом старте
		if errors.Is(err, adminRepo.ErrDuplicateUsername) {
			return nil
		}
		return fmt.Errorf("%w: Bootstrap - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Bootstrap: created admin user id=%d username=%s", user.ID, user.Username)
	return nil
}

// Login проверяет учетные данные и создает сессию.
// Заодно подчищает истекшие сессии, отдельный фон для этого не нужен.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	s.logger.Info("Login: attempt for username=%s", req.Username)

	user, err := s.adminRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, adminRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()

	if err := s.adminRepo.DeleteExpiredSessions(ctx, now); err != nil {
		s.logger.Error("Login: failed to delete expired sessions: %v", err)
	}

	session, err := s.adminRepo.CreateSession(ctx, &domain.AdminSession{
		Token:       uuid.NewString(),
		AdminUserID: user.ID,
		ExpiresAt:   now.Add(s.sessionTTL),
	})
	if err != nil {
		s.logger.Error("Login: failed to create session for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Login: successful for username=%s", req.Username)
	return &models.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// Logout завершает сессию. Незнакомый токен не считается ошибкой.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.adminRepo.DeleteSession(ctx, token)
	if err != nil && !errors.Is(err, adminRepo.ErrSessionNotFound) {
		s.logger.Error("Logout: repository error: %v", err)
		return fmt.Errorf("%w: Logout - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ValidateToken проверяет сессионный токен и возвращает ID администратора
func (s *Service) ValidateToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	session, err := s.adminRepo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, adminRepo.ErrSessionNotFound) {
			return 0, ErrInvalidToken
		}
		s.logger.Error("ValidateToken: repository error: %v", err)
		return 0, fmt.Errorf("%w: ValidateToken - repository error: %v", ErrInternal, err)
	}

	if session.IsExpired(s.timeProvider.Now()) {
		if err := s.adminRepo.DeleteSession(ctx, token); err != nil &&
			!errors.Is(err, adminRepo.ErrSessionNotFound) {
			s.logger.Error("ValidateToken: failed to delete expired session: %v", err)
		}
		return 0, ErrInvalidToken
	}

	return session.AdminUserID, nil
}
