package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/camp-taezhny/BookingService/internal/domain"
	adminRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/adminuser"
	"github.com/camp-taezhny/BookingService/internal/service/auth/models"
)

// --- fakes ---

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type fakeAdminRepository struct {
	users          map[string]*domain.AdminUser
	sessions       map[string]*domain.AdminSession
	expiredDeletes int
}

func newFakeAdminRepository() *fakeAdminRepository {
	return &fakeAdminRepository{
		users:    make(map[string]*domain.AdminUser),
		sessions: make(map[string]*domain.AdminSession),
	}
}

func (r *fakeAdminRepository) CreateUser(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, adminRepo.ErrDuplicateUsername
	}
	saved := *user
	saved.ID = int64(len(r.users) + 1)
	r.users[saved.Username] = &saved
	return &saved, nil
}

func (r *fakeAdminRepository) GetUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, adminRepo.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeAdminRepository) CountUsers(ctx context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeAdminRepository) CreateSession(ctx context.Context, session *domain.AdminSession) (*domain.AdminSession, error) {
	saved := *session
	r.sessions[saved.Token] = &saved
	return &saved, nil
}

func (r *fakeAdminRepository) GetSession(ctx context.Context, token string) (*domain.AdminSession, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, adminRepo.ErrSessionNotFound
	}
	return session, nil
}

func (r *fakeAdminRepository) DeleteSession(ctx context.Context, token string) error {
	if _, ok := r.sessions[token]; !ok {
		return adminRepo.ErrSessionNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *fakeAdminRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	r.expiredDeletes++
	for token, session := range r.sessions {
		if session.IsExpired(now) {
			delete(r.sessions, token)
		}
	}
	return nil
}

// --- fixtures ---

func newTestService(repo *fakeAdminRepository, now time.Time) *Service {
	svc := NewService(repo, 2*time.Hour, &fakeLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}
	return svc
}

func addUser(t *testing.T, repo *fakeAdminRepository, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.CreateUser(context.Background(), &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)
}

// --- tests ---

func TestBootstrap_CreatesFirstAdmin(t *testing.T) {
	repo := newFakeAdminRepository()
	svc := newTestService(repo, time.Now())

	err := svc.Bootstrap(context.Background(), "admin", "secret")
	require.NoError(t, err)

	user, err := repo.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
}

func TestBootstrap_SkipsWhenUsersExist(t *testing.T) {
	repo := newFakeAdminRepository()
	addUser(t, repo, "existing", "pw")
	svc := newTestService(repo, time.Now())

	err := svc.Bootstrap(context.Background(), "admin", "secret")
	require.NoError(t, err)

	_, err = repo.GetUserByUsername(context.Background(), "admin")
	assert.ErrorIs(t, err, adminRepo.ErrUserNotFound)
}

func TestBootstrap_SkipsWithoutCredentials(t *testing.T) {
	repo := newFakeAdminRepository()
	svc := newTestService(repo, time.Now())

	require.NoError(t, svc.Bootstrap(context.Background(), "", ""))
	assert.Empty(t, repo.users)
}

func TestLogin(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepository()
	addUser(t, repo, "admin", "secret")
	svc := newTestService(repo, now)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "admin",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, now.Add(2*time.Hour).Format(time.RFC3339), resp.ExpiresAt)
	assert.Contains(t, repo.sessions, resp.Token)
	// Попутная уборка истекших сессий
	assert.Equal(t, 1, repo.expiredDeletes)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeAdminRepository()
	addUser(t, repo, "admin", "secret")
	svc := newTestService(repo, time.Now())

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeAdminRepository(), time.Now())

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "ghost",
		Password: "secret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepository()
	repo.sessions["token-1"] = &domain.AdminSession{
		Token:       "token-1",
		AdminUserID: 7,
		ExpiresAt:   now.Add(time.Hour),
	}
	svc := newTestService(repo, now)

	userID, err := svc.ValidateToken(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestValidateToken_ExpiredSessionIsDeleted(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepository()
	repo.sessions["token-1"] = &domain.AdminSession{
		Token:       "token-1",
		AdminUserID: 7,
		ExpiresAt:   now.Add(-time.Minute),
	}
	svc := newTestService(repo, now)

	_, err := svc.ValidateToken(context.Background(), "token-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotContains(t, repo.sessions, "token-1")
}

func TestValidateToken_Unknown(t *testing.T) {
	svc := newTestService(newFakeAdminRepository(), time.Now())

	_, err := svc.ValidateToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	repo := newFakeAdminRepository()
	repo.sessions["token-1"] = &domain.AdminSession{Token: "token-1", AdminUserID: 7}
	svc := newTestService(repo, time.Now())

	require.NoError(t, svc.Logout(context.Background(), "token-1"))
	assert.Empty(t, repo.sessions)

	// Повторный выход с тем же токеном не ошибка
	assert.NoError(t, svc.Logout(context.Background(), "token-1"))
}
