package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	authService "github.com/camp-taezhny/BookingService/internal/service/auth"
)

// AdminTokenHeader заголовок с сессионным токеном администратора
const AdminTokenHeader = "X-Admin-Token"

// AuthService интерфейс проверки сессионных токенов
type AuthService interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type adminUserIDKey struct{}

// AdminUserIDFromContext возвращает ID администратора, положенный
// в контекст auth-middleware
func AdminUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminUserIDKey{}).(int64)
	return id, ok
}

// Auth проверяет токен администратора из заголовка X-Admin-Token
// и кладет ID администратора в контекст запроса
func Auth(auth AuthService, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AdminTokenHeader)

			adminUserID, err := auth.ValidateToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, authService.ErrInvalidToken) {
					logger.Warn("%s %s - unauthorized admin request", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, "требуется авторизация администратора")
					return
				}
				logger.Error("%s %s - token validation failed: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminUserIDKey{}, adminUserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
