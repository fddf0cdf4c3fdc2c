package adminuser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/camp-taezhny/BookingService/internal/domain"
	"github.com/camp-taezhny/BookingService/pkg/dbmetrics"
	"github.com/camp-taezhny/BookingService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// Repository репозиторий администраторов и их сессий
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateUser создает администратора
func (r *Repository) CreateUser(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_users").
		Columns("username", "password_hash").
		Values(user.Username, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateUser - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: CreateUser - execute insert: %v", ErrExecQuery, err)
	}

	user.CreatedAt = createdAt.Time
	return user, nil
}

// GetUserByUsername получает администратора по имени пользователя
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "username", "password_hash", "created_at").
		From("admin_users").
		Where(squirrel.Eq{"username": username}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByUsername - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.AdminUser
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByUsername - scan user: %v", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time
	return &user, nil
}

// CountUsers подсчитывает администраторов (bootstrap при первом запуске)
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("admin_users").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUsers - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUsers - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CreateSession создает сессию администратора
func (r *Repository) CreateSession(ctx context.Context, session *domain.AdminSession) (*domain.AdminSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_sessions").
		Columns("token", "admin_user_id", "expires_at").
		Values(session.Token, session.AdminUserID, session.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSession - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSession - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	return session, nil
}

// GetSession получает сессию по токену
func (r *Repository) GetSession(ctx context.Context, token string) (*domain.AdminSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("token", "admin_user_id", "expires_at", "created_at").
		From("admin_sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - build select query: %v", ErrBuildQuery, err)
	}

	var session domain.AdminSession
	var expiresAt, createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.Token,
		&session.AdminUserID,
		&expiresAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - scan session: %v", ErrScanRow, err)
	}

	session.ExpiresAt = expiresAt.Time
	session.CreatedAt = createdAt.Time
	return &session, nil
}

// DeleteSession удаляет сессию (logout)
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admin_sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSession - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSession - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSession - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpiredSessions удаляет истекшие сессии
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admin_sessions").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteExpiredSessions - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteExpiredSessions - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
