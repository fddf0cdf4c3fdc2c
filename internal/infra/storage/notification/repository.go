package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/camp-taezhny/BookingService/internal/domain"
	"github.com/camp-taezhny/BookingService/pkg/dbmetrics"
	"github.com/camp-taezhny/BookingService/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id",
	"booking_id",
	"title",
	"message",
	"type",
	"is_read",
	"created_at",
	"sent_at",
}

// Repository репозиторий уведомлений и push-подписок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateNotification создает запись уведомления
func (r *Repository) CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("booking_id", "title", "message", "type", "is_read").
		Values(n.BookingID, n.Title, n.Message, n.Type, n.IsRead).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - execute insert: %v", ErrExecQuery, err)
	}

	n.CreatedAt = createdAt.Time
	return n, nil
}

// GetByPhone получает уведомления по всем бронированиям указанного телефона,
// новые первыми
func (r *Repository) GetByPhone(ctx context.Context, phone string) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, len(notificationColumns))
	for i, c := range notificationColumns {
		columns[i] = "n." + c
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("notifications n").
		Join("bookings b ON b.id = n.booking_id").
		Where(squirrel.Eq{"b.phone": phone}).
		OrderBy("n.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPhone - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// CountUnreadByPhone подсчитывает непрочитанные уведомления телефона
func (r *Repository) CountUnreadByPhone(ctx context.Context, phone string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("notifications n").
		Join("bookings b ON b.id = n.booking_id").
		Where(squirrel.Eq{"b.phone": phone, "n.is_read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUnreadByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUnreadByPhone - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// MarkRead помечает уведомление прочитанным
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// SetSentAt фиксирует время попытки push-доставки
func (r *Repository) SetSentAt(ctx context.Context, id int64, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("sent_at", sentAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSentAt - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetSentAt - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ExistsByBookingAndType проверяет наличие уведомления данного типа у бронирования
// (защита от повторных напоминаний при ежечасных проверках)
func (r *Repository) ExistsByBookingAndType(ctx context.Context, bookingID int64, notificationType domain.NotificationType) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("notifications").
		Where(squirrel.Eq{"booking_id": bookingID, "type": notificationType}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByBookingAndType - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByBookingAndType - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// SaveSubscription сохраняет push-подписку бронирования.
// Повторная регистрация заменяет endpoint и ключи (подписка один-к-одному).
func (r *Repository) SaveSubscription(ctx context.Context, sub *domain.PushSubscription) (*domain.PushSubscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("push_subscriptions").
		Columns("booking_id", "endpoint", "p256dh_key", "auth_key").
		Values(sub.BookingID, sub.Endpoint, sub.P256dhKey, sub.AuthKey).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE
			SET endpoint = EXCLUDED.endpoint,
			    p256dh_key = EXCLUDED.p256dh_key,
			    auth_key = EXCLUDED.auth_key
			RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SaveSubscription - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sub.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: SaveSubscription - execute insert: %v", ErrExecQuery, err)
	}

	sub.CreatedAt = createdAt.Time
	return sub, nil
}

// GetSubscriptionByBooking получает push-подписку бронирования
func (r *Repository) GetSubscriptionByBooking(ctx context.Context, bookingID int64) (*domain.PushSubscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "endpoint", "p256dh_key", "auth_key", "created_at").
		From("push_subscriptions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscriptionByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var sub domain.PushSubscription
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.BookingID,
		&sub.Endpoint,
		&sub.P256dhKey,
		&sub.AuthKey,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscriptionByBooking - scan subscription: %v", ErrScanRow, err)
	}

	sub.CreatedAt = createdAt.Time
	return &sub, nil
}

// DeleteSubscription удаляет push-подписку
// (вызывается, когда транспорт сообщил, что endpoint больше не существует)
func (r *Repository) DeleteSubscription(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("push_subscriptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSubscription - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSubscription - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSubscription - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

func scanNotification(rows *sql.Rows) (*domain.Notification, error) {
	var n domain.Notification
	var createdAt, sentAt sql.NullTime

	err := rows.Scan(
		&n.ID,
		&n.BookingID,
		&n.Title,
		&n.Message,
		&n.Type,
		&n.IsRead,
		&createdAt,
		&sentAt,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt = createdAt.Time
	if sentAt.Valid {
		n.SentAt = &sentAt.Time
	}

	return &n, nil
}
