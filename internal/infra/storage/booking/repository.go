package booking

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

// колонки бронирования вместе с именем услуги (JOIN services)
var bookingColumns = []string{
	"b.id",
	"b.service_id",
	"b.date",
	"b.time_slot",
	"b.last_name",
	"b.first_name",
	"b.phone",
	"b.camp",
	"b.status",
	"b.reference_number",
	"s.name AS service_name",
	"b.created_at",
}

const pqUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её —
// так проверка вместимости слота и вставка выполняются атомарно.
// Нарушение уникального индекса по reference_number транслируется
// в ErrDuplicateReference, чтобы вызывающий мог перегенерировать номер.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"date",
			"time_slot",
			"last_name",
			"first_name",
			"phone",
			"camp",
			"status",
			"reference_number",
		).
		Values(
			booking.ServiceID,
			booking.Date,
			booking.TimeSlot,
			booking.LastName,
			booking.FirstName,
			booking.Phone,
			booking.Camp,
			booking.Status,
			booking.ReferenceNumber,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"b.id": id}, "GetByID")
}

// GetByReference получает бронирование по номеру
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"b.reference_number": reference}, "GetByReference")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	return booking, nil
}

// GetByPhone получает все бронирования по номеру телефона
// (история пользователя, сортировка — новые даты первыми)
func (r *Repository) GetByPhone(ctx context.Context, phone string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.phone": phone}).
		OrderBy("b.date DESC, b.time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter получает бронирования с опциональной фильтрацией
// по услуге, дате, лагерю и статусу (админский список)
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id")

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.service_id": *filter.ServiceID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.date": *filter.Date})
	}
	if filter.Camp != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.camp": *filter.Camp})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	// Для конкретной даты сортируем по времени слота, иначе новые даты первыми
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("b.time_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.date DESC, b.time_slot ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetConfirmedByDate получает подтвержденные бронирования на дату,
// отсортированные по времени слота (расписание дня, напоминания)
func (r *Repository) GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	status := domain.StatusConfirmed
	return r.ListWithFilter(ctx, domain.BookingsFilter{Date: &date, Status: &status})
}

// CountConfirmedForSlot подсчитывает подтвержденные бронирования на (дата, слот).
// Отмененные бронирования не учитываются. Вызывается внутри сериализуемой
// транзакции при создании бронирования — это финальная проверка вместимости.
func (r *Repository) CountConfirmedForSlot(ctx context.Context, date time.Time, timeSlot string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"date":      date,
			"time_slot": timeSlot,
			"status":    domain.StatusConfirmed,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedForSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedForSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountConfirmedForSlots подсчитывает подтвержденные бронирования на дату,
// сгруппированные по слоту (для выдачи доступности одним запросом)
func (r *Repository) CountConfirmedForSlots(ctx context.Context, date time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"date":   date,
			"status": domain.StatusConfirmed,
		}).
		GroupBy("time_slot").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountConfirmedForSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountConfirmedForSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slot string
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("%w: CountConfirmedForSlots - scan row: %v", ErrScanRow, err)
		}
		counts[slot] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountConfirmedForSlots - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// ExistsByReference проверяет занятость номера бронирования
func (r *Repository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"reference_number": reference}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// CountByService подсчитывает бронирования услуги в любом статусе
// (guard для удаления услуги)
func (r *Repository) CountByService(ctx context.Context, serviceID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByService - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetStatistics агрегирует подтвержденные бронирования по услугам и лагерям
// за опциональный период
func (r *Repository) GetStatistics(ctx context.Context, startDate, endDate *time.Time) (*domain.Statistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("s.name", "b.camp", "COUNT(*)").
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.status": domain.StatusConfirmed}).
		GroupBy("s.name", "b.camp")

	if startDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.date": *startDate})
	}
	if endDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"b.date": *endDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.Statistics{
		ByService: make(map[string]int),
		ByCamp:    make(map[string]int),
	}

	for rows.Next() {
		var serviceName, camp string
		var count int
		if err := rows.Scan(&serviceName, &camp, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStatistics - scan row: %v", ErrScanRow, err)
		}
		stats.ByService[serviceName] += count
		stats.ByCamp[camp] += count
		stats.Total += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.LastName,
		&booking.FirstName,
		&booking.Phone,
		&booking.Camp,
		&booking.Status,
		&booking.ReferenceNumber,
		&booking.ServiceName,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
