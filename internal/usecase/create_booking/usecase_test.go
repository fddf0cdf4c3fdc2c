package create_booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camp-taezhny/BookingService/internal/domain"
	bookingRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/service"
	"github.com/camp-taezhny/BookingService/pkg/types"
)

var referencePattern = regexp.MustCompile(`^\d{8}-[A-Z0-9]{4}$`)

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

type fakeBookingRepository struct {
	slotCount    int
	countErr     error
	existsCalls  int
	existsResult []bool
	createCalls  int
	createErrs   []error
	created      []*domain.Booking
}

func (r *fakeBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	call := r.createCalls
	r.createCalls++
	if call < len(r.createErrs) && r.createErrs[call] != nil {
		return nil, r.createErrs[call]
	}

	saved := *booking
	saved.ID = int64(len(r.created) + 1)
	saved.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r.created = append(r.created, &saved)
	return &saved, nil
}

func (r *fakeBookingRepository) CountConfirmedForSlot(ctx context.Context, date time.Time, timeSlot string) (int, error) {
	return r.slotCount, r.countErr
}

func (r *fakeBookingRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	call := r.existsCalls
	r.existsCalls++
	if call < len(r.existsResult) {
		return r.existsResult[call], nil
	}
	return false, nil
}

type fakeServiceRepository struct {
	service *domain.Service
	err     error
}

func (r *fakeServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.service, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- fixtures ---

func testSettings() Settings {
	return Settings{
		MaxPerSlot: 2,
		DaysAhead:  30,
		OpenTime:   types.TimeString("09:00"),
		CloseTime:  types.TimeString("17:00"),
		Camps:      []string{"Таежный", "Лесной"},
	}
}

func testService() *domain.Service {
	return &domain.Service{
		ID:                1,
		Name:              "Медицинская справка",
		Active:            true,
		RequiredDocuments: []string{"Паспорт", "Полис ОМС"},
	}
}

func testRequest(now time.Time) *Request {
	return &Request{
		ServiceID: 1,
		Date:      now.AddDate(0, 0, 1),
		TimeSlot:  types.TimeString("10:15"),
		LastName:  "Иванов",
		FirstName: "Мария",
		Phone:     "8 (912) 345-67-89",
		Camp:      "Таежный",
	}
}

func newTestUseCase(bookings *fakeBookingRepository, services *fakeServiceRepository, now time.Time) *UseCase {
	uc := NewUseCase(bookings, services, &fakeTxManager{}, testSettings(), &fakeLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{}
	services := &fakeServiceRepository{service: testService()}
	uc := newTestUseCase(bookings, services, now)

	resp, err := uc.Execute(context.Background(), testRequest(now))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(1), resp.ID)
	assert.Regexp(t, referencePattern, resp.ReferenceNumber)
	assert.Equal(t, now.Format("20060102"), resp.ReferenceNumber[:8])
	assert.Equal(t, "Медицинская справка", resp.ServiceName)
	assert.Equal(t, "+7 (912) 345-67-89", resp.Phone)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, []string{"Паспорт", "Полис ОМС"}, resp.RequiredDocuments)
}

func TestExecute_ReferencePrefixIsCreationDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{}
	services := &fakeServiceRepository{service: testService()}
	uc := newTestUseCase(bookings, services, now)

	// Запись на дату через несколько дней: префикс номера остается
	// датой оформления, а не датой визита
	req := testRequest(now)
	req.Date = now.AddDate(0, 0, 5)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "20260310", resp.ReferenceNumber[:8])
	assert.NotEqual(t, req.Date.Format("20060102"), resp.ReferenceNumber[:8])
}

func TestExecute_NormalizesNames(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{}
	services := &fakeServiceRepository{service: testService()}
	uc := newTestUseCase(bookings, services, now)

	req := testRequest(now)
	req.LastName = "  Петрова-Иванова  "
	req.FirstName = "Анна   Мария"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Петрова-Иванова", resp.LastName)
	assert.Equal(t, "Анна Мария", resp.FirstName)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(req *Request)
		field  string
	}{
		{
			name:   "фамилия короче двух символов",
			mutate: func(req *Request) { req.LastName = "И" },
			field:  "last_name",
		},
		{
			name:   "фамилия на латинице",
			mutate: func(req *Request) { req.LastName = "Ivanov" },
			field:  "last_name",
		},
		{
			name:   "пустое имя",
			mutate: func(req *Request) { req.FirstName = "" },
			field:  "first_name",
		},
		{
			name:   "телефон со слишком коротким номером",
			mutate: func(req *Request) { req.Phone = "12345" },
			field:  "phone",
		},
		{
			name:   "дата в прошлом",
			mutate: func(req *Request) { req.Date = now.AddDate(0, 0, -1) },
			field:  "date",
		},
		{
			name:   "дата за пределами окна",
			mutate: func(req *Request) { req.Date = now.AddDate(0, 0, 31) },
			field:  "date",
		},
		{
			name:   "время вне 15-минутной сетки",
			mutate: func(req *Request) { req.TimeSlot = types.TimeString("10:20") },
			field:  "time_slot",
		},
		{
			name:   "время до открытия",
			mutate: func(req *Request) { req.TimeSlot = types.TimeString("08:45") },
			field:  "time_slot",
		},
		{
			name:   "время закрытия не является слотом",
			mutate: func(req *Request) { req.TimeSlot = types.TimeString("17:00") },
			field:  "time_slot",
		},
		{
			name:   "неизвестный лагерь",
			mutate: func(req *Request) { req.Camp = "Горный" },
			field:  "camp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepository{}
			services := &fakeServiceRepository{service: testService()}
			uc := newTestUseCase(bookings, services, now)

			req := testRequest(now)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)

			verrs, ok := AsValidationErrors(err)
			require.True(t, ok, "expected ValidationErrors, got %v", err)
			assert.Contains(t, verrs, tt.field)
			// Валидация не должна трогать хранилище
			assert.Zero(t, bookings.createCalls)
		})
	}
}

func TestExecute_CollectsAllFieldErrors(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepository{}, &fakeServiceRepository{service: testService()}, now)

	req := testRequest(now)
	req.LastName = "X"
	req.Phone = "abc"
	req.Camp = ""

	_, err := uc.Execute(context.Background(), req)
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)

	assert.Len(t, verrs, 3)
	assert.Contains(t, verrs, "last_name")
	assert.Contains(t, verrs, "phone")
	assert.Contains(t, verrs, "camp")
}

func TestExecute_LastSlotOfDayIsValid(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepository{}, &fakeServiceRepository{service: testService()}, now)

	req := testRequest(now)
	req.TimeSlot = types.TimeString("16:45")

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SlotFull(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{slotCount: 2}
	uc := newTestUseCase(bookings, &fakeServiceRepository{service: testService()}, now)

	_, err := uc.Execute(context.Background(), testRequest(now))
	require.Error(t, err)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Это время уже занято, выберите другое", verrs["time_slot"])
	assert.Zero(t, bookings.createCalls)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	services := &fakeServiceRepository{err: serviceRepo.ErrServiceNotFound}
	uc := newTestUseCase(&fakeBookingRepository{}, services, now)

	_, err := uc.Execute(context.Background(), testRequest(now))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DisabledServiceTreatedAsNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service := testService()
	service.Active = false
	uc := newTestUseCase(&fakeBookingRepository{}, &fakeServiceRepository{service: service}, now)

	_, err := uc.Execute(context.Background(), testRequest(now))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RetriesOnTakenReference(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{existsResult: []bool{true, false}}
	uc := newTestUseCase(bookings, &fakeServiceRepository{service: testService()}, now)

	resp, err := uc.Execute(context.Background(), testRequest(now))
	require.NoError(t, err)

	assert.Equal(t, 2, bookings.existsCalls)
	assert.Equal(t, 1, bookings.createCalls)
	assert.Regexp(t, referencePattern, resp.ReferenceNumber)
}

func TestExecute_RetriesOnInsertCollision(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{createErrs: []error{bookingRepo.ErrDuplicateReference, nil}}
	uc := newTestUseCase(bookings, &fakeServiceRepository{service: testService()}, now)

	_, err := uc.Execute(context.Background(), testRequest(now))
	require.NoError(t, err)
	assert.Equal(t, 2, bookings.createCalls)
}

func TestExecute_GivesUpAfterMaxReferenceAttempts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{
		existsResult: []bool{true, true, true, true, true},
	}
	uc := newTestUseCase(bookings, &fakeServiceRepository{service: testService()}, now)

	_, err := uc.Execute(context.Background(), testRequest(now))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxReferenceAttempts, bookings.existsCalls)
	assert.Zero(t, bookings.createCalls)
}

func TestExecute_CountErrorIsInternal(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepository{countErr: errors.New("connection refused")}
	uc := newTestUseCase(bookings, &fakeServiceRepository{service: testService()}, now)

	_, err := uc.Execute(context.Background(), testRequest(now))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGenerateReference_Format(t *testing.T) {
	now := time.Date(2026, 7, 1, 15, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		reference := generateReference(now)
		assert.Regexp(t, referencePattern, reference)
		assert.Equal(t, "20260701", reference[:8])
	}
}
