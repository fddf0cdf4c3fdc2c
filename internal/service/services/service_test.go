package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camp-taezhny/BookingService/internal/domain"
	serviceRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/service"
	"github.com/camp-taezhny/BookingService/internal/service/services/models"
	"github.com/camp-taezhny/BookingService/pkg/ptr"
)

// --- fakes ---

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeServiceRepository struct {
	services  map[int64]*domain.Service
	nextID    int64
	createErr error
	updated   *domain.Service
	deleted   []int64
}

func newFakeServiceRepository() *fakeServiceRepository {
	return &fakeServiceRepository{services: make(map[int64]*domain.Service), nextID: 1}
}

func (r *fakeServiceRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	saved := *service
	saved.ID = r.nextID
	r.nextID++
	r.services[saved.ID] = &saved
	return &saved, nil
}

func (r *fakeServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeServiceRepository) GetActive(ctx context.Context) ([]*domain.Service, error) {
	active := make([]*domain.Service, 0)
	for _, s := range r.services {
		if s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}

func (r *fakeServiceRepository) GetAll(ctx context.Context) ([]*domain.Service, error) {
	all := make([]*domain.Service, 0, len(r.services))
	for _, s := range r.services {
		all = append(all, s)
	}
	return all, nil
}

func (r *fakeServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	r.updated = service
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepository) SetActive(ctx context.Context, id int64, active bool) error {
	s, ok := r.services[id]
	if !ok {
		return serviceRepo.ErrServiceNotFound
	}
	s.Active = active
	return nil
}

func (r *fakeServiceRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := r.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	delete(r.services, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeBookingCounter struct {
	count int
}

func (r *fakeBookingCounter) CountByService(ctx context.Context, serviceID int64) (int, error) {
	return r.count, nil
}

// --- fixtures ---

func testSettings() Settings {
	return Settings{
		DefaultRequiredDocuments: []string{"Паспорт"},
		Priorities:               map[string]int{"Медицинская справка": 1},
	}
}

func newTestService(repo *fakeServiceRepository, bookings *fakeBookingCounter) *Service {
	return NewService(repo, bookings, testSettings(), &fakeLogger{})
}

// --- tests ---

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := newFakeServiceRepository()
	svc := newTestService(repo, &fakeBookingCounter{})

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:        "  Медицинская справка  ",
		Description: "Справка для бассейна",
	})
	require.NoError(t, err)

	assert.Equal(t, "Медицинская справка", resp.Name)
	assert.True(t, resp.Active)
	assert.Equal(t, []string{"Паспорт"}, resp.RequiredDocuments)
	// Приоритет берется из настроек по имени
	assert.Equal(t, 1, resp.DisplayOrder)
}

func TestCreate_UnknownNameGetsDefaultOrder(t *testing.T) {
	repo := newFakeServiceRepository()
	svc := newTestService(repo, &fakeBookingCounter{})

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{Name: "Прокат лыж"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayOrder, resp.DisplayOrder)
}

func TestCreate_EmptyName(t *testing.T) {
	svc := newTestService(newFakeServiceRepository(), &fakeBookingCounter{})

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := newFakeServiceRepository()
	repo.createErr = serviceRepo.ErrDuplicateName
	svc := newTestService(repo, &fakeBookingCounter{})

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{Name: "Медицинская справка"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeServiceRepository()
	repo.services[1] = &domain.Service{
		ID:                1,
		Name:              "Медицинская справка",
		Description:       "старое описание",
		RequiredDocuments: []string{"Паспорт"},
		Active:            true,
		DisplayOrder:      1,
	}
	svc := newTestService(repo, &fakeBookingCounter{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Description:  ptr.Ptr("новое описание"),
		DisplayOrder: ptr.Ptr(5),
	})
	require.NoError(t, err)

	// Не указанные поля не меняются
	assert.Equal(t, "Медицинская справка", resp.Name)
	assert.Equal(t, "новое описание", resp.Description)
	assert.Equal(t, 5, resp.DisplayOrder)
	assert.Equal(t, []string{"Паспорт"}, resp.RequiredDocuments)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newFakeServiceRepository(), &fakeBookingCounter{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestToggle_FlipsActive(t *testing.T) {
	repo := newFakeServiceRepository()
	repo.services[1] = &domain.Service{ID: 1, Name: "Медицинская справка", Active: true}
	svc := newTestService(repo, &fakeBookingCounter{})

	resp, err := svc.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	resp, err = svc.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.Active)
}

func TestDelete(t *testing.T) {
	repo := newFakeServiceRepository()
	repo.services[1] = &domain.Service{ID: 1, Name: "Медицинская справка"}
	svc := newTestService(repo, &fakeBookingCounter{})

	err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDelete_ServiceHasBookings(t *testing.T) {
	repo := newFakeServiceRepository()
	repo.services[1] = &domain.Service{ID: 1, Name: "Медицинская справка"}
	svc := newTestService(repo, &fakeBookingCounter{count: 3})

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceHasBookings)
	assert.Empty(t, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeServiceRepository(), &fakeBookingCounter{})

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
