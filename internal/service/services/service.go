package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/camp-taezhny/BookingService/internal/domain"
	serviceRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/service"
	"github.com/camp-taezhny/BookingService/internal/service/services/models"
)

// Settings настройки реестра услуг из конфигурации
type Settings struct {
	DefaultRequiredDocuments []string
	// Явные приоритеты отображения (имя услуги -> позиция),
	// остальные услуги идут после них в алфавитном порядке
	Priorities map[string]int
}

// Service сервис реестра услуг
type Service struct {
	serviceRepo ServiceRepository
	bookingRepo BookingRepository
	settings    Settings
	logger      Logger
}

// NewService создает новый экземпляр сервиса реестра услуг
func NewService(serviceRepo ServiceRepository, bookingRepo BookingRepository, settings Settings, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
		settings:    settings,
		logger:      logger,
	}
}

// ListActive возвращает активные услуги для публичной витрины,
// упорядоченные по приоритету отображения
func (s *Service) ListActive(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.GetActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// ListAll возвращает все услуги, включая отключенные
func (s *Service) ListAll(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainService(service), nil
}

// Create создает услугу. Новая услуга сразу активна, список документов
// по умолчанию и позиция отображения берутся из конфигурации.
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	s.logger.Info("Create: creating service name=%q", name)

	documents := req.RequiredDocuments
	if len(documents) == 0 {
		documents = s.settings.DefaultRequiredDocuments
	}

	service, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:              name,
		Description:       strings.TrimSpace(req.Description),
		RequiredDocuments: documents,
		Active:            true,
		DisplayOrder:      s.displayOrderFor(name),
	})
	if err != nil {
		if errors.Is(err, serviceRepo.ErrDuplicateName) {
			s.logger.Warn("Create: service name=%q already exists", name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d", service.ID)
	return models.FromDomainService(service), nil
}

// Update обновляет услугу, указанные поля заменяются целиком
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		service.Name = name
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.RequiredDocuments != nil {
		service.RequiredDocuments = *req.RequiredDocuments
	}
	if req.DisplayOrder != nil {
		service.DisplayOrder = *req.DisplayOrder
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, serviceRepo.ErrDuplicateName) {
			s.logger.Warn("Update: service name=%q already exists", service.Name)
			return nil, ErrDuplicateName
		}
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// Toggle переключает активность услуги. Отключенная услуга не
// принимает новые бронирования, существующие не затрагиваются.
func (s *Service) Toggle(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Toggle: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Toggle - repository error: %v", ErrInternal, err)
	}

	return s.SetActive(ctx, id, !service.Active)
}

// SetActive включает или отключает услугу
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*models.ServiceResponse, error) {
	if err := s.serviceRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("SetActive: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: service id=%d active=%t", id, active)
	return s.GetByID(ctx, id)
}

// Delete удаляет услугу. Услуга с бронированиями любого статуса не
// удаляется; количество перепроверяется непосредственно перед удалением,
// чтобы сузить окно гонки с конкурентным созданием бронирования.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.serviceRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	count, err := s.bookingRepo.CountByService(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count bookings for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Delete: service id=%d has %d bookings, refusing to delete", id, count)
		return ErrServiceHasBookings
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted service id=%d", id)
	return nil
}

// displayOrderFor возвращает позицию отображения для имени услуги
func (s *Service) displayOrderFor(name string) int {
	if order, ok := s.settings.Priorities[name]; ok {
		return order
	}
	return domain.DefaultDisplayOrder
}
