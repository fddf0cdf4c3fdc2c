package models

import (
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
}

// UpdateServiceRequest запрос на обновление услуги, nil-поля не меняются
type UpdateServiceRequest struct {
	Name              *string   `json:"name,omitempty"`
	Description       *string   `json:"description,omitempty"`
	RequiredDocuments *[]string `json:"required_documents,omitempty"`
	DisplayOrder      *int      `json:"display_order,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	RequiredDocuments []string `json:"required_documents"`
	Active            bool     `json:"active"`
	DisplayOrder      int      `json:"display_order"`
	CreatedAt         string   `json:"created_at"` // RFC3339
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

// FromDomainService конвертирует domain модель в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	documents := s.RequiredDocuments
	if documents == nil {
		documents = []string{}
	}
	return &ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		RequiredDocuments: documents,
		Active:            s.Active,
		DisplayOrder:      s.DisplayOrder,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainServiceList конвертирует список domain моделей в response
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	items := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, *FromDomainService(s))
	}
	return &ServiceListResponse{Services: items, Total: len(items)}
}
