package list_services

import (
	"net/http"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
)

type Handler struct {
	services ServicesService
	logger   Logger
}

func NewHandler(services ServicesService, logger Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Handle GET /api/v1/services
// Публичная витрина: только активные услуги в порядке приоритета
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleAdmin GET /api/v1/admin/services
// Все услуги, включая отключенные
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
