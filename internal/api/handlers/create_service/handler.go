package create_service

import (
	"errors"
	"net/http"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/service/services"
	"github.com/camp-taezhny/BookingService/internal/service/services/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNameRequired       = "название услуги обязательно"
	msgDuplicateName      = "услуга с таким названием уже существует"
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

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.services.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNameRequired)

		case errors.Is(err, services.ErrDuplicateName):
			h.logger.Warn("POST /admin/services - Duplicate name: %q", req.Name)
			handlers.RespondConflict(w, msgDuplicateName)

		default:
			h.logger.Error("POST /admin/services - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services - Created: id=%d, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
