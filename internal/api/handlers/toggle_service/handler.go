package toggle_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/service/services"
)

const (
	msgInvalidID       = "некорректный ID услуги"
	msgServiceNotFound = "услуга не найдена"
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

// Handle POST /api/v1/admin/services/{id}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.services.Toggle(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			h.logger.Warn("POST /admin/services/{id}/toggle - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("POST /admin/services/{id}/toggle - Failed: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/services/{id}/toggle - Toggled: id=%d, active=%t", id, result.Active)
	handlers.RespondJSON(w, http.StatusOK, result)
}
