package delete_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/service/services"
)

const (
	msgInvalidID          = "некорректный ID услуги"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceHasBookings = "нельзя удалить услугу, по которой есть бронирования"
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

// Handle DELETE /api/v1/admin/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.services.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("DELETE /admin/services/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, services.ErrServiceHasBookings):
			h.logger.Warn("DELETE /admin/services/{id} - Has bookings: id=%d", id)
			handlers.RespondConflict(w, msgServiceHasBookings)

		default:
			h.logger.Error("DELETE /admin/services/{id} - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
