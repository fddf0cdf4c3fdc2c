package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/service/services"
	"github.com/camp-taezhny/BookingService/internal/service/services/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID услуги"
	msgServiceNotFound    = "услуга не найдена"
	msgDuplicateName      = "услуга с таким названием уже существует"
	msgNameEmpty          = "название услуги не может быть пустым"
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

// Handle PUT /api/v1/admin/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.services.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("PUT /admin/services/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, services.ErrDuplicateName):
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, services.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNameEmpty)

		default:
			h.logger.Error("PUT /admin/services/{id} - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
