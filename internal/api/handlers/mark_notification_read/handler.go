package mark_notification_read

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/service/notifications"
)

const (
	msgInvalidID            = "некорректный ID уведомления"
	msgNotificationNotFound = "уведомление не найдено"
)

type Handler struct {
	notifications NotificationsService
	logger        Logger
}

func NewHandler(notifications NotificationsService, logger Logger) *Handler {
	return &Handler{
		notifications: notifications,
		logger:        logger,
	}
}

// Handle POST /api/v1/notifications/{id}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, notifications.ErrNotificationNotFound) {
			h.logger.Warn("POST /notifications/{id}/read - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotificationNotFound)
			return
		}
		h.logger.Error("POST /notifications/{id}/read - Failed: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
