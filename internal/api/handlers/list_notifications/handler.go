package list_notifications

import (
	"errors"
	"net/http"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/service/notifications"
)

const (
	msgMissingPhone = "параметр phone обязателен"
	msgInvalidPhone = "некорректный номер телефона"
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

// Handle GET /api/v1/notifications?phone=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	result, err := h.notifications.ListByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, notifications.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPhone)
			return
		}
		h.logger.Error("GET /notifications - Failed to list notifications: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUnreadCount GET /api/v1/notifications/unread-count?phone=
func (h *Handler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	result, err := h.notifications.UnreadCount(r.Context(), phone)
	if err != nil {
		if errors.Is(err, notifications.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPhone)
			return
		}
		h.logger.Error("GET /notifications/unread-count - Failed to count: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
