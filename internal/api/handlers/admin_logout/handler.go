package admin_logout

import (
	"net/http"

	"github.com/camp-taezhny/BookingService/internal/api/handlers"
	"github.com/camp-taezhny/BookingService/internal/api/middleware"
)

type Handler struct {
	auth   AuthService
	logger Logger
}

func NewHandler(auth AuthService, logger Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: logger,
	}
}

// Handle POST /api/v1/admin/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.AdminTokenHeader)

	if err := h.auth.Logout(r.Context(), token); err != nil {
		h.logger.Error("POST /admin/logout - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
