package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claritycrm/crm-backend/internal/infra/http/middleware"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type NotificationHandler struct {
	Notifications *usecase.NotificationUseCase
}

func NewNotificationHandler(notifications *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Notifications.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// UnreadCount is what the client polls every minute. The number is
// derived from the rows on each request.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Notifications.UnreadCount(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notification, err := h.Notifications.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordNotificationRead()
	respondJSON(w, http.StatusOK, notification)
}
