package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
	Log     services.Logger
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), userID(r), queryBool(r, "unread_only"),
		queryInt(r, "page", 1), queryInt(r, "limit", models.DefaultPageLimit))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", page)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	if err := h.Service.MarkRead(r.Context(), id, userID(r)); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.MarkAllRead(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "All notifications marked as read", map[string]int64{"updated": n})
}
