package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
	Log     services.Logger
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListForTraveler(r.Context(), userID(r))
	h.respondList(w, list, err)
}

func (h *BookingHandler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListForProvider(r.Context(), userID(r))
	h.respondList(w, list, err)
}

func (h *BookingHandler) respondList(w http.ResponseWriter, list []models.Booking, err error) {
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	respond(w, http.StatusOK, "", list)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.Service.Create(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Booking created", b)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	var req models.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.Service.UpdateStatus(r.Context(), userID(r), id, req.Status)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Booking status updated", b)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	if err := h.Service.Delete(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Booking deleted", nil)
}
