package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
	Log     services.Logger
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Payment{}
	}
	respond(w, http.StatusOK, "", list)
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.PayBooking(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Payment recorded", p)
}
