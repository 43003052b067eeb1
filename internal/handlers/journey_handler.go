package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type JourneyHandler struct {
	Service *services.JourneyService
	Log     services.Logger
}

func (h *JourneyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.JourneyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	j, err := h.Service.Create(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Multi-trip journey created", j)
}

func (h *JourneyHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", list)
}

func (h *JourneyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid journey ID")
		return
	}
	j, err := h.Service.Get(r.Context(), userID(r), id)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", j)
}

func (h *JourneyHandler) AddService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid journey ID")
		return
	}
	var req models.JourneyServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Service.AddService(r.Context(), userID(r), id, req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Service added to journey", res)
}

func (h *JourneyHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid journey ID")
		return
	}
	serviceID, err := idParam(r, "service_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	total, err := h.Service.RemoveService(r.Context(), userID(r), id, serviceID)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Service removed from journey", map[string]float64{"total_cost": total})
}

func (h *JourneyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid journey ID")
		return
	}
	var req models.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	j, err := h.Service.UpdateStatus(r.Context(), userID(r), id, req.Status)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Journey status updated", j)
}

func (h *JourneyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid journey ID")
		return
	}
	if err := h.Service.Delete(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Journey deleted", nil)
}
