package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type PlanHandler struct {
	Service *services.PlanService
	Log     services.Logger
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", list)
}

func (h *PlanHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.Add(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Added to plan", p)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}
	var req models.PlanUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.Update(r.Context(), userID(r), id, req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Plan updated", p)
}

func (h *PlanHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}
	if err := h.Service.Remove(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Removed from plan", nil)
}

func (h *PlanHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.Clear(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Plan cleared", map[string]int64{"removed": n})
}
