package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
	Log     services.Logger
}

func (h *ReviewHandler) ByService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	list, err := h.Service.ListByService(r.Context(), id)
	h.respondList(w, list, err)
}

func (h *ReviewHandler) ByProvider(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}
	list, err := h.Service.ListByProvider(r.Context(), id)
	h.respondList(w, list, err)
}

func (h *ReviewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListMine(r.Context(), userID(r))
	h.respondList(w, list, err)
}

func (h *ReviewHandler) respondList(w http.ResponseWriter, list []models.Review, err error) {
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Review{}
	}
	respond(w, http.StatusOK, "", list)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Service.Create(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Review created", rv)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	var req models.ReviewUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Service.Update(r.Context(), userID(r), id, req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Review updated", rv)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	if err := h.Service.Delete(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Review deleted", nil)
}
