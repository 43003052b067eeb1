package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
	Log     services.Logger
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", list)
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.FavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.Add(r.Context(), userID(r), req.ProviderID); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Provider added to favorites", nil)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "provider_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}
	if err := h.Service.Remove(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Provider removed from favorites", nil)
}

func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "provider_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}
	ok, err := h.Service.IsFavorite(r.Context(), userID(r), id)
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]bool{"is_favorite": ok})
}
