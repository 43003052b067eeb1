package handlers

import (
	"net/http"
	"strings"

	"isafari/internal/models"
	"isafari/internal/services"
)

type ProviderHandler struct {
	Service *services.ProviderService
	Log     services.Logger
}

func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Service.List(r.Context(), models.ProviderFilter{
		Country: strings.TrimSpace(q.Get("country")),
		Region:  strings.TrimSpace(q.Get("region")),
		Page:    queryInt(r, "page", 1),
		Limit:   queryInt(r, "limit", models.DefaultPageLimit),
	})
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", page)
}

func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}
	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", p)
}

// Search groups planner matches by provider; see ProviderService.Search.
func (h *ProviderHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Search(r.Context(), plannerCriteria(r),
		queryInt(r, "page", 1), queryInt(r, "limit", models.DefaultPageLimit))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	msg := ""
	if res.FallbackSearch {
		msg = "No providers matched the location, showing all providers"
	}
	respond(w, http.StatusOK, msg, res)
}

func (h *ProviderHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.UpdateProfile(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Provider profile updated", p)
}
