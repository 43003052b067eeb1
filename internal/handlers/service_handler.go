package handlers

import (
	"net/http"
	"strings"

	"isafari/internal/models"
	"isafari/internal/services"
)

type ServiceHandler struct {
	Service *services.ServiceService
	Log     services.Logger
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Service.List(r.Context(), models.ServiceFilter{
		Category:   strings.TrimSpace(q.Get("category")),
		Region:     strings.TrimSpace(q.Get("region")),
		District:   strings.TrimSpace(q.Get("district")),
		Area:       strings.TrimSpace(q.Get("area")),
		Search:     strings.TrimSpace(q.Get("search")),
		MinPrice:   queryFloat(r, "min_price"),
		MaxPrice:   queryFloat(r, "max_price"),
		ProviderID: queryInt(r, "provider_id", 0),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", models.DefaultPageLimit),
	})
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", page)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	svc, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", svc)
}

func (h *ServiceHandler) Featured(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Featured(r.Context())
	h.respondList(w, list, err)
}

func (h *ServiceHandler) Trending(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Trending(r.Context())
	h.respondList(w, list, err)
}

func (h *ServiceHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Mine(r.Context(), userID(r))
	h.respondList(w, list, err)
}

func (h *ServiceHandler) respondList(w http.ResponseWriter, list []models.Service, err error) {
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Service{}
	}
	respond(w, http.StatusOK, "", list)
}

func (h *ServiceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Categories(r.Context())
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.CategoryCount{}
	}
	respond(w, http.StatusOK, "", list)
}

func (h *ServiceHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Destinations(r.Context())
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.DestinationCount{}
	}
	respond(w, http.StatusOK, "", list)
}

// ByLocation runs the journey planner filter.
func (h *ServiceHandler) ByLocation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.SearchByLocation(r.Context(), plannerCriteria(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", res)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.Service.Create(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Service created", svc)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	var req models.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.Service.Update(r.Context(), userID(r), id, req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Service updated", svc)
}

func (h *ServiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	var req models.ServiceStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.Service.SetActive(r.Context(), userID(r), id, *req.IsActive)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Service status updated", svc)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	if err := h.Service.Delete(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Service deleted", nil)
}

func (h *ServiceHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	var req models.PromotionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	promo, err := h.Service.Promote(r.Context(), userID(r), id, req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Promotion submitted for approval", promo)
}

func (h *ServiceHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}
	list, err := h.Service.Promotions(r.Context(), userID(r), id)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.ServicePromotion{}
	}
	respond(w, http.StatusOK, "", list)
}
