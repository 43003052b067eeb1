package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

// AdminHandler serves /api/admin for users, services, providers, bookings
// and promotions. Story moderation lives on StoryHandler.
type AdminHandler struct {
	Service *services.AdminService
	Log     services.Logger
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid user ID")
	if !ok {
		return
	}
	var req models.UserStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.Service.SetUserActive(r.Context(), id, *req.IsActive)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	msg := "User deactivated successfully"
	if u.IsActive {
		msg = "User activated successfully"
	}
	respond(w, http.StatusOK, msg, u)
}

func (h *AdminHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid user ID")
	if !ok {
		return
	}
	u, err := h.Service.VerifyUser(r.Context(), id)
	h.write(w, "User verified successfully", u, err)
}

func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid user ID")
	if !ok {
		return
	}
	u, err := h.Service.SuspendUser(r.Context(), id)
	h.write(w, "User suspended successfully", u, err)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid user ID")
	if !ok {
		return
	}
	err := h.Service.DeleteUser(r.Context(), userID(r), id)
	h.write(w, "User deleted successfully", nil, err)
}

func (h *AdminHandler) ApproveService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid service ID")
	if !ok {
		return
	}
	s, err := h.Service.ApproveService(r.Context(), id)
	h.write(w, "Service approved successfully", s, err)
}

func (h *AdminHandler) RejectService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid service ID")
	if !ok {
		return
	}
	s, err := h.Service.RejectService(r.Context(), id)
	h.write(w, "Service rejected", s, err)
}

func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid service ID")
	if !ok {
		return
	}
	err := h.Service.DeleteService(r.Context(), id)
	h.write(w, "Service deleted successfully", nil, err)
}

func (h *AdminHandler) AddProviderBadge(w http.ResponseWriter, r *http.Request) {
	h.providerBadge(w, r, true, "Verification badge added successfully")
}

func (h *AdminHandler) RemoveProviderBadge(w http.ResponseWriter, r *http.Request) {
	h.providerBadge(w, r, false, "Verification badge removed successfully")
}

func (h *AdminHandler) providerBadge(w http.ResponseWriter, r *http.Request, verified bool, msg string) {
	id, ok := h.id(w, r, "Invalid provider ID")
	if !ok {
		return
	}
	p, err := h.Service.SetProviderBadge(r.Context(), id, verified)
	h.write(w, msg, p, err)
}

func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid booking ID")
	if !ok {
		return
	}
	b, err := h.Service.CancelBooking(r.Context(), id)
	h.write(w, "Booking cancelled successfully", b, err)
}

// Promotions accepts ?status=pending|approved|rejected.
func (h *AdminHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	review, err := h.Service.Promotions(r.Context(), r.URL.Query().Get("status"))
	h.write(w, "", review, err)
}

func (h *AdminHandler) ApprovePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid promotion ID")
	if !ok {
		return
	}
	p, err := h.Service.ApprovePromotion(r.Context(), userID(r), id)
	h.write(w, "Promotion approved successfully. Service is now promoted!", p, err)
}

// RejectPromotion takes an optional {"reason": "..."} body.
func (h *AdminHandler) RejectPromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "Invalid promotion ID")
	if !ok {
		return
	}
	var req models.RejectRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.RejectPromotion(r.Context(), id, req.Reason)
	h.write(w, "Promotion rejected", p, err)
}

func (h *AdminHandler) id(w http.ResponseWriter, r *http.Request, msg string) (int, bool) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) write(w http.ResponseWriter, msg string, data interface{}, err error) {
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, msg, data)
}
