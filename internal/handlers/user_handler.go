package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type UserHandler struct {
	Service *services.UserService
	Log     services.Logger
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Profile(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", u)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.Service.UpdateProfile(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Profile updated", u)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.ChangePassword(r.Context(), userID(r), req); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Password changed", nil)
}

func (h *UserHandler) SetDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.SetDeviceToken(r.Context(), userID(r), req.Token); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Device token saved", nil)
}
