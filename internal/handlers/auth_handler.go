package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
	Log     services.Logger
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "User registered successfully", res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Login successful", res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Me(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", u)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.ForgotPassword(r.Context(), req.Email); err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Password has been reset", nil)
}
