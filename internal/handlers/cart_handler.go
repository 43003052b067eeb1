package handlers

import (
	"net/http"

	"isafari/internal/models"
	"isafari/internal/services"
)

type CartHandler struct {
	Service *services.CartService
	Log     services.Logger
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Service.Get(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "", cart)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.CartAddRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.Service.Add(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Added to cart", item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}
	var req models.CartQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.Service.UpdateQuantity(r.Context(), userID(r), id, req.Quantity)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Cart updated", item)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}
	if err := h.Service.Remove(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Removed from cart", nil)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.Clear(r.Context(), userID(r))
	if err != nil {
		serverError(w, h.Log, err)
		return
	}
	respond(w, http.StatusOK, "Cart cleared", map[string]int64{"removed": n})
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	bookings, err := h.Service.Checkout(r.Context(), userID(r), req)
	if err != nil {
		respondServiceError(w, h.Log, err)
		return
	}
	respond(w, http.StatusCreated, "Checkout completed", map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}
