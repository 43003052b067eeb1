package models

import "time"

type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ServiceID int       `json:"service_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Category     *string  `json:"category"`
	Location     string   `json:"location"`
	Images       []string `json:"images"`
	ProviderID   *int     `json:"provider_id"`
	BusinessName string   `json:"business_name"`
}

type CartAddRequest struct {
	ServiceID int `json:"service_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"omitempty,gte=1"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	BookingDate     string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	SpecialRequests string `json:"special_requests"`
}
