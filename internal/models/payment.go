package models

import "time"

const (
	PaymentTypePremium  = "premium_membership"
	PaymentTypeFeatured = "featured_service"
	PaymentTypeBooking  = "booking_payment"

	PaymentCompleted = "completed"
)

type Payment struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	ProviderID    *int       `json:"provider_id"`
	ServiceID     *int       `json:"service_id"`
	BookingID     *int       `json:"booking_id"`
	PaymentType   string     `json:"payment_type"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id"`
	Description   string     `json:"description"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaymentRequest struct {
	BookingID     int    `json:"booking_id" validate:"required,gt=0"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}
