package models

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

type Booking struct {
	ID              int       `json:"id"`
	TravelerID      int       `json:"traveler_id"`
	ServiceID       int       `json:"service_id"`
	ProviderID      int       `json:"provider_id"`
	BookingDate     time.Time `json:"booking_date"`
	StartTime       *string   `json:"start_time"`
	EndTime         *string   `json:"end_time"`
	Participants    int       `json:"participants"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	SpecialRequests *string   `json:"special_requests"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	ServiceTitle  string `json:"service_title,omitempty"`
	BusinessName  string `json:"business_name,omitempty"`
	TravelerName  string `json:"traveler_name,omitempty"`
	TravelerEmail string `json:"traveler_email,omitempty"`
}

type BookingRequest struct {
	ServiceID       int    `json:"service_id" validate:"required,gt=0"`
	BookingDate     string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Participants    int    `json:"participants" validate:"omitempty,gte=1"`
	SpecialRequests string `json:"special_requests"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
