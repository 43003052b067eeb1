package models

import "time"

type Review struct {
	ID         int       `json:"id"`
	BookingID  int       `json:"booking_id"`
	TravelerID int       `json:"traveler_id"`
	ServiceID  int       `json:"service_id"`
	ProviderID int       `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	TravelerName string `json:"traveler_name,omitempty"`
	ServiceTitle string `json:"service_title,omitempty"`
}

type ReviewRequest struct {
	BookingID int    `json:"booking_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewUpdateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
