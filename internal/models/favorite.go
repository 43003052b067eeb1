package models

import "time"

type Favorite struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	ProviderID int       `json:"provider_id"`
	AddedAt    time.Time `json:"added_at"`

	BusinessName string  `json:"business_name"`
	BusinessType string  `json:"business_type"`
	Location     string  `json:"location"`
	Region       *string `json:"region"`
	Rating       float64 `json:"rating"`
	IsVerified   bool    `json:"is_verified"`
	ServiceCount int     `json:"service_count"`
}

type FavoriteRequest struct {
	ProviderID int `json:"provider_id" validate:"required,gt=0"`
}
