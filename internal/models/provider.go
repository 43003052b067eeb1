package models

import (
	"encoding/json"
	"time"
)

type LocationData struct {
	Country  string `json:"country"`
	Region   string `json:"region"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Street   string `json:"street"`
}

type ServiceProvider struct {
	ID                int             `json:"id"`
	UserID            int             `json:"user_id"`
	BusinessName      string          `json:"business_name"`
	BusinessType      string          `json:"business_type"`
	Description       string          `json:"description"`
	Location          string          `json:"location"`
	ServiceLocation   string          `json:"service_location"`
	Country           *string         `json:"country"`
	Region            *string         `json:"region"`
	District          *string         `json:"district"`
	Area              *string         `json:"area"`
	Ward              *string         `json:"ward"`
	LocationData      json.RawMessage `json:"location_data,omitempty"`
	ServiceCategories []string        `json:"service_categories"`
	LicenseNumber     string          `json:"license_number"`
	Rating            float64         `json:"rating"`
	TotalBookings     int             `json:"total_bookings"`
	IsVerified        bool            `json:"is_verified"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Email    string    `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Services []Service `json:"services,omitempty"`
}

type ProviderFilter struct {
	Country string
	Region  string
	Page    int
	Limit   int
}

type UpdateProviderRequest struct {
	BusinessName      *string  `json:"business_name"`
	BusinessType      *string  `json:"business_type"`
	Description       *string  `json:"description"`
	Location          *string  `json:"location"`
	ServiceLocation   *string  `json:"service_location"`
	Country           *string  `json:"country"`
	Region            *string  `json:"region"`
	District          *string  `json:"district"`
	Area              *string  `json:"area"`
	Ward              *string  `json:"ward"`
	ServiceCategories []string `json:"service_categories"`
	LicenseNumber     *string  `json:"license_number"`
}
