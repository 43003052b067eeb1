package models

import (
	"encoding/json"
	"time"
)

type Service struct {
	ID                int             `json:"id"`
	ProviderID        *int            `json:"provider_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Category          *string         `json:"category"`
	Subcategory       *string         `json:"subcategory"`
	Price             float64         `json:"price"`
	Currency          string          `json:"currency"`
	Duration          *int            `json:"duration"`
	MaxParticipants   *int            `json:"max_participants"`
	Location          string          `json:"location"`
	Country           *string         `json:"country"`
	Region            *string         `json:"region"`
	District          *string         `json:"district"`
	Area              *string         `json:"area"`
	Images            []string        `json:"images"`
	Amenities         []string        `json:"amenities"`
	IsActive          bool            `json:"is_active"`
	IsFeatured        bool            `json:"is_featured"`
	FeaturedUntil     *time.Time      `json:"featured_until"`
	FeaturedPriority  int             `json:"featured_priority"`
	PromotionType     *string         `json:"promotion_type"`
	PromotionLocation *string         `json:"promotion_location"`
	ViewsCount        int             `json:"views_count"`
	BookingsCount     int             `json:"bookings_count"`
	AverageRating     float64         `json:"average_rating"`
	TotalBookings     int             `json:"total_bookings"`
	PaymentMethods    json.RawMessage `json:"payment_methods,omitempty"`
	ContactInfo       json.RawMessage `json:"contact_info,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	BusinessName string `json:"business_name,omitempty"`
}

type ServiceFilter struct {
	Category   string
	Region     string
	District   string
	Area       string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	ProviderID int
	Page       int
	Limit      int
}

type ServiceRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"required"`
	Subcategory     string          `json:"subcategory"`
	Price           float64         `json:"price" validate:"gte=0"`
	Currency        string          `json:"currency" validate:"omitempty,len=3"`
	Duration        *int            `json:"duration" validate:"omitempty,gte=0"`
	MaxParticipants *int            `json:"max_participants" validate:"omitempty,gte=1"`
	Location        string          `json:"location"`
	Country         string          `json:"country"`
	Region          string          `json:"region"`
	District        string          `json:"district"`
	Area            string          `json:"area"`
	Images          []string        `json:"images"`
	Amenities       []string        `json:"amenities"`
	PaymentMethods  json.RawMessage `json:"payment_methods"`
	ContactInfo     json.RawMessage `json:"contact_info"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type DestinationCount struct {
	Region       string `json:"region"`
	Country      string `json:"country"`
	ServiceCount int    `json:"service_count"`
}

type ServiceStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
