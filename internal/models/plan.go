package models

import "time"

type TripPlan struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	ServiceID int        `json:"service_id"`
	PlanDate  *time.Time `json:"plan_date"`
	Notes     *string    `json:"notes"`
	AddedAt   time.Time  `json:"added_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Category     *string  `json:"category"`
	Location     string   `json:"location"`
	Images       []string `json:"images"`
	BusinessName string   `json:"business_name"`
}

type PlanRequest struct {
	ServiceID int     `json:"service_id" validate:"required,gt=0"`
	PlanDate  *string `json:"plan_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes"`
}

type PlanUpdateRequest struct {
	PlanDate *string `json:"plan_date" validate:"omitempty,datetime=2006-01-02"`
	Notes    *string `json:"notes"`
}
