package models

import "time"

const (
	JourneyDraft          = "draft"
	JourneySaved          = "saved"
	JourneyPendingPayment = "pending_payment"
	JourneyConfirmed      = "confirmed"
	JourneyCompleted      = "completed"
	JourneyCancelled      = "cancelled"

	MinJourneyDestinations = 2
	MaxJourneyDestinations = 4
)

var JourneyStatuses = []string{
	JourneyDraft, JourneySaved, JourneyPendingPayment,
	JourneyConfirmed, JourneyCompleted, JourneyCancelled,
}

type Journey struct {
	ID                int        `json:"id"`
	UserID            int        `json:"user_id"`
	JourneyName       *string    `json:"journey_name"`
	TotalDestinations int        `json:"total_destinations"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	Travelers         int        `json:"travelers"`
	Budget            *string    `json:"budget"`
	TotalCost         float64    `json:"total_cost"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Destinations []JourneyDestination `json:"destinations"`
	Services     []JourneyService     `json:"services"`
}

type JourneyDestination struct {
	ID               int       `json:"id"`
	JourneyID        int       `json:"journey_id"`
	DestinationOrder int       `json:"destination_order"`
	Country          *string   `json:"country"`
	Region           *string   `json:"region"`
	District         *string   `json:"district"`
	Sublocation      *string   `json:"sublocation"`
	IsStartingPoint  bool      `json:"is_starting_point"`
	IsEndingPoint    bool      `json:"is_ending_point"`
	CreatedAt        time.Time `json:"created_at"`
}

type JourneyService struct {
	ID            int       `json:"id"`
	JourneyID     int       `json:"journey_id"`
	DestinationID *int      `json:"destination_id"`
	ServiceID     int       `json:"service_id"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	AddedAt       time.Time `json:"added_at"`

	Title    string  `json:"title"`
	Category *string `json:"category"`
}

type DestinationInput struct {
	Country     string `json:"country"`
	Region      string `json:"region"`
	District    string `json:"district"`
	Sublocation string `json:"sublocation"`
}

type JourneyRequest struct {
	JourneyName  string             `json:"journey_name"`
	Destinations []DestinationInput `json:"destinations"`
	StartDate    *string            `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string            `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Travelers    int                `json:"travelers" validate:"omitempty,gte=1"`
	Budget       string             `json:"budget"`
}

type JourneyServiceRequest struct {
	ServiceID     int     `json:"service_id" validate:"required,gt=0"`
	DestinationID *int    `json:"destination_id"`
	Quantity      int     `json:"quantity" validate:"omitempty,gte=1"`
	Price         float64 `json:"price" validate:"gte=0"`
}
