package models

import "time"

const (
	PromotionFeatured    = "featured"
	PromotionTrending    = "trending"
	PromotionSearchBoost = "search_boost"

	PromotionPending  = "pending"
	PromotionApproved = "approved"
	PromotionRejected = "rejected"

	DefaultPromotionDays = 30
)

// Flat promotion price in TZS, charged once per request whatever the duration.
var PromotionCost = map[string]float64{
	PromotionFeatured:    50000,
	PromotionTrending:    30000,
	PromotionSearchBoost: 20000,
}

// PromotionPriorityBoost is added to services.featured_priority on approval.
var PromotionPriorityBoost = map[string]int{
	PromotionFeatured:    10,
	PromotionTrending:    5,
	PromotionSearchBoost: 3,
}

// PromotionFeatures reports whether the type puts the service in the
// featured list until the promotion expires.
func PromotionFeatures(promotionType string) bool {
	return promotionType == PromotionFeatured || promotionType == PromotionTrending
}

type ServicePromotion struct {
	ID                int        `json:"id"`
	ServiceID         int        `json:"service_id"`
	PromotionType     string     `json:"promotion_type"`
	PromotionLocation *string    `json:"promotion_location"`
	DurationDays      int        `json:"duration_days"`
	Cost              float64    `json:"cost"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentReference  string     `json:"payment_reference"`
	PaymentStatus     string     `json:"payment_status"`
	Status            string     `json:"status"`
	StartedAt         *time.Time `json:"started_at"`
	ExpiresAt         time.Time  `json:"expires_at"`
	ApprovedAt        *time.Time `json:"approved_at"`
	ApprovedBy        *int       `json:"approved_by"`
	RejectionReason   *string    `json:"rejection_reason"`
	CreatedAt         time.Time  `json:"created_at"`

	ServiceTitle  string `json:"service_title,omitempty"`
	ProviderName  string `json:"provider_name,omitempty"`
	ProviderEmail string `json:"provider_email,omitempty"`
	// ProviderUserID is the account notified about the review outcome.
	ProviderUserID int `json:"-"`
}

type PromotionStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type PromotionRequest struct {
	PromotionType     string `json:"promotion_type" validate:"required,oneof=featured trending search_boost"`
	DurationDays      int    `json:"duration_days" validate:"omitempty,min=1,max=365"`
	PromotionLocation string `json:"promotion_location"`
	PaymentMethod     string `json:"payment_method" validate:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}
