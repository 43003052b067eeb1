package models

import (
	"encoding/json"
	"time"
)

const (
	NotificationBookingCreated = "booking_created"
	NotificationBookingStatus  = "booking_status"
	NotificationStoryApproved  = "story_approved"
	NotificationStoryRejected  = "story_rejected"
	NotificationPayment        = "payment_received"
	NotificationNewReview      = "new_review"
	NotificationPromotion      = "promotion_status"
)

type Notification struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
	Pagination    Pagination     `json:"pagination"`
}
