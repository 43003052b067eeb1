package models

import (
	"encoding/json"
	"time"
)

type TravelerStory struct {
	ID            int             `json:"id"`
	UserID        int             `json:"user_id"`
	Title         string          `json:"title"`
	Story         string          `json:"story"`
	Location      string          `json:"location"`
	Duration      *string         `json:"duration"`
	Highlights    []string        `json:"highlights"`
	Media         json.RawMessage `json:"media,omitempty"`
	IsApproved    bool            `json:"is_approved"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	LikesCount    int             `json:"likes_count"`
	CommentsCount int             `json:"comments_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	FirstName *string        `json:"first_name,omitempty"`
	LastName  *string        `json:"last_name,omitempty"`
	AvatarURL *string        `json:"avatar_url,omitempty"`
	Comments  []StoryComment `json:"comments,omitempty"`
}

type StoryComment struct {
	ID        int       `json:"id"`
	StoryID   int       `json:"story_id"`
	UserID    int       `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type StoryRequest struct {
	Title      string          `json:"title" validate:"required,max=255"`
	Story      string          `json:"story" validate:"required"`
	Location   string          `json:"location" validate:"required,max=255"`
	Duration   string          `json:"duration"`
	Highlights []string        `json:"highlights"`
	Media      json.RawMessage `json:"media"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type StoryPage struct {
	Stories    []TravelerStory `json:"stories"`
	Pagination Pagination      `json:"pagination"`
}

type FeatureRequest struct {
	IsFeatured *bool `json:"is_featured"`
}
