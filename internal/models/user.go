package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	UserTypeTraveler = "traveler"
	UserTypeProvider = "service_provider"
	UserTypeAdmin    = "admin"
)

type User struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Password   *string   `json:"-"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	Phone      *string   `json:"phone"`
	UserType   string    `json:"user_type"`
	AvatarURL  *string   `json:"avatar_url"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	FCMToken   *string   `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Provider *ServiceProvider `json:"provider,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	var name string
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	return name
}

type SignUpRequest struct {
	Email             string        `json:"email" validate:"required,email"`
	Password          string        `json:"password" validate:"required,min=6"`
	FirstName         string        `json:"first_name" validate:"required"`
	LastName          string        `json:"last_name" validate:"required"`
	Phone             string        `json:"phone"`
	UserType          string        `json:"user_type" validate:"required,oneof=traveler service_provider"`
	CompanyName       string        `json:"company_name" validate:"required_if=UserType service_provider"`
	BusinessType      string        `json:"business_type"`
	Description       string        `json:"description"`
	LocationData      *LocationData `json:"location_data"`
	ServiceCategories []string      `json:"service_categories"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Claims struct {
	UserID   int    `json:"user_id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	jwt.StandardClaims
}

type DeviceTokenRequest struct {
	Token string `json:"token"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
