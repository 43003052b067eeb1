package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrNoPassword         = errors.New("models: account has no password set")
	ErrInvalidResetToken  = errors.New("models: invalid or expired reset token")
	ErrForbidden          = errors.New("models: action not allowed for this user")
	ErrNotProvider        = errors.New("models: user has no provider profile")
	ErrServiceNotFound    = errors.New("service not found")
	ErrProviderNotFound   = errors.New("provider not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrJourneyNotFound    = errors.New("journey not found")
	ErrStoryNotFound      = errors.New("story not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrDestinationCount   = errors.New("journey must have between 2 and 4 destinations")
	ErrAlreadyLiked       = errors.New("already liked")
	ErrNotLiked           = errors.New("story not liked")
	ErrAlreadyReviewed    = errors.New("booking already reviewed")
	ErrBookingNotComplete = errors.New("only completed bookings can be reviewed")
	ErrAlreadyPaid        = errors.New("booking already paid")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrEmptyComment       = errors.New("comment text is required")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrInvalidPromotion   = errors.New("invalid promotion type")
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrPromotionReviewed  = errors.New("promotion already reviewed")
	ErrAccountSuspended   = errors.New("account is suspended")
)
