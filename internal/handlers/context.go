package handlers

import (
	"context"
	"net/http"

	"isafari/internal/models"
)

type contextKey string

const claimsKey contextKey = "claims"

// WithClaims stores the authenticated caller in ctx.
func WithClaims(ctx context.Context, c *models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the caller stored by WithClaims, or nil.
func ClaimsFrom(ctx context.Context) *models.Claims {
	c, _ := ctx.Value(claimsKey).(*models.Claims)
	return c
}

// userID is 0 for anonymous requests.
func userID(r *http.Request) int {
	if c := ClaimsFrom(r.Context()); c != nil {
		return c.UserID
	}
	return 0
}
