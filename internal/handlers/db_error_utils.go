package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"isafari/internal/models"
	"isafari/internal/services"
)

// pgErrorStatus maps constraint failures to client errors.
func pgErrorStatus(err error) (int, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return 0, false
	}
	switch pgErr.Code {
	case "23505":
		return http.StatusConflict, true
	case "23503", "23514", "22P02", "23502":
		return http.StatusBadRequest, true
	}
	return 0, false
}

var errorStatus = []struct {
	err    error
	status int
}{
	{models.ErrNoRecord, http.StatusNotFound},
	{models.ErrUserNotFound, http.StatusNotFound},
	{models.ErrServiceNotFound, http.StatusNotFound},
	{models.ErrProviderNotFound, http.StatusNotFound},
	{models.ErrBookingNotFound, http.StatusNotFound},
	{models.ErrJourneyNotFound, http.StatusNotFound},
	{models.ErrStoryNotFound, http.StatusNotFound},
	{models.ErrReviewNotFound, http.StatusNotFound},
	{models.ErrPromotionNotFound, http.StatusNotFound},

	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrNotProvider, http.StatusForbidden},
	{models.ErrAccountSuspended, http.StatusForbidden},

	{models.ErrAlreadyReviewed, http.StatusConflict},
	{models.ErrAlreadyPaid, http.StatusConflict},
	{models.ErrPromotionReviewed, http.StatusConflict},

	{models.ErrInvalidCredentials, http.StatusBadRequest},
	{models.ErrInvalidPassword, http.StatusBadRequest},
	{models.ErrNoPassword, http.StatusBadRequest},
	{models.ErrInvalidResetToken, http.StatusBadRequest},
	{models.ErrInvalidStatus, http.StatusBadRequest},
	{models.ErrInvalidQuantity, http.StatusBadRequest},
	{models.ErrDestinationCount, http.StatusBadRequest},
	{models.ErrAlreadyLiked, http.StatusBadRequest},
	{models.ErrNotLiked, http.StatusBadRequest},
	{models.ErrBookingNotComplete, http.StatusBadRequest},
	{models.ErrEmptyCart, http.StatusBadRequest},
	{models.ErrEmptyComment, http.StatusBadRequest},
	{models.ErrUnknownColumn, http.StatusBadRequest},
	{models.ErrInvalidPromotion, http.StatusBadRequest},
	{services.ErrUnsupportedFolder, http.StatusBadRequest},
	{services.ErrUnsupportedFile, http.StatusBadRequest},
	{services.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
}

// respondServiceError writes the status matching err. Unknown errors are
// logged and reported as a generic 500.
func respondServiceError(w http.ResponseWriter, log services.Logger, err error) {
	if errors.Is(err, models.ErrDuplicateEmail) {
		respondError(w, http.StatusBadRequest, "Email already registered",
			models.FieldError{Field: "email", Message: "email is already registered"})
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			respondError(w, e.status, capitalize(e.err.Error()))
			return
		}
	}
	if status, ok := pgErrorStatus(err); ok {
		if status == http.StatusConflict {
			respondError(w, status, "Resource already exists")
		} else {
			respondError(w, status, "Invalid reference or value")
		}
		return
	}
	serverError(w, log, err)
}

func serverError(w http.ResponseWriter, log services.Logger, err error) {
	if log != nil {
		log.Errorf("%v", err)
	}
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// capitalize turns "models: booking not found" into "Booking not found".
func capitalize(msg string) string {
	if len(msg) > 8 && msg[:8] == "models: " {
		msg = msg[8:]
	}
	if msg == "" {
		return msg
	}
	if c := msg[0]; c >= 'a' && c <= 'z' {
		msg = string(c-'a'+'A') + msg[1:]
	}
	return msg
}
