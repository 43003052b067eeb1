package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

var bookingsTable = newTable("bookings",
	"id", "traveler_id", "service_id", "provider_id", "booking_date", "start_time", "end_time",
	"participants", "total_amount", "status", "payment_status", "special_requests",
	"created_at", "updated_at",
)

type BookingRepository struct {
	DB *sql.DB
}

// NewBooking is the input of CreateForService.
type NewBooking struct {
	TravelerID      int
	ServiceID       int
	BookingDate     time.Time
	StartTime       string
	EndTime         string
	Participants    int
	SpecialRequests string
}

func bookingDest(b *models.Booking, total *sql.NullFloat64) []interface{} {
	return []interface{}{&b.ID, &b.TravelerID, &b.ServiceID, &b.ProviderID, &b.BookingDate,
		&b.StartTime, &b.EndTime, &b.Participants, total, &b.Status, &b.PaymentStatus,
		&b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt}
}

func scanBooking(row scanner) (models.Booking, error) {
	var b models.Booking
	var total sql.NullFloat64
	err := row.Scan(bookingDest(&b, &total)...)
	b.TotalAmount = total.Float64
	return b, err
}

func scanBookingDetailed(row scanner) (models.Booking, error) {
	var b models.Booking
	var total sql.NullFloat64
	dest := append(bookingDest(&b, &total), &b.ServiceTitle, &b.BusinessName, &b.TravelerName, &b.TravelerEmail)
	err := row.Scan(dest...)
	b.TotalAmount = total.Float64
	return b, err
}

func selectBookingsDetailed() sq.SelectBuilder {
	cols := append(qualify("b", bookingsTable.columns),
		"COALESCE(s.title, '')",
		"COALESCE(sp.business_name, '')",
		"TRIM(COALESCE(u.first_name, '') || ' ' || COALESCE(u.last_name, ''))",
		"COALESCE(u.email, '')",
	)
	return psql.Select(cols...).From("bookings b").
		LeftJoin("services s ON s.id = b.service_id").
		LeftJoin("service_providers sp ON sp.id = b.provider_id").
		LeftJoin("users u ON u.id = b.traveler_id")
}

func (r *BookingRepository) GetByID(ctx context.Context, id int) (models.Booking, error) {
	return queryOne(ctx, r.DB, selectBookingsDetailed().Where(sq.Eq{"b.id": id}), scanBookingDetailed)
}

func (r *BookingRepository) ListByTraveler(ctx context.Context, travelerID int) ([]models.Booking, error) {
	return queryAll(ctx, r.DB, selectBookingsDetailed().Where(sq.Eq{"b.traveler_id": travelerID}).
		OrderBy("b.created_at DESC"), scanBookingDetailed)
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int) ([]models.Booking, error) {
	return queryAll(ctx, r.DB, selectBookingsDetailed().Where(sq.Eq{"b.provider_id": providerID}).
		OrderBy("b.created_at DESC"), scanBookingDetailed)
}

// CreateForService prices the booking from the current service price and
// inserts it as pending. The service row is locked for the duration so the
// bookings counter stays consistent.
func (r *BookingRepository) CreateForService(ctx context.Context, nb NewBooking) (models.Booking, error) {
	var created models.Booking
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var price sql.NullFloat64
		var providerID sql.NullInt64
		err := tx.QueryRowContext(ctx,
			`SELECT price, provider_id FROM services WHERE id = $1 AND is_active = TRUE FOR UPDATE`,
			nb.ServiceID).Scan(&price, &providerID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrServiceNotFound
		}
		if err != nil {
			return err
		}
		if !providerID.Valid {
			return models.ErrProviderNotFound
		}

		created, err = insertBooking(ctx, tx, nb, int(providerID.Int64), price.Float64)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE services SET bookings_count = bookings_count + 1, total_bookings = total_bookings + 1 WHERE id = $1`,
			nb.ServiceID)
		return err
	})
	if err != nil {
		return models.Booking{}, err
	}
	return created, nil
}

func insertBooking(ctx context.Context, db DBTX, nb NewBooking, providerID int, price float64) (models.Booking, error) {
	participants := nb.Participants
	if participants < 1 {
		participants = 1
	}
	b, err := bookingsTable.insert(Fields{
		"traveler_id":      nb.TravelerID,
		"service_id":       nb.ServiceID,
		"provider_id":      providerID,
		"booking_date":     nb.BookingDate,
		"start_time":       nullIfBlank(nb.StartTime),
		"end_time":         nullIfBlank(nb.EndTime),
		"participants":     participants,
		"total_amount":     BookingTotal(price, participants),
		"status":           models.BookingPending,
		"payment_status":   models.PaymentStatusPending,
		"special_requests": nullIfBlank(nb.SpecialRequests),
	})
	if err != nil {
		return models.Booking{}, err
	}
	return queryOne(ctx, db, b, scanBooking)
}

// BookingTotal is the amount charged for participants at the unit price.
func BookingTotal(price float64, participants int) float64 {
	return price * float64(participants)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status string) (models.Booking, error) {
	b, err := bookingsTable.updateByID(id, Fields{"status": status})
	if err != nil {
		return models.Booking{}, err
	}
	return queryOne(ctx, r.DB, b, scanBooking)
}

func (r *BookingRepository) DeleteByID(ctx context.Context, id int) error {
	return execOne(ctx, r.DB, psql.Delete("bookings").Where(sq.Eq{"id": id}))
}
