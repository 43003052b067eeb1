package repositories

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

var paymentsTable = newTable("payments",
	"id", "user_id", "provider_id", "service_id", "booking_id", "payment_type", "amount", "currency",
	"payment_method", "payment_status", "transaction_id", "description", "valid_from", "valid_until",
	"created_at", "updated_at",
)

type PaymentRepository struct {
	DB *sql.DB
}

func scanPayment(row scanner) (models.Payment, error) {
	var p models.Payment
	var currency, method, status, txID, description sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.ProviderID, &p.ServiceID, &p.BookingID, &p.PaymentType, &p.Amount,
		&currency, &method, &status, &txID, &description, &p.ValidFrom, &p.ValidUntil, &p.CreatedAt, &p.UpdatedAt)
	p.Currency = currency.String
	p.PaymentMethod = method.String
	p.PaymentStatus = status.String
	p.TransactionID = txID.String
	p.Description = description.String
	return p, err
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	b, err := paymentsTable.selectAll(Where("user_id", userID))
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.DB, b.OrderBy("created_at DESC"), scanPayment)
}

// PayBooking records a completed booking payment and marks the booking paid.
// The booking must belong to p.UserID and must not be paid already.
func (r *PaymentRepository) PayBooking(ctx context.Context, p models.Payment) (models.Payment, error) {
	var created models.Payment
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var amount sql.NullFloat64
		var providerID, serviceID int
		var paymentStatus string
		err := tx.QueryRowContext(ctx,
			`SELECT total_amount, provider_id, service_id, payment_status FROM bookings WHERE id = $1 AND traveler_id = $2 FOR UPDATE`,
			*p.BookingID, p.UserID).Scan(&amount, &providerID, &serviceID, &paymentStatus)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrBookingNotFound
		}
		if err != nil {
			return err
		}
		if paymentStatus == models.PaymentStatusPaid {
			return models.ErrAlreadyPaid
		}

		p.Amount = amount.Float64
		p.ProviderID = &providerID
		p.ServiceID = &serviceID
		if created, err = insertPayment(ctx, tx, p); err != nil {
			return err
		}
		return execOne(ctx, tx, psql.Update("bookings").Set("payment_status", models.PaymentStatusPaid).Where(sq.Eq{"id": *p.BookingID}))
	})
	return created, err
}

func insertPayment(ctx context.Context, db DBTX, p models.Payment) (models.Payment, error) {
	currency := p.Currency
	if currency == "" {
		currency = "TZS"
	}
	b, err := paymentsTable.insert(Fields{
		"user_id":        p.UserID,
		"provider_id":    p.ProviderID,
		"service_id":     p.ServiceID,
		"booking_id":     p.BookingID,
		"payment_type":   p.PaymentType,
		"amount":         p.Amount,
		"currency":       currency,
		"payment_method": p.PaymentMethod,
		"payment_status": p.PaymentStatus,
		"transaction_id": p.TransactionID,
		"description":    p.Description,
		"valid_until":    p.ValidUntil,
	})
	if err != nil {
		return models.Payment{}, err
	}
	return queryOne(ctx, db, b, scanPayment)
}
