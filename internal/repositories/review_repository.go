package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

var reviewsTable = newTable("reviews",
	"id", "booking_id", "traveler_id", "service_id", "provider_id", "rating", "comment", "created_at",
)

type ReviewRepository struct {
	DB *sql.DB
}

func scanReviewDetailed(row scanner) (models.Review, error) {
	var rv models.Review
	var comment sql.NullString
	err := row.Scan(&rv.ID, &rv.BookingID, &rv.TravelerID, &rv.ServiceID, &rv.ProviderID, &rv.Rating,
		&comment, &rv.CreatedAt, &rv.TravelerName, &rv.ServiceTitle)
	rv.Comment = comment.String
	return rv, err
}

func scanReview(row scanner) (models.Review, error) {
	var rv models.Review
	var comment sql.NullString
	err := row.Scan(&rv.ID, &rv.BookingID, &rv.TravelerID, &rv.ServiceID, &rv.ProviderID, &rv.Rating,
		&comment, &rv.CreatedAt)
	rv.Comment = comment.String
	return rv, err
}

func selectReviewsDetailed() sq.SelectBuilder {
	cols := append(qualify("r", reviewsTable.columns),
		"TRIM(COALESCE(u.first_name, '') || ' ' || COALESCE(u.last_name, ''))",
		"COALESCE(s.title, '')",
	)
	return psql.Select(cols...).From("reviews r").
		LeftJoin("users u ON u.id = r.traveler_id").
		LeftJoin("services s ON s.id = r.service_id")
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int) (models.Review, error) {
	return queryOne(ctx, r.DB, selectReviewsDetailed().Where(sq.Eq{"r.id": id}), scanReviewDetailed)
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int) ([]models.Review, error) {
	return queryAll(ctx, r.DB, selectReviewsDetailed().Where(sq.Eq{"r.service_id": serviceID}).OrderBy("r.created_at DESC"), scanReviewDetailed)
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID int) ([]models.Review, error) {
	return queryAll(ctx, r.DB, selectReviewsDetailed().Where(sq.Eq{"r.provider_id": providerID}).OrderBy("r.created_at DESC"), scanReviewDetailed)
}

func (r *ReviewRepository) ListByTraveler(ctx context.Context, travelerID int) ([]models.Review, error) {
	return queryAll(ctx, r.DB, selectReviewsDetailed().Where(sq.Eq{"r.traveler_id": travelerID}).OrderBy("r.created_at DESC"), scanReviewDetailed)
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID).Scan(&exists)
	return exists, err
}

// Create inserts the review and refreshes the service and provider ratings.
func (r *ReviewRepository) Create(ctx context.Context, rv models.Review) (models.Review, error) {
	var created models.Review
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		b, err := reviewsTable.insert(Fields{
			"booking_id":  rv.BookingID,
			"traveler_id": rv.TravelerID,
			"service_id":  rv.ServiceID,
			"provider_id": rv.ProviderID,
			"rating":      rv.Rating,
			"comment":     rv.Comment,
		})
		if err != nil {
			return err
		}
		if created, err = queryOne(ctx, tx, b, scanReview); err != nil {
			return err
		}
		return refreshRatings(ctx, tx, created.ServiceID, created.ProviderID)
	})
	return created, err
}

func (r *ReviewRepository) Update(ctx context.Context, id, rating int, comment string) (models.Review, error) {
	var updated models.Review
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		b, err := reviewsTable.updateByID(id, Fields{"rating": rating, "comment": comment})
		if err != nil {
			return err
		}
		if updated, err = queryOne(ctx, tx, b, scanReview); err != nil {
			return err
		}
		return refreshRatings(ctx, tx, updated.ServiceID, updated.ProviderID)
	})
	return updated, err
}

func (r *ReviewRepository) Delete(ctx context.Context, rv models.Review) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := execOne(ctx, tx, psql.Delete("reviews").Where(sq.Eq{"id": rv.ID})); err != nil {
			return err
		}
		return refreshRatings(ctx, tx, rv.ServiceID, rv.ProviderID)
	})
}

func refreshRatings(ctx context.Context, tx DBTX, serviceID, providerID int) error {
	if err := recomputeServiceRating(ctx, tx, serviceID); err != nil {
		return err
	}
	return recomputeProviderRating(ctx, tx, providerID)
}
