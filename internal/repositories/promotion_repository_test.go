package repositories

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
)

var promotionCols = []string{"id", "service_id", "promotion_type", "promotion_location", "duration_days", "cost",
	"payment_method", "payment_reference", "payment_status", "status", "started_at", "expires_at",
	"approved_at", "approved_by", "rejection_reason", "created_at"}

var reviewedPromotionCols = append(append([]string{}, promotionCols...),
	"service_title", "provider_name", "provider_email", "provider_user_id")

var paymentCols = []string{"id", "user_id", "provider_id", "service_id", "booking_id", "payment_type", "amount",
	"currency", "payment_method", "payment_status", "transaction_id", "description", "valid_from", "valid_until",
	"created_at", "updated_at"}

func promotionRow(id int, promoType, status string, days int, started, expires, approved interface{}, created time.Time) []driver.Value {
	return []driver.Value{id, 4, promoType, nil, days, models.PromotionCost[promoType],
		"mpesa", "tx-1", "completed", status, started, expires, approved, nil, nil, created}
}

func expectPendingLock(mock sqlmock.Sqlmock, id int, promoType, status string, days int, created time.Time) {
	row := append(promotionRow(id, promoType, status, days, nil, created.AddDate(0, 0, days), nil, created),
		"Ngorongoro day trip", "Crater Tours", "crater@example.com", 30)
	mock.ExpectQuery(regexp.QuoteMeta("FROM service_promotions sp LEFT JOIN services s ON s.id = sp.service_id") +
		".*" + regexp.QuoteMeta("WHERE sp.id = $1 FOR UPDATE OF sp")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(reviewedPromotionCols).AddRow(row...))
}

func TestPromotionCreateLeavesServiceUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 0, models.DefaultPromotionDays)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(1, 30, 9, 4, nil, models.PaymentTypeFeatured, 50000.0, "TZS", "mpesa", "completed", "tx-1", "", nil, expires, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO service_promotions")).
		WillReturnRows(sqlmock.NewRows(promotionCols).
			AddRow(promotionRow(7, "featured", "pending", 30, nil, expires, nil, now)...))
	mock.ExpectCommit()

	repo := &PromotionRepository{DB: db}
	p, err := repo.Create(context.Background(), models.ServicePromotion{
		ServiceID: 4, PromotionType: "featured", DurationDays: 30, Cost: 50000, PaymentMethod: "mpesa", ExpiresAt: expires,
	}, models.Payment{UserID: 30, PaymentType: models.PaymentTypeFeatured, Amount: 50000, PaymentStatus: models.PaymentCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.PromotionPending, p.Status)
	assert.Nil(t, p.StartedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionApproveTrendingKeepsLongerFeaturedWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 0, 7)

	mock.ExpectBegin()
	expectPendingLock(mock, 8, "trending", "pending", 7, created)
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE service_promotions SET approved_at = $1, approved_by = $2, expires_at = $3, payment_status = $4, started_at = $5, status = $6 WHERE id = $7")).
		WithArgs(now, 1, expires, models.PaymentCompleted, now, models.PromotionApproved, 8).
		WillReturnRows(sqlmock.NewRows(promotionCols).
			AddRow(promotionRow(8, "trending", "approved", 7, now, expires, now, created)...))
	mock.ExpectExec("^"+regexp.QuoteMeta(
		"UPDATE services SET featured_priority = COALESCE(featured_priority, 0) + $1, promotion_type = $2, promotion_location = $3, "+
			"is_featured = $4, featured_until = GREATEST(COALESCE(featured_until, $5), $6) WHERE id = $7")+"$").
		WithArgs(5, "trending", nil, true, expires, expires, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PromotionRepository{DB: db}
	p, err := repo.Approve(context.Background(), 8, 1, now)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionApproved, p.Status)
	assert.Equal(t, 30, p.ProviderUserID)
	assert.Equal(t, "Ngorongoro day trip", p.ServiceTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionApproveSearchBoostOnlyRaisesPriority(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 0, models.DefaultPromotionDays)

	mock.ExpectBegin()
	expectPendingLock(mock, 9, "search_boost", "pending", 0, created)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE service_promotions SET")).
		WithArgs(now, 2, expires, models.PaymentCompleted, now, models.PromotionApproved, 9).
		WillReturnRows(sqlmock.NewRows(promotionCols).
			AddRow(promotionRow(9, "search_boost", "approved", 30, now, expires, now, created)...))
	mock.ExpectExec("^"+regexp.QuoteMeta(
		"UPDATE services SET featured_priority = COALESCE(featured_priority, 0) + $1, promotion_type = $2, promotion_location = $3 WHERE id = $4")+"$").
		WithArgs(3, "search_boost", nil, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PromotionRepository{DB: db}
	_, err = repo.Approve(context.Background(), 9, 2, now)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionReviewTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	expectPendingLock(mock, 8, "featured", "approved", 30, created)
	mock.ExpectRollback()

	repo := &PromotionRepository{DB: db}
	_, err = repo.Approve(context.Background(), 8, 1, created)
	assert.ErrorIs(t, err, models.ErrPromotionReviewed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionReject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	expectPendingLock(mock, 10, "featured", "pending", 30, created)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE service_promotions SET rejection_reason = $1, status = $2 WHERE id = $3")).
		WithArgs("Images are blurry", models.PromotionRejected, 10).
		WillReturnRows(sqlmock.NewRows(promotionCols).
			AddRow(promotionRow(10, "featured", "rejected", 30, nil, created.AddDate(0, 0, 30), nil, created)...))
	mock.ExpectCommit()

	repo := &PromotionRepository{DB: db}
	p, err := repo.Reject(context.Background(), 10, "Images are blurry")
	require.NoError(t, err)
	assert.Equal(t, models.PromotionRejected, p.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRejectUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF sp")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(reviewedPromotionCols))
	mock.ExpectRollback()

	repo := &PromotionRepository{DB: db}
	_, err = repo.Reject(context.Background(), 404, "")
	assert.ErrorIs(t, err, models.ErrNoRecord)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionClearExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE services SET is_featured = $1, featured_until = $2 WHERE featured_until < $3")).
		WithArgs(false, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE services SET featured_priority = $1, promotion_type = $2, promotion_location = $3 WHERE promotion_type IS NOT NULL AND NOT EXISTS")).
		WithArgs(0, nil, nil, models.PromotionApproved, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PromotionRepository{DB: db}
	n, err := repo.ClearExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'pending')")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "approved", "rejected"}).AddRow(6, 2, 3, 1))

	repo := &PromotionRepository{DB: db}
	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStats{Total: 6, Pending: 2, Approved: 3, Rejected: 1}, s)
	require.NoError(t, mock.ExpectationsWereMet())
}
