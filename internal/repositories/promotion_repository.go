package repositories

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

var promotionsTable = newTable("service_promotions",
	"id", "service_id", "promotion_type", "promotion_location", "duration_days", "cost",
	"payment_method", "payment_reference", "payment_status", "status", "started_at", "expires_at",
	"approved_at", "approved_by", "rejection_reason", "created_at",
)

type PromotionRepository struct {
	DB *sql.DB
}

func promotionDest(p *models.ServicePromotion, method, ref *sql.NullString) []interface{} {
	return []interface{}{&p.ID, &p.ServiceID, &p.PromotionType, &p.PromotionLocation, &p.DurationDays, &p.Cost,
		method, ref, &p.PaymentStatus, &p.Status, &p.StartedAt, &p.ExpiresAt,
		&p.ApprovedAt, &p.ApprovedBy, &p.RejectionReason, &p.CreatedAt}
}

func scanPromotion(row scanner) (models.ServicePromotion, error) {
	var p models.ServicePromotion
	var method, ref sql.NullString
	err := row.Scan(promotionDest(&p, &method, &ref)...)
	p.PaymentMethod = method.String
	p.PaymentReference = ref.String
	return p, err
}

// scanReviewedPromotion reads a promotion joined with its service and the
// provider that owns it.
func scanReviewedPromotion(row scanner) (models.ServicePromotion, error) {
	var p models.ServicePromotion
	var method, ref sql.NullString
	dest := append(promotionDest(&p, &method, &ref), &p.ServiceTitle, &p.ProviderName, &p.ProviderEmail, &p.ProviderUserID)
	err := row.Scan(dest...)
	p.PaymentMethod = method.String
	p.PaymentReference = ref.String
	return p, err
}

func selectReviewedPromotions() sq.SelectBuilder {
	cols := append(qualify("sp", promotionsTable.columns),
		"COALESCE(s.title, '')", "COALESCE(p.business_name, '')", "COALESCE(u.email, '')", "COALESCE(p.user_id, 0)")
	return psql.Select(cols...).
		From("service_promotions sp").
		LeftJoin("services s ON s.id = sp.service_id").
		LeftJoin("service_providers p ON p.id = s.provider_id").
		LeftJoin("users u ON u.id = p.user_id")
}

func (r *PromotionRepository) ListByService(ctx context.Context, serviceID int) ([]models.ServicePromotion, error) {
	b, err := promotionsTable.selectAll(Where("service_id", serviceID))
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.DB, b.OrderBy("created_at DESC"), scanPromotion)
}

// List returns promotions newest first, optionally limited to one status.
func (r *PromotionRepository) List(ctx context.Context, status string) ([]models.ServicePromotion, error) {
	b := selectReviewedPromotions()
	if status != "" {
		b = b.Where(sq.Eq{"sp.status": status})
	}
	return queryAll(ctx, r.DB, b.OrderBy("sp.created_at DESC"), scanReviewedPromotion)
}

func (r *PromotionRepository) Stats(ctx context.Context) (models.PromotionStats, error) {
	var s models.PromotionStats
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'approved'),
		COUNT(*) FILTER (WHERE status = 'rejected')
		FROM service_promotions`).Scan(&s.Total, &s.Pending, &s.Approved, &s.Rejected)
	return s, err
}

// Create stores a paid promotion request awaiting admin review. The service
// itself is left untouched until the promotion is approved.
func (r *PromotionRepository) Create(ctx context.Context, promo models.ServicePromotion, payment models.Payment) (models.ServicePromotion, error) {
	var created models.ServicePromotion
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		paid, err := insertPayment(ctx, tx, payment)
		if err != nil {
			return err
		}

		b, err := promotionsTable.insert(Fields{
			"service_id":         promo.ServiceID,
			"promotion_type":     promo.PromotionType,
			"promotion_location": nullIfBlankPtr(promo.PromotionLocation),
			"duration_days":      promo.DurationDays,
			"cost":               promo.Cost,
			"payment_method":     promo.PaymentMethod,
			"payment_reference":  paid.TransactionID,
			"payment_status":     paid.PaymentStatus,
			"status":             models.PromotionPending,
			"expires_at":         promo.ExpiresAt,
		})
		if err != nil {
			return err
		}
		created, err = queryOne(ctx, tx, b, scanPromotion)
		return err
	})
	return created, err
}

// lockPending loads the promotion for review and fails when it was already
// approved or rejected.
func lockPending(ctx context.Context, tx DBTX, id int) (models.ServicePromotion, error) {
	promo, err := queryOne(ctx, tx, selectReviewedPromotions().Where(sq.Eq{"sp.id": id}).Suffix("FOR UPDATE OF sp"),
		scanReviewedPromotion)
	if err != nil {
		return models.ServicePromotion{}, err
	}
	if promo.Status != models.PromotionPending {
		return models.ServicePromotion{}, models.ErrPromotionReviewed
	}
	return promo, nil
}

func updatePromotion(ctx context.Context, tx DBTX, reviewed models.ServicePromotion, fields Fields) (models.ServicePromotion, error) {
	b, err := promotionsTable.updateByID(reviewed.ID, fields)
	if err != nil {
		return models.ServicePromotion{}, err
	}
	promo, err := queryOne(ctx, tx, b, scanPromotion)
	if err != nil {
		return models.ServicePromotion{}, err
	}
	promo.ServiceTitle = reviewed.ServiceTitle
	promo.ProviderName = reviewed.ProviderName
	promo.ProviderEmail = reviewed.ProviderEmail
	promo.ProviderUserID = reviewed.ProviderUserID
	return promo, nil
}

// Approve starts the promotion at now and applies it to the service. The
// featured window only ever grows, so a shorter promotion never cuts an
// earlier, longer one short.
func (r *PromotionRepository) Approve(ctx context.Context, id, adminID int, now time.Time) (models.ServicePromotion, error) {
	var approved models.ServicePromotion
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		pending, err := lockPending(ctx, tx, id)
		if err != nil {
			return err
		}
		days := pending.DurationDays
		if days < 1 {
			days = models.DefaultPromotionDays
		}
		expires := now.AddDate(0, 0, days)

		approved, err = updatePromotion(ctx, tx, pending, Fields{
			"status":         models.PromotionApproved,
			"payment_status": models.PaymentCompleted,
			"approved_at":    now,
			"approved_by":    adminID,
			"started_at":     now,
			"expires_at":     expires,
		})
		if err != nil {
			return err
		}
		return execOne(ctx, tx, promoteService(approved))
	})
	return approved, err
}

func promoteService(p models.ServicePromotion) sq.UpdateBuilder {
	upd := psql.Update("services").
		Set("featured_priority", sq.Expr("COALESCE(featured_priority, 0) + ?", models.PromotionPriorityBoost[p.PromotionType])).
		Set("promotion_type", p.PromotionType).
		Set("promotion_location", nullIfBlankPtr(p.PromotionLocation))
	if models.PromotionFeatures(p.PromotionType) {
		upd = upd.Set("is_featured", true).
			Set("featured_until", sq.Expr("GREATEST(COALESCE(featured_until, ?), ?)", p.ExpiresAt, p.ExpiresAt))
	}
	return upd.Where(sq.Eq{"id": p.ServiceID})
}

func (r *PromotionRepository) Reject(ctx context.Context, id int, reason string) (models.ServicePromotion, error) {
	var rejected models.ServicePromotion
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		pending, err := lockPending(ctx, tx, id)
		if err != nil {
			return err
		}
		rejected, err = updatePromotion(ctx, tx, pending, Fields{
			"status":           models.PromotionRejected,
			"rejection_reason": reason,
		})
		return err
	})
	return rejected, err
}

// ClearExpired ends the featured window of services whose window closed
// before now, then drops the boost and promotion label of services left
// without any live approved promotion. It returns the number of service
// rows updated.
func (r *PromotionRepository) ClearExpired(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		n, err := execAffected(ctx, tx, psql.Update("services").
			Set("is_featured", false).
			Set("featured_until", nil).
			Where(sq.Lt{"featured_until": now}))
		if err != nil {
			return err
		}
		total += n

		n, err = execAffected(ctx, tx, psql.Update("services").
			Set("featured_priority", 0).
			Set("promotion_type", nil).
			Set("promotion_location", nil).
			Where("promotion_type IS NOT NULL").
			Where(sq.Expr(`NOT EXISTS (SELECT 1 FROM service_promotions sp
				WHERE sp.service_id = services.id AND sp.status = ? AND sp.expires_at > ?)`,
				models.PromotionApproved, now)))
		total += n
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
