package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"isafari/internal/models"
)

type PlanRepository struct {
	DB *sql.DB
}

const planSelect = `SELECT tp.id, tp.user_id, tp.service_id, tp.plan_date, tp.notes, tp.added_at, tp.updated_at,
	s.title, COALESCE(s.price, 0), s.category, COALESCE(s.location, ''), s.images, COALESCE(sp.business_name, '')
	FROM trip_plans tp
	JOIN services s ON s.id = tp.service_id
	LEFT JOIN service_providers sp ON sp.id = s.provider_id`

func scanPlan(row scanner) (models.TripPlan, error) {
	var p models.TripPlan
	err := row.Scan(&p.ID, &p.UserID, &p.ServiceID, &p.PlanDate, &p.Notes, &p.AddedAt, &p.UpdatedAt,
		&p.Title, &p.Price, &p.Category, &p.Location, pq.Array(&p.Images), &p.BusinessName)
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, err
}

func (r *PlanRepository) List(ctx context.Context, userID int) ([]models.TripPlan, error) {
	return queryAll(ctx, r.DB, sq.Expr(planSelect+` WHERE tp.user_id = $1 ORDER BY tp.plan_date ASC NULLS LAST, tp.added_at DESC`, userID), scanPlan)
}

func (r *PlanRepository) get(ctx context.Context, id, userID int) (models.TripPlan, error) {
	return queryOne(ctx, r.DB, sq.Expr(planSelect+` WHERE tp.id = $1 AND tp.user_id = $2`, id, userID), scanPlan)
}

// Upsert adds the service to the user's plan, replacing date and notes when
// it is already planned.
func (r *PlanRepository) Upsert(ctx context.Context, userID, serviceID int, planDate, notes interface{}) (models.TripPlan, error) {
	var id int
	err := r.DB.QueryRowContext(ctx, `INSERT INTO trip_plans (user_id, service_id, plan_date, notes) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, service_id) DO UPDATE SET plan_date = EXCLUDED.plan_date, notes = EXCLUDED.notes
		RETURNING id`, userID, serviceID, planDate, notes).Scan(&id)
	if err != nil {
		return models.TripPlan{}, err
	}
	return r.get(ctx, id, userID)
}

func (r *PlanRepository) Update(ctx context.Context, id, userID int, fields Fields) (models.TripPlan, error) {
	b := psql.Update("trip_plans").Where(sq.Eq{"id": id, "user_id": userID})
	for _, c := range sortedKeys(fields) {
		if c != "plan_date" && c != "notes" {
			return models.TripPlan{}, models.ErrUnknownColumn
		}
		b = b.Set(c, fields[c])
	}
	if len(fields) > 0 {
		if err := execOne(ctx, r.DB, b); err != nil {
			return models.TripPlan{}, err
		}
	}
	return r.get(ctx, id, userID)
}

func (r *PlanRepository) Remove(ctx context.Context, id, userID int) error {
	return execOne(ctx, r.DB, psql.Delete("trip_plans").Where(sq.Eq{"id": id, "user_id": userID}))
}

func (r *PlanRepository) Clear(ctx context.Context, userID int) (int64, error) {
	return execAffected(ctx, r.DB, psql.Delete("trip_plans").Where(sq.Eq{"user_id": userID}))
}
