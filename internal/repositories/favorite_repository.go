package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

func (r *FavoriteRepository) List(ctx context.Context, userID int) ([]models.Favorite, error) {
	return queryAll(ctx, r.DB, sq.Expr(`SELECT f.id, f.user_id, f.provider_id, f.added_at,
		COALESCE(sp.business_name, ''), COALESCE(sp.business_type, ''), COALESCE(sp.location, ''), sp.region,
		COALESCE(sp.rating, 0), COALESCE(sp.is_verified, FALSE),
		(SELECT COUNT(*) FROM services s WHERE s.provider_id = sp.id AND s.is_active)
		FROM favorites f
		JOIN service_providers sp ON sp.id = f.provider_id
		WHERE f.user_id = $1
		ORDER BY f.added_at DESC`, userID), func(row scanner) (models.Favorite, error) {
		var f models.Favorite
		err := row.Scan(&f.ID, &f.UserID, &f.ProviderID, &f.AddedAt, &f.BusinessName, &f.BusinessType,
			&f.Location, &f.Region, &f.Rating, &f.IsVerified, &f.ServiceCount)
		return f, err
	})
}

// Add is idempotent; adding an existing favorite is not an error.
func (r *FavoriteRepository) Add(ctx context.Context, userID, providerID int) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO favorites (user_id, provider_id) VALUES ($1, $2) ON CONFLICT (user_id, provider_id) DO NOTHING`,
		userID, providerID)
	return err
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, providerID int) error {
	return execOne(ctx, r.DB, psql.Delete("favorites").Where(sq.Eq{"user_id": userID, "provider_id": providerID}))
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, providerID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND provider_id = $2)`,
		userID, providerID).Scan(&exists)
	return exists, err
}
