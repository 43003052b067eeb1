package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"isafari/internal/models"
)

var usersTable = newTable("users",
	"id", "email", "password", "first_name", "last_name", "phone", "user_type",
	"avatar_url", "is_verified", "is_active", "fcm_token", "created_at", "updated_at",
)

type UserRepository struct {
	DB *sql.DB
}

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.UserType,
		&u.AvatarURL, &u.IsVerified, &u.IsActive, &u.FCMToken, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) Find(ctx context.Context, f Filter) ([]models.User, error) {
	b, err := usersTable.selectAll(f)
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.DB, b.OrderBy("id"), scanUser)
}

func (r *UserRepository) FindOne(ctx context.Context, f Filter) (models.User, error) {
	b, err := usersTable.selectAll(f)
	if err != nil {
		return models.User{}, err
	}
	return queryOne(ctx, r.DB, b.Limit(1), scanUser)
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	return r.FindOne(ctx, Where("id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.FindOne(ctx, Where("email", strings.ToLower(strings.TrimSpace(email))))
}

// CreateWithProvider inserts the user and, when provider is not nil, its
// provider profile in the same transaction.
func (r *UserRepository) CreateWithProvider(ctx context.Context, u models.User, provider *models.ServiceProvider) (models.User, error) {
	var created models.User
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		b, err := usersTable.insert(Fields{
			"email":      strings.ToLower(strings.TrimSpace(u.Email)),
			"password":   u.Password,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"phone":      u.Phone,
			"user_type":  u.UserType,
		})
		if err != nil {
			return err
		}
		created, err = queryOne(ctx, tx, b, scanUser)
		if err != nil {
			return err
		}
		if provider == nil {
			return nil
		}

		provider.UserID = created.ID
		p, err := insertProvider(ctx, tx, *provider)
		if err != nil {
			return err
		}
		created.Provider = &p
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return created, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id int, fields Fields) (models.User, error) {
	b, err := usersTable.updateByID(id, fields)
	if err != nil {
		return models.User{}, err
	}
	return queryOne(ctx, r.DB, b, scanUser)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	return execOne(ctx, r.DB, psql.Update("users").Set("password", hash).Where("id = ?", id))
}

// DeleteByID removes the user. Provider profile, services, bookings and the
// rest of the user's rows go with it through ON DELETE CASCADE.
func (r *UserRepository) DeleteByID(ctx context.Context, id int) error {
	return execOne(ctx, r.DB, psql.Delete("users").Where("id = ?", id))
}

func (r *UserRepository) SetFCMToken(ctx context.Context, id int, token string) error {
	return execOne(ctx, r.DB, psql.Update("users").Set("fcm_token", nullIfBlank(token)).Where("id = ?", id))
}

func insertProvider(ctx context.Context, db DBTX, p models.ServiceProvider) (models.ServiceProvider, error) {
	b, err := providersTable.insert(Fields{
		"user_id":            p.UserID,
		"business_name":      p.BusinessName,
		"business_type":      p.BusinessType,
		"description":        p.Description,
		"location":           p.Location,
		"service_location":   p.ServiceLocation,
		"country":            nullIfBlankPtr(p.Country),
		"region":             nullIfBlankPtr(p.Region),
		"district":           nullIfBlankPtr(p.District),
		"area":               nullIfBlankPtr(p.Area),
		"ward":               nullIfBlankPtr(p.Ward),
		"location_data":      jsonOrDefault(p.LocationData, "{}"),
		"service_categories": pq.Array(p.ServiceCategories),
	})
	if err != nil {
		return models.ServiceProvider{}, err
	}
	return queryOne(ctx, db, b, scanProvider)
}
