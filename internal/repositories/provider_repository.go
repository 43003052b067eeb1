package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"isafari/internal/models"
)

var providersTable = newTable("service_providers",
	"id", "user_id", "business_name", "business_type", "description", "location",
	"service_location", "country", "region", "district", "area", "ward", "location_data",
	"service_categories", "license_number", "rating", "total_bookings", "is_verified",
	"created_at", "updated_at",
)

type ProviderRepository struct {
	DB *sql.DB
}

func providerDest(p *models.ServiceProvider, businessName, businessType, description, location, serviceLocation, license *sql.NullString) []interface{} {
	return []interface{}{&p.ID, &p.UserID, businessName, businessType, description, location,
		serviceLocation, &p.Country, &p.Region, &p.District, &p.Area, &p.Ward, (*[]byte)(&p.LocationData),
		pq.Array(&p.ServiceCategories), license, &p.Rating, &p.TotalBookings, &p.IsVerified,
		&p.CreatedAt, &p.UpdatedAt}
}

func scanProvider(row scanner) (models.ServiceProvider, error) {
	var p models.ServiceProvider
	var businessName, businessType, description, location, serviceLocation, license sql.NullString
	if err := row.Scan(providerDest(&p, &businessName, &businessType, &description, &location, &serviceLocation, &license)...); err != nil {
		return p, err
	}
	p.BusinessName = businessName.String
	p.BusinessType = businessType.String
	p.Description = description.String
	p.Location = location.String
	p.ServiceLocation = serviceLocation.String
	p.LicenseNumber = license.String
	return p, nil
}

func scanProviderWithContact(row scanner) (models.ServiceProvider, error) {
	var p models.ServiceProvider
	var businessName, businessType, description, location, serviceLocation, license sql.NullString
	dest := providerDest(&p, &businessName, &businessType, &description, &location, &serviceLocation, &license)
	dest = append(dest, &p.Email, &p.Phone)
	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	p.BusinessName = businessName.String
	p.BusinessType = businessType.String
	p.Description = description.String
	p.Location = location.String
	p.ServiceLocation = serviceLocation.String
	p.LicenseNumber = license.String
	return p, nil
}

func (r *ProviderRepository) selectWithContact() sq.SelectBuilder {
	cols := append(qualify("sp", providersTable.columns), "u.email", "u.phone")
	return psql.Select(cols...).From("service_providers sp").Join("users u ON u.id = sp.user_id")
}

func (r *ProviderRepository) FindOne(ctx context.Context, f Filter) (models.ServiceProvider, error) {
	b, err := providersTable.selectAll(f)
	if err != nil {
		return models.ServiceProvider{}, err
	}
	return queryOne(ctx, r.DB, b.Limit(1), scanProvider)
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int) (models.ServiceProvider, error) {
	return queryOne(ctx, r.DB, r.selectWithContact().Where(sq.Eq{"sp.id": id}), scanProviderWithContact)
}

func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int) (models.ServiceProvider, error) {
	return r.FindOne(ctx, Where("user_id", userID))
}

// List returns one page of providers ordered by rating, and the total count.
func (r *ProviderRepository) List(ctx context.Context, f models.ProviderFilter) ([]models.ServiceProvider, int, error) {
	page, limit := models.NormalizePage(f.Page, f.Limit)
	cond := sq.And{}
	if f.Country != "" {
		cond = append(cond, sq.Expr("LOWER(TRIM(sp.country)) = LOWER(TRIM(?))", f.Country))
	}
	if f.Region != "" {
		cond = append(cond, sq.Expr("LOWER(TRIM(sp.region)) = LOWER(TRIM(?))", f.Region))
	}

	count := psql.Select("COUNT(*)").From("service_providers sp")
	list := r.selectWithContact()
	if len(cond) > 0 {
		count = count.Where(cond)
		list = list.Where(cond)
	}

	total, err := countRows(ctx, r.DB, count)
	if err != nil {
		return nil, 0, err
	}
	providers, err := queryAll(ctx, r.DB, list.
		OrderBy("sp.rating DESC", "sp.total_bookings DESC", "sp.id").
		Limit(uint64(limit)).Offset(uint64(models.Offset(page, limit))), scanProviderWithContact)
	if err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

func (r *ProviderRepository) UpdateByID(ctx context.Context, id int, fields Fields) (models.ServiceProvider, error) {
	b, err := providersTable.updateByID(id, fields)
	if err != nil {
		return models.ServiceProvider{}, err
	}
	return queryOne(ctx, r.DB, b, scanProvider)
}

// recomputeProviderRating refreshes the provider's average over all its reviews.
func recomputeProviderRating(ctx context.Context, db DBTX, providerID int) error {
	_, err := db.ExecContext(ctx, `UPDATE service_providers
		SET rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE provider_id = $1), 0)
		WHERE id = $1`, providerID)
	return err
}
