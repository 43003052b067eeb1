package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"isafari/internal/models"
)

var servicesTable = newTable("services",
	"id", "provider_id", "title", "description", "category", "subcategory", "price", "currency",
	"duration", "max_participants", "location", "country", "region", "district", "area", "images",
	"amenities", "is_active", "is_featured", "featured_until", "featured_priority", "promotion_type",
	"promotion_location", "views_count", "bookings_count", "average_rating", "total_bookings",
	"payment_methods", "contact_info", "created_at", "updated_at",
)

type ServiceRepository struct {
	DB *sql.DB
}

func serviceDest(s *models.Service, description, location, currency *sql.NullString, price *sql.NullFloat64) []interface{} {
	return []interface{}{&s.ID, &s.ProviderID, &s.Title, description, &s.Category, &s.Subcategory,
		price, currency, &s.Duration, &s.MaxParticipants, location, &s.Country, &s.Region,
		&s.District, &s.Area, pq.Array(&s.Images), pq.Array(&s.Amenities), &s.IsActive,
		&s.IsFeatured, &s.FeaturedUntil, &s.FeaturedPriority, &s.PromotionType,
		&s.PromotionLocation, &s.ViewsCount, &s.BookingsCount, &s.AverageRating,
		&s.TotalBookings, (*[]byte)(&s.PaymentMethods), (*[]byte)(&s.ContactInfo),
		&s.CreatedAt, &s.UpdatedAt}
}

func finishService(s *models.Service, description, location, currency sql.NullString, price sql.NullFloat64) {
	s.Description = description.String
	s.Location = location.String
	s.Currency = currency.String
	s.Price = price.Float64
	if s.Images == nil {
		s.Images = []string{}
	}
	if s.Amenities == nil {
		s.Amenities = []string{}
	}
}

func scanService(row scanner) (models.Service, error) {
	var s models.Service
	var description, location, currency sql.NullString
	var price sql.NullFloat64
	if err := row.Scan(serviceDest(&s, &description, &location, &currency, &price)...); err != nil {
		return s, err
	}
	finishService(&s, description, location, currency, price)
	return s, nil
}

// scanServiceWithProvider expects the service columns followed by the
// provider business name.
func scanServiceWithProvider(row scanner) (models.Service, error) {
	var s models.Service
	var description, location, currency sql.NullString
	var price sql.NullFloat64
	dest := append(serviceDest(&s, &description, &location, &currency, &price), &s.BusinessName)
	if err := row.Scan(dest...); err != nil {
		return s, err
	}
	finishService(&s, description, location, currency, price)
	return s, nil
}

func selectServicesWithProvider() sq.SelectBuilder {
	cols := append(qualify("s", servicesTable.columns), "COALESCE(sp.business_name, '')")
	return psql.Select(cols...).From("services s").LeftJoin("service_providers sp ON sp.id = s.provider_id")
}

func (r *ServiceRepository) Find(ctx context.Context, f Filter) ([]models.Service, error) {
	b, err := servicesTable.selectAll(f)
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.DB, b.OrderBy("id"), scanService)
}

func (r *ServiceRepository) FindOne(ctx context.Context, f Filter) (models.Service, error) {
	b, err := servicesTable.selectAll(f)
	if err != nil {
		return models.Service{}, err
	}
	return queryOne(ctx, r.DB, b.Limit(1), scanService)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int) (models.Service, error) {
	return queryOne(ctx, r.DB, selectServicesWithProvider().Where(sq.Eq{"s.id": id}), scanServiceWithProvider)
}

// List returns one page of active services matching f and the total count.
func (r *ServiceRepository) List(ctx context.Context, f models.ServiceFilter) ([]models.Service, int, error) {
	page, limit := models.NormalizePage(f.Page, f.Limit)
	cond := sq.And{sq.Eq{"s.is_active": true}}
	if f.Category != "" {
		cond = append(cond, sq.Expr("LOWER(s.category) = LOWER(?)", f.Category))
	}
	if f.Region != "" {
		cond = append(cond, sq.Expr("LOWER(TRIM(s.region)) = LOWER(TRIM(?))", f.Region))
	}
	if f.District != "" {
		cond = append(cond, sq.Expr("LOWER(TRIM(s.district)) = LOWER(TRIM(?))", f.District))
	}
	if f.Area != "" {
		cond = append(cond, sq.Expr("LOWER(TRIM(s.area)) = LOWER(TRIM(?))", f.Area))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		cond = append(cond, sq.Or{sq.ILike{"s.title": pattern}, sq.ILike{"s.description": pattern}})
	}
	if f.MinPrice != nil {
		cond = append(cond, sq.GtOrEq{"s.price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		cond = append(cond, sq.LtOrEq{"s.price": *f.MaxPrice})
	}
	if f.ProviderID > 0 {
		cond = append(cond, sq.Eq{"s.provider_id": f.ProviderID})
	}

	total, err := countRows(ctx, r.DB, psql.Select("COUNT(*)").From("services s").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	services, err := queryAll(ctx, r.DB, selectServicesWithProvider().Where(cond).
		OrderBy("s.is_featured DESC", "s.featured_priority DESC", "s.created_at DESC").
		Limit(uint64(limit)).Offset(uint64(models.Offset(page, limit))), scanServiceWithProvider)
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

// ListForPlanner returns active services with their provider name. When
// region is set only services of that region are loaded; the planner applies
// the rest of the location rules.
func (r *ServiceRepository) ListForPlanner(ctx context.Context, region string) ([]models.Service, error) {
	b := selectServicesWithProvider().Where(sq.Eq{"s.is_active": true})
	if region != "" {
		b = b.Where(sq.Expr("LOWER(TRIM(s.region)) = LOWER(TRIM(?))", region))
	}
	return queryAll(ctx, r.DB, b.OrderBy("s.is_featured DESC", "s.average_rating DESC", "s.id"), scanServiceWithProvider)
}

func (r *ServiceRepository) ListByProvider(ctx context.Context, providerID int, activeOnly bool) ([]models.Service, error) {
	b := selectServicesWithProvider().Where(sq.Eq{"s.provider_id": providerID})
	if activeOnly {
		b = b.Where(sq.Eq{"s.is_active": true})
	}
	return queryAll(ctx, r.DB, b.OrderBy("s.created_at DESC"), scanServiceWithProvider)
}

func (r *ServiceRepository) Featured(ctx context.Context, limit int) ([]models.Service, error) {
	_, limit = models.NormalizePage(1, limit)
	b := selectServicesWithProvider().
		Where(sq.Eq{"s.is_active": true, "s.is_featured": true}).
		Where("(s.featured_until IS NULL OR s.featured_until > NOW())").
		OrderBy("s.featured_priority DESC", "s.average_rating DESC").
		Limit(uint64(limit))
	return queryAll(ctx, r.DB, b, scanServiceWithProvider)
}

func (r *ServiceRepository) Trending(ctx context.Context, limit int) ([]models.Service, error) {
	_, limit = models.NormalizePage(1, limit)
	b := selectServicesWithProvider().
		Where(sq.Eq{"s.is_active": true}).
		OrderBy("s.bookings_count DESC", "s.views_count DESC", "s.average_rating DESC").
		Limit(uint64(limit))
	return queryAll(ctx, r.DB, b, scanServiceWithProvider)
}

func (r *ServiceRepository) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	b := psql.Select("category", "COUNT(*)").From("services").
		Where("is_active AND category IS NOT NULL AND TRIM(category) <> ''").
		GroupBy("category").OrderBy("COUNT(*) DESC", "category")
	return queryAll(ctx, r.DB, b, func(row scanner) (models.CategoryCount, error) {
		var c models.CategoryCount
		err := row.Scan(&c.Category, &c.Count)
		return c, err
	})
}

func (r *ServiceRepository) Destinations(ctx context.Context) ([]models.DestinationCount, error) {
	b := psql.Select("region", "COALESCE(MAX(country), '')", "COUNT(*)").From("services").
		Where("is_active AND region IS NOT NULL AND TRIM(region) <> ''").
		GroupBy("region").OrderBy("COUNT(*) DESC", "region")
	return queryAll(ctx, r.DB, b, func(row scanner) (models.DestinationCount, error) {
		var d models.DestinationCount
		err := row.Scan(&d.Region, &d.Country, &d.ServiceCount)
		return d, err
	})
}

func (r *ServiceRepository) Create(ctx context.Context, s models.Service) (models.Service, error) {
	b, err := servicesTable.insert(serviceFields(s))
	if err != nil {
		return models.Service{}, err
	}
	return queryOne(ctx, r.DB, b, scanService)
}

func (r *ServiceRepository) UpdateByID(ctx context.Context, id int, fields Fields) (models.Service, error) {
	b, err := servicesTable.updateByID(id, fields)
	if err != nil {
		return models.Service{}, err
	}
	return queryOne(ctx, r.DB, b, scanService)
}

func (r *ServiceRepository) DeleteByID(ctx context.Context, id int) error {
	return execOne(ctx, r.DB, psql.Delete("services").Where(sq.Eq{"id": id}))
}

func (r *ServiceRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := execAffected(ctx, r.DB, psql.Update("services").Set("views_count", sq.Expr("views_count + 1")).Where(sq.Eq{"id": id}))
	return err
}

// serviceFields maps the writable columns of s, normalizing location strings.
func serviceFields(s models.Service) Fields {
	currency := s.Currency
	if currency == "" {
		currency = "TZS"
	}
	return Fields{
		"provider_id":      s.ProviderID,
		"title":            s.Title,
		"description":      s.Description,
		"category":         nullIfBlankPtr(s.Category),
		"subcategory":      nullIfBlankPtr(s.Subcategory),
		"price":            s.Price,
		"currency":         currency,
		"duration":         s.Duration,
		"max_participants": s.MaxParticipants,
		"location":         s.Location,
		"country":          nullIfBlankPtr(s.Country),
		"region":           nullIfBlankPtr(s.Region),
		"district":         nullIfBlankPtr(s.District),
		"area":             nullIfBlankPtr(s.Area),
		"images":           pq.Array(nonNil(s.Images)),
		"amenities":        pq.Array(nonNil(s.Amenities)),
		"is_active":        s.IsActive,
		"payment_methods":  jsonOrDefault(s.PaymentMethods, "{}"),
		"contact_info":     jsonOrDefault(s.ContactInfo, "{}"),
	}
}

// ServiceUpdateFields is serviceFields without ownership and status columns.
func ServiceUpdateFields(s models.Service) Fields {
	f := serviceFields(s)
	delete(f, "provider_id")
	delete(f, "is_active")
	return f
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// recomputeServiceRating refreshes the service's average over its reviews.
func recomputeServiceRating(ctx context.Context, db DBTX, serviceID int) error {
	_, err := db.ExecContext(ctx, `UPDATE services
		SET average_rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE service_id = $1), 0)
		WHERE id = $1`, serviceID)
	return err
}
