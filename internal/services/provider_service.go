package services

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"

	"isafari/internal/models"
	"isafari/internal/planner"
	"isafari/internal/repositories"
)

type ProviderRepository interface {
	GetByID(ctx context.Context, id int) (models.ServiceProvider, error)
	GetByUserID(ctx context.Context, userID int) (models.ServiceProvider, error)
	List(ctx context.Context, f models.ProviderFilter) ([]models.ServiceProvider, int, error)
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.ServiceProvider, error)
}

type ProviderServiceLister interface {
	ListByProvider(ctx context.Context, providerID int, activeOnly bool) ([]models.Service, error)
	ListForPlanner(ctx context.Context, region string) ([]models.Service, error)
}

type ProviderService struct {
	ProviderRepo ProviderRepository
	ServiceRepo  ProviderServiceLister
}

type ProviderPage struct {
	Providers  []models.ServiceProvider `json:"providers"`
	Pagination models.Pagination        `json:"pagination"`
}

// ProviderMatch is a provider found by the location search together with
// its matching services.
type ProviderMatch struct {
	models.ServiceProvider
	ServiceCount int `json:"service_count"`
}

type ProviderSearchResult struct {
	Providers      []ProviderMatch   `json:"providers"`
	Pagination     models.Pagination `json:"pagination"`
	FallbackSearch bool              `json:"fallback_search"`
	Criteria       planner.Criteria  `json:"search_criteria"`
}

func (s *ProviderService) List(ctx context.Context, f models.ProviderFilter) (ProviderPage, error) {
	f.Page, f.Limit = models.NormalizePage(f.Page, f.Limit)
	items, total, err := s.ProviderRepo.List(ctx, f)
	if err != nil {
		return ProviderPage{}, err
	}
	if items == nil {
		items = []models.ServiceProvider{}
	}
	return ProviderPage{Providers: items, Pagination: models.NewPagination(f.Page, f.Limit, total)}, nil
}

// Get returns the provider with its active services.
func (s *ProviderService) Get(ctx context.Context, id int) (models.ServiceProvider, error) {
	p, err := s.ProviderRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ServiceProvider{}, models.ErrProviderNotFound
	}
	if err != nil {
		return models.ServiceProvider{}, err
	}
	services, err := s.ServiceRepo.ListByProvider(ctx, id, true)
	if err != nil {
		return models.ServiceProvider{}, err
	}
	if services == nil {
		services = []models.Service{}
	}
	p.Services = services
	return p, nil
}

// Search groups the services matching the criteria by provider and pages
// over the providers. When nothing matches it falls back to the first page
// of all providers.
func (s *ProviderService) Search(ctx context.Context, c planner.Criteria, page, limit int) (ProviderSearchResult, error) {
	page, limit = models.NormalizePage(page, limit)
	candidates, err := s.ServiceRepo.ListForPlanner(ctx, c.Location.Region)
	if err != nil {
		return ProviderSearchResult{}, err
	}
	groups := planner.Search(candidates, c).Providers

	if len(groups) == 0 {
		all, total, err := s.ProviderRepo.List(ctx, models.ProviderFilter{Page: 1, Limit: limit})
		if err != nil {
			return ProviderSearchResult{}, err
		}
		matches := make([]ProviderMatch, 0, len(all))
		for _, p := range all {
			matches = append(matches, ProviderMatch{ServiceProvider: p})
		}
		return ProviderSearchResult{
			Providers:      matches,
			Pagination:     models.NewPagination(1, limit, total),
			FallbackSearch: true,
			Criteria:       c,
		}, nil
	}

	start := models.Offset(page, limit)
	end := start + limit
	if start > len(groups) {
		start = len(groups)
	}
	if end > len(groups) {
		end = len(groups)
	}
	matches := make([]ProviderMatch, 0, end-start)
	for _, g := range groups[start:end] {
		matches = append(matches, ProviderMatch{
			ServiceProvider: models.ServiceProvider{ID: g.ID, BusinessName: g.BusinessName, Services: g.Services},
			ServiceCount:    g.ServiceCount,
		})
	}
	return ProviderSearchResult{
		Providers:  matches,
		Pagination: models.NewPagination(page, limit, len(groups)),
		Criteria:   c,
	}, nil
}

// UpdateProfile applies the given fields to the caller's provider profile.
// Location fields are trimmed and blanks stored as NULL.
func (s *ProviderService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProviderRequest) (models.ServiceProvider, error) {
	p, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ServiceProvider{}, models.ErrNotProvider
	}
	if err != nil {
		return models.ServiceProvider{}, err
	}

	fields := repositories.Fields{}
	setTrimmed := func(col string, v *string) {
		if v != nil {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	setLocation := func(col string, v *string) {
		if v != nil {
			fields[col] = optionalStr(*v)
		}
	}
	setTrimmed("business_name", req.BusinessName)
	setTrimmed("business_type", req.BusinessType)
	setTrimmed("description", req.Description)
	setTrimmed("location", req.Location)
	setTrimmed("service_location", req.ServiceLocation)
	setTrimmed("license_number", req.LicenseNumber)
	setLocation("country", req.Country)
	setLocation("region", req.Region)
	setLocation("district", req.District)
	setLocation("area", req.Area)
	setLocation("ward", req.Ward)
	if req.ServiceCategories != nil {
		fields["service_categories"] = pq.Array(req.ServiceCategories)
	}

	if len(fields) == 0 {
		return p, nil
	}
	return s.ProviderRepo.UpdateByID(ctx, p.ID, fields)
}
