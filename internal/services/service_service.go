package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"isafari/internal/models"
	"isafari/internal/planner"
	"isafari/internal/repositories"
)

const (
	featuredLimit = 6
	trendingLimit = 10
)

type ServiceRepository interface {
	List(ctx context.Context, f models.ServiceFilter) ([]models.Service, int, error)
	GetByID(ctx context.Context, id int) (models.Service, error)
	IncrementViews(ctx context.Context, id int) error
	Featured(ctx context.Context, limit int) ([]models.Service, error)
	Trending(ctx context.Context, limit int) ([]models.Service, error)
	Categories(ctx context.Context) ([]models.CategoryCount, error)
	Destinations(ctx context.Context) ([]models.DestinationCount, error)
	ListByProvider(ctx context.Context, providerID int, activeOnly bool) ([]models.Service, error)
	ListForPlanner(ctx context.Context, region string) ([]models.Service, error)
	Create(ctx context.Context, s models.Service) (models.Service, error)
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.Service, error)
	DeleteByID(ctx context.Context, id int) error
}

type PromotionRepository interface {
	Create(ctx context.Context, promo models.ServicePromotion, payment models.Payment) (models.ServicePromotion, error)
	ListByService(ctx context.Context, serviceID int) ([]models.ServicePromotion, error)
	ClearExpired(ctx context.Context, now time.Time) (int64, error)
}

type ServiceService struct {
	ServiceRepo   ServiceRepository
	ProviderRepo  ProviderLookup
	PromotionRepo PromotionRepository
	Log           Logger
}

type ServicePage struct {
	Services   []models.Service  `json:"services"`
	Pagination models.Pagination `json:"pagination"`
}

func (s *ServiceService) List(ctx context.Context, f models.ServiceFilter) (ServicePage, error) {
	f.Page, f.Limit = models.NormalizePage(f.Page, f.Limit)
	items, total, err := s.ServiceRepo.List(ctx, f)
	if err != nil {
		return ServicePage{}, err
	}
	if items == nil {
		items = []models.Service{}
	}
	return ServicePage{Services: items, Pagination: models.NewPagination(f.Page, f.Limit, total)}, nil
}

// Get returns the service and counts the view.
func (s *ServiceService) Get(ctx context.Context, id int) (models.Service, error) {
	svc, err := s.ServiceRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Service{}, models.ErrServiceNotFound
	}
	if err != nil {
		return models.Service{}, err
	}
	if err := s.ServiceRepo.IncrementViews(ctx, id); err != nil {
		loggerOrNop(s.Log).Errorf("increment views of service %d: %v", id, err)
	} else {
		svc.ViewsCount++
	}
	return svc, nil
}

func (s *ServiceService) Featured(ctx context.Context) ([]models.Service, error) {
	return s.ServiceRepo.Featured(ctx, featuredLimit)
}

func (s *ServiceService) Trending(ctx context.Context) ([]models.Service, error) {
	return s.ServiceRepo.Trending(ctx, trendingLimit)
}

func (s *ServiceService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	return s.ServiceRepo.Categories(ctx)
}

func (s *ServiceService) Destinations(ctx context.Context) ([]models.DestinationCount, error) {
	return s.ServiceRepo.Destinations(ctx)
}

// Mine lists every service of the caller's provider profile, inactive included.
func (s *ServiceService) Mine(ctx context.Context, userID int) ([]models.Service, error) {
	p, err := s.provider(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ServiceRepo.ListByProvider(ctx, p.ID, false)
}

// SearchByLocation runs the journey planner filter over the active services.
func (s *ServiceService) SearchByLocation(ctx context.Context, c planner.Criteria) (planner.Result, error) {
	candidates, err := s.ServiceRepo.ListForPlanner(ctx, c.Location.Region)
	if err != nil {
		return planner.Result{}, fmt.Errorf("load planner candidates: %w", err)
	}
	return planner.Search(candidates, c), nil
}

func (s *ServiceService) Create(ctx context.Context, userID int, req models.ServiceRequest) (models.Service, error) {
	p, err := s.provider(ctx, userID)
	if err != nil {
		return models.Service{}, err
	}
	svc := serviceFromRequest(req)
	svc.ProviderID = &p.ID
	svc.IsActive = true
	return s.ServiceRepo.Create(ctx, svc)
}

func (s *ServiceService) Update(ctx context.Context, userID, id int, req models.ServiceRequest) (models.Service, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return models.Service{}, err
	}
	return s.ServiceRepo.UpdateByID(ctx, id, repositories.ServiceUpdateFields(serviceFromRequest(req)))
}

func (s *ServiceService) SetActive(ctx context.Context, userID, id int, active bool) (models.Service, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return models.Service{}, err
	}
	return s.ServiceRepo.UpdateByID(ctx, id, repositories.Fields{"is_active": active})
}

func (s *ServiceService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.ServiceRepo.DeleteByID(ctx, id)
}

// Promote pays for a promotion of the service at the flat price of its type.
// The promotion waits for admin approval before the service is boosted.
func (s *ServiceService) Promote(ctx context.Context, userID, id int, req models.PromotionRequest) (models.ServicePromotion, error) {
	cost, ok := models.PromotionCost[req.PromotionType]
	if !ok {
		return models.ServicePromotion{}, models.ErrInvalidPromotion
	}
	svc, err := s.owned(ctx, userID, id)
	if err != nil {
		return models.ServicePromotion{}, err
	}

	days := req.DurationDays
	if days == 0 {
		days = models.DefaultPromotionDays
	}
	expires := time.Now().UTC().AddDate(0, 0, days)

	promo := models.ServicePromotion{
		ServiceID:         svc.ID,
		PromotionType:     req.PromotionType,
		PromotionLocation: optionalStr(req.PromotionLocation),
		DurationDays:      days,
		Cost:              cost,
		PaymentMethod:     req.PaymentMethod,
		ExpiresAt:         expires,
	}
	payment := models.Payment{
		UserID:        userID,
		ProviderID:    svc.ProviderID,
		ServiceID:     &svc.ID,
		PaymentType:   models.PaymentTypeFeatured,
		Amount:        cost,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentCompleted,
		TransactionID: uuid.NewString(),
		Description:   fmt.Sprintf("%s promotion for %q, %d days", req.PromotionType, svc.Title, days),
		ValidUntil:    &expires,
	}
	promo, err = s.PromotionRepo.Create(ctx, promo, payment)
	if err != nil {
		return models.ServicePromotion{}, err
	}
	loggerOrNop(s.Log).Infof("promotion %d (%s) for service %d awaiting approval", promo.ID, promo.PromotionType, promo.ServiceID)
	return promo, nil
}

func (s *ServiceService) Promotions(ctx context.Context, userID, id int) ([]models.ServicePromotion, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.PromotionRepo.ListByService(ctx, id)
}

func (s *ServiceService) provider(ctx context.Context, userID int) (models.ServiceProvider, error) {
	p, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ServiceProvider{}, models.ErrNotProvider
	}
	return p, err
}

// owned loads the service and checks it belongs to the caller's provider profile.
func (s *ServiceService) owned(ctx context.Context, userID, id int) (models.Service, error) {
	p, err := s.provider(ctx, userID)
	if err != nil {
		return models.Service{}, err
	}
	svc, err := s.ServiceRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Service{}, models.ErrServiceNotFound
	}
	if err != nil {
		return models.Service{}, err
	}
	if svc.ProviderID == nil || *svc.ProviderID != p.ID {
		return models.Service{}, models.ErrForbidden
	}
	return svc, nil
}

func serviceFromRequest(req models.ServiceRequest) models.Service {
	return models.Service{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Category:        optionalStr(req.Category),
		Subcategory:     optionalStr(req.Subcategory),
		Price:           req.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		Duration:        req.Duration,
		MaxParticipants: req.MaxParticipants,
		Location:        strings.TrimSpace(req.Location),
		Country:         optionalStr(req.Country),
		Region:          optionalStr(req.Region),
		District:        optionalStr(req.District),
		Area:            optionalStr(req.Area),
		Images:          req.Images,
		Amenities:       req.Amenities,
		PaymentMethods:  req.PaymentMethods,
		ContactInfo:     req.ContactInfo,
	}
}

// ExpirePromotions clears the promotion flags of services whose promotion
// ended before now.
func (s *ServiceService) ExpirePromotions(ctx context.Context, now time.Time) (int64, error) {
	return s.PromotionRepo.ClearExpired(ctx, now)
}
