package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

const defaultRejectionReason = "No reason provided"

var promotionStatuses = []string{"", models.PromotionPending, models.PromotionApproved, models.PromotionRejected}

type AdminUserRepository interface {
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.User, error)
	DeleteByID(ctx context.Context, id int) error
}

type AdminServiceRepository interface {
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.Service, error)
	DeleteByID(ctx context.Context, id int) error
}

type AdminProviderRepository interface {
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.ServiceProvider, error)
}

type AdminBookingRepository interface {
	UpdateStatus(ctx context.Context, id int, status string) (models.Booking, error)
}

type PromotionReviewRepository interface {
	List(ctx context.Context, status string) ([]models.ServicePromotion, error)
	Stats(ctx context.Context) (models.PromotionStats, error)
	Approve(ctx context.Context, id, adminID int, now time.Time) (models.ServicePromotion, error)
	Reject(ctx context.Context, id int, reason string) (models.ServicePromotion, error)
}

// AdminService backs the /api/admin moderation endpoints.
type AdminService struct {
	UserRepo      AdminUserRepository
	ServiceRepo   AdminServiceRepository
	ProviderRepo  AdminProviderRepository
	BookingRepo   AdminBookingRepository
	PromotionRepo PromotionReviewRepository
	Notifier      Notifier
	Log           Logger
}

type PromotionReview struct {
	Promotions []models.ServicePromotion `json:"promotions"`
	Stats      models.PromotionStats     `json:"stats"`
}

func (s *AdminService) SetUserActive(ctx context.Context, id int, active bool) (models.User, error) {
	return s.updateUser(ctx, id, repositories.Fields{"is_active": active})
}

func (s *AdminService) VerifyUser(ctx context.Context, id int) (models.User, error) {
	return s.updateUser(ctx, id, repositories.Fields{"is_verified": true})
}

func (s *AdminService) SuspendUser(ctx context.Context, id int) (models.User, error) {
	return s.SetUserActive(ctx, id, false)
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, id int) error {
	if adminID == id {
		return models.ErrForbidden
	}
	err := s.UserRepo.DeleteByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ErrUserNotFound
	}
	if err == nil {
		loggerOrNop(s.Log).Infof("admin %d deleted user %d", adminID, id)
	}
	return err
}

func (s *AdminService) updateUser(ctx context.Context, id int, fields repositories.Fields) (models.User, error) {
	u, err := s.UserRepo.UpdateByID(ctx, id, fields)
	if errors.Is(err, models.ErrNoRecord) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

// ApproveService publishes the service.
func (s *AdminService) ApproveService(ctx context.Context, id int) (models.Service, error) {
	return s.updateService(ctx, id, true)
}

// RejectService hides the service from the catalogue.
func (s *AdminService) RejectService(ctx context.Context, id int) (models.Service, error) {
	return s.updateService(ctx, id, false)
}

func (s *AdminService) updateService(ctx context.Context, id int, active bool) (models.Service, error) {
	svc, err := s.ServiceRepo.UpdateByID(ctx, id, repositories.Fields{"is_active": active})
	if errors.Is(err, models.ErrNoRecord) {
		return models.Service{}, models.ErrServiceNotFound
	}
	return svc, err
}

// DeleteService removes the service with its bookings, cart entries and
// promotions.
func (s *AdminService) DeleteService(ctx context.Context, id int) error {
	err := s.ServiceRepo.DeleteByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ErrServiceNotFound
	}
	return err
}

// SetProviderBadge grants or removes the provider's verified badge.
func (s *AdminService) SetProviderBadge(ctx context.Context, id int, verified bool) (models.ServiceProvider, error) {
	p, err := s.ProviderRepo.UpdateByID(ctx, id, repositories.Fields{"is_verified": verified})
	if errors.Is(err, models.ErrNoRecord) {
		return models.ServiceProvider{}, models.ErrProviderNotFound
	}
	return p, err
}

// CancelBooking cancels any booking and tells the traveler.
func (s *AdminService) CancelBooking(ctx context.Context, id int) (models.Booking, error) {
	b, err := s.BookingRepo.UpdateStatus(ctx, id, models.BookingCancelled)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}
	s.notify(ctx, b.TravelerID, models.NotificationBookingStatus, "Booking cancelled",
		"Your booking was cancelled by the iSafari team.",
		map[string]interface{}{"booking_id": b.ID, "status": models.BookingCancelled})
	return b, nil
}

// Promotions lists promotion requests with per-status counts. status may be
// empty for every request.
func (s *AdminService) Promotions(ctx context.Context, status string) (PromotionReview, error) {
	if !slices.Contains(promotionStatuses, status) {
		return PromotionReview{}, models.ErrInvalidStatus
	}
	list, err := s.PromotionRepo.List(ctx, status)
	if err != nil {
		return PromotionReview{}, err
	}
	stats, err := s.PromotionRepo.Stats(ctx)
	if err != nil {
		return PromotionReview{}, err
	}
	if list == nil {
		list = []models.ServicePromotion{}
	}
	return PromotionReview{Promotions: list, Stats: stats}, nil
}

// ApprovePromotion starts the promotion now and boosts its service.
func (s *AdminService) ApprovePromotion(ctx context.Context, adminID, id int) (models.ServicePromotion, error) {
	p, err := s.PromotionRepo.Approve(ctx, id, adminID, time.Now().UTC())
	if errors.Is(err, models.ErrNoRecord) {
		return models.ServicePromotion{}, models.ErrPromotionNotFound
	}
	if err != nil {
		return models.ServicePromotion{}, err
	}
	loggerOrNop(s.Log).Infof("admin %d approved %s promotion %d for service %d", adminID, p.PromotionType, p.ID, p.ServiceID)
	s.notify(ctx, p.ProviderUserID, models.NotificationPromotion, "Promotion approved",
		fmt.Sprintf("Your %s promotion for %q is live until %s.", p.PromotionType, p.ServiceTitle, p.ExpiresAt.Format("2006-01-02")),
		map[string]interface{}{"promotion_id": p.ID, "service_id": p.ServiceID, "status": p.Status})
	return p, nil
}

func (s *AdminService) RejectPromotion(ctx context.Context, id int, reason string) (models.ServicePromotion, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRejectionReason
	}
	p, err := s.PromotionRepo.Reject(ctx, id, reason)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ServicePromotion{}, models.ErrPromotionNotFound
	}
	if err != nil {
		return models.ServicePromotion{}, err
	}
	s.notify(ctx, p.ProviderUserID, models.NotificationPromotion, "Promotion not approved",
		fmt.Sprintf("Your %s promotion for %q was not approved: %s", p.PromotionType, p.ServiceTitle, reason),
		map[string]interface{}{"promotion_id": p.ID, "service_id": p.ServiceID, "status": p.Status})
	return p, nil
}

func (s *AdminService) notify(ctx context.Context, userID int, kind, title, message string, data map[string]interface{}) {
	if s.Notifier == nil || userID == 0 {
		return
	}
	if _, err := s.Notifier.Notify(ctx, userID, kind, title, message, data); err != nil {
		loggerOrNop(s.Log).Errorf("admin: notify user %d (%s): %v", userID, kind, err)
	}
}
