package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"isafari/internal/models"
)

type ReviewRepository interface {
	GetByID(ctx context.Context, id int) (models.Review, error)
	ListByService(ctx context.Context, serviceID int) ([]models.Review, error)
	ListByProvider(ctx context.Context, providerID int) ([]models.Review, error)
	ListByTraveler(ctx context.Context, travelerID int) ([]models.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int) (bool, error)
	Create(ctx context.Context, rv models.Review) (models.Review, error)
	Update(ctx context.Context, id, rating int, comment string) (models.Review, error)
	Delete(ctx context.Context, rv models.Review) error
}

type BookingGetter interface {
	GetByID(ctx context.Context, id int) (models.Booking, error)
}

type ReviewService struct {
	ReviewsRepo  ReviewRepository
	BookingRepo  BookingGetter
	ProviderRepo ProviderReader
	Notifier     Notifier
	Log          Logger
}

func (s *ReviewService) ListByService(ctx context.Context, serviceID int) ([]models.Review, error) {
	return s.ReviewsRepo.ListByService(ctx, serviceID)
}

func (s *ReviewService) ListByProvider(ctx context.Context, providerID int) ([]models.Review, error) {
	return s.ReviewsRepo.ListByProvider(ctx, providerID)
}

func (s *ReviewService) ListMine(ctx context.Context, userID int) ([]models.Review, error) {
	return s.ReviewsRepo.ListByTraveler(ctx, userID)
}

// Create reviews a completed booking of the caller. Each booking takes one review.
func (s *ReviewService) Create(ctx context.Context, userID int, req models.ReviewRequest) (models.Review, error) {
	b, err := s.BookingRepo.GetByID(ctx, req.BookingID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Review{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	if b.TravelerID != userID {
		return models.Review{}, models.ErrBookingNotFound
	}
	if b.Status != models.BookingCompleted {
		return models.Review{}, models.ErrBookingNotComplete
	}
	exists, err := s.ReviewsRepo.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return models.Review{}, err
	}
	if exists {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	rv, err := s.ReviewsRepo.Create(ctx, models.Review{
		BookingID:  b.ID,
		TravelerID: userID,
		ServiceID:  b.ServiceID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		return models.Review{}, err
	}
	s.notifyProvider(ctx, rv, b.ServiceTitle)
	return rv, nil
}

func (s *ReviewService) notifyProvider(ctx context.Context, rv models.Review, title string) {
	if s.Notifier == nil || s.ProviderRepo == nil {
		return
	}
	log := loggerOrNop(s.Log)
	p, err := s.ProviderRepo.GetByID(ctx, rv.ProviderID)
	if err != nil {
		log.Errorf("review %d: load provider: %v", rv.ID, err)
		return
	}
	if title == "" {
		title = "your service"
	}
	if _, err := s.Notifier.Notify(ctx, p.UserID, models.NotificationNewReview, "New review",
		fmt.Sprintf("%s received a %d-star review.", title, rv.Rating),
		map[string]interface{}{"review_id": rv.ID, "service_id": rv.ServiceID}); err != nil {
		log.Errorf("review %d: notify provider: %v", rv.ID, err)
	}
}

func (s *ReviewService) Update(ctx context.Context, userID, id int, req models.ReviewUpdateRequest) (models.Review, error) {
	if _, err := s.authored(ctx, userID, id); err != nil {
		return models.Review{}, err
	}
	return s.ReviewsRepo.Update(ctx, id, req.Rating, strings.TrimSpace(req.Comment))
}

func (s *ReviewService) Delete(ctx context.Context, userID, id int) error {
	rv, err := s.authored(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.ReviewsRepo.Delete(ctx, rv)
}

func (s *ReviewService) authored(ctx context.Context, userID, id int) (models.Review, error) {
	rv, err := s.ReviewsRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Review{}, models.ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	if rv.TravelerID != userID {
		return models.Review{}, models.ErrForbidden
	}
	return rv, nil
}
