package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int) (models.Booking, error)
	ListByTraveler(ctx context.Context, travelerID int) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID int) ([]models.Booking, error)
	CreateForService(ctx context.Context, nb repositories.NewBooking) (models.Booking, error)
	UpdateStatus(ctx context.Context, id int, status string) (models.Booking, error)
	DeleteByID(ctx context.Context, id int) error
}

type ProviderReader interface {
	GetByID(ctx context.Context, id int) (models.ServiceProvider, error)
	GetByUserID(ctx context.Context, userID int) (models.ServiceProvider, error)
}

// Notifier is implemented by NotificationService.
type Notifier interface {
	Notify(ctx context.Context, userID int, kind, title, message string, data map[string]interface{}) (models.Notification, error)
}

type BookingService struct {
	BookingRepo  BookingRepository
	ProviderRepo ProviderReader
	Notifier     Notifier
	Log          Logger
}

func (s *BookingService) ListForTraveler(ctx context.Context, userID int) ([]models.Booking, error) {
	return s.BookingRepo.ListByTraveler(ctx, userID)
}

func (s *BookingService) ListForProvider(ctx context.Context, userID int) ([]models.Booking, error) {
	p, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return nil, models.ErrNotProvider
	}
	if err != nil {
		return nil, err
	}
	return s.BookingRepo.ListByProvider(ctx, p.ID)
}

func (s *BookingService) Create(ctx context.Context, userID int, req models.BookingRequest) (models.Booking, error) {
	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking date: %w", err)
	}
	participants := req.Participants
	if participants == 0 {
		participants = 1
	}

	b, err := s.BookingRepo.CreateForService(ctx, repositories.NewBooking{
		TravelerID:      userID,
		ServiceID:       req.ServiceID,
		BookingDate:     date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Participants:    participants,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return models.Booking{}, err
	}

	s.notifyProvider(ctx, b)
	return b, nil
}

func (s *BookingService) notifyProvider(ctx context.Context, b models.Booking) {
	if s.Notifier == nil {
		return
	}
	log := loggerOrNop(s.Log)
	p, err := s.ProviderRepo.GetByID(ctx, b.ProviderID)
	if err != nil {
		log.Errorf("booking %d: load provider %d: %v", b.ID, b.ProviderID, err)
		return
	}
	_, err = s.Notifier.Notify(ctx, p.UserID, models.NotificationBookingCreated,
		"New booking",
		fmt.Sprintf("You have a new booking for %s with %d participant(s).", b.BookingDate.Format("2006-01-02"), b.Participants),
		map[string]interface{}{"booking_id": b.ID, "service_id": b.ServiceID})
	if err != nil {
		log.Errorf("booking %d: notify provider: %v", b.ID, err)
	}
}

// UpdateStatus lets the provider of the booking move it to another status
// and informs the traveler.
func (s *BookingService) UpdateStatus(ctx context.Context, userID, id int, status string) (models.Booking, error) {
	if !slices.Contains(models.BookingStatuses, status) {
		return models.Booking{}, models.ErrInvalidStatus
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	p, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Booking{}, models.ErrForbidden
	}
	if err != nil {
		return models.Booking{}, err
	}
	if b.ProviderID != p.ID {
		return models.Booking{}, models.ErrForbidden
	}

	updated, err := s.BookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.Booking{}, err
	}

	if s.Notifier != nil {
		_, err := s.Notifier.Notify(ctx, b.TravelerID, models.NotificationBookingStatus,
			"Booking "+status,
			fmt.Sprintf("Your booking with %s is now %s.", p.BusinessName, status),
			map[string]interface{}{"booking_id": b.ID, "status": status})
		if err != nil {
			loggerOrNop(s.Log).Errorf("booking %d: notify traveler: %v", b.ID, err)
		}
	}
	return updated, nil
}

// Delete removes the booking for its traveler or its provider.
func (s *BookingService) Delete(ctx context.Context, userID, id int) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if b.TravelerID != userID {
		p, err := s.ProviderRepo.GetByUserID(ctx, userID)
		if err != nil || p.ID != b.ProviderID {
			return models.ErrForbidden
		}
	}
	return s.BookingRepo.DeleteByID(ctx, id)
}

func (s *BookingService) load(ctx context.Context, id int) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	return b, err
}
