package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"isafari/internal/models"
)

type PaymentRepository interface {
	ListByUser(ctx context.Context, userID int) ([]models.Payment, error)
	PayBooking(ctx context.Context, p models.Payment) (models.Payment, error)
}

type PaymentService struct {
	PaymentRepo  PaymentRepository
	ProviderRepo ProviderReader
	Notifier     Notifier
	Log          Logger
}

func (s *PaymentService) List(ctx context.Context, userID int) ([]models.Payment, error) {
	return s.PaymentRepo.ListByUser(ctx, userID)
}

// PayBooking records a completed payment for the caller's booking. No money
// moves; the payment method is stored as given.
func (s *PaymentService) PayBooking(ctx context.Context, userID int, req models.PaymentRequest) (models.Payment, error) {
	bookingID := req.BookingID
	p, err := s.PaymentRepo.PayBooking(ctx, models.Payment{
		UserID:        userID,
		BookingID:     &bookingID,
		PaymentType:   models.PaymentTypeBooking,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentCompleted,
		TransactionID: uuid.NewString(),
		Description:   fmt.Sprintf("Payment for booking #%d", bookingID),
	})
	if err != nil {
		return models.Payment{}, err
	}

	if s.Notifier != nil && s.ProviderRepo != nil && p.ProviderID != nil {
		log := loggerOrNop(s.Log)
		if provider, err := s.ProviderRepo.GetByID(ctx, *p.ProviderID); err != nil {
			log.Errorf("payment %d: load provider: %v", p.ID, err)
		} else if _, err := s.Notifier.Notify(ctx, provider.UserID, models.NotificationPayment, "Payment received",
			fmt.Sprintf("Booking #%d was paid: %.2f %s.", bookingID, p.Amount, p.Currency),
			map[string]interface{}{"booking_id": bookingID, "payment_id": p.ID}); err != nil {
			log.Errorf("payment %d: notify provider: %v", p.ID, err)
		}
	}
	return p, nil
}
