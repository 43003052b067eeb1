package services

import (
	"context"
	"fmt"
	"time"

	"isafari/internal/models"
)

type CartRepository interface {
	List(ctx context.Context, userID int) ([]models.CartItem, error)
	Add(ctx context.Context, userID, serviceID, quantity int) (models.CartItem, error)
	UpdateQuantity(ctx context.Context, id, userID, quantity int) (models.CartItem, error)
	Remove(ctx context.Context, id, userID int) error
	Clear(ctx context.Context, userID int) (int64, error)
	Checkout(ctx context.Context, userID int, bookingDate time.Time, specialRequests string) ([]models.Booking, error)
}

type CartService struct {
	CartRepo CartRepository
	Bookings *BookingService
}

type Cart struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

func (s *CartService) Get(ctx context.Context, userID int) (Cart, error) {
	items, err := s.CartRepo.List(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	cart := Cart{Items: items}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	for _, it := range cart.Items {
		cart.TotalItems += it.Quantity
		cart.TotalPrice += it.Price * float64(it.Quantity)
	}
	return cart, nil
}

func (s *CartService) Add(ctx context.Context, userID int, req models.CartAddRequest) (models.CartItem, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return models.CartItem{}, models.ErrInvalidQuantity
	}
	return s.CartRepo.Add(ctx, userID, req.ServiceID, qty)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, id, quantity int) (models.CartItem, error) {
	if quantity <= 0 {
		return models.CartItem{}, models.ErrInvalidQuantity
	}
	return s.CartRepo.UpdateQuantity(ctx, id, userID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, id int) error {
	return s.CartRepo.Remove(ctx, id, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int) (int64, error) {
	return s.CartRepo.Clear(ctx, userID)
}

// Checkout books every cart item for the given date and empties the cart.
// Providers are notified once the transaction committed.
func (s *CartService) Checkout(ctx context.Context, userID int, req models.CheckoutRequest) ([]models.Booking, error) {
	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("booking date: %w", err)
	}
	bookings, err := s.CartRepo.Checkout(ctx, userID, date, req.SpecialRequests)
	if err != nil {
		return nil, err
	}
	if s.Bookings != nil {
		for _, b := range bookings {
			s.Bookings.notifyProvider(ctx, b)
		}
	}
	return bookings, nil
}
