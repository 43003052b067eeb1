package services

import (
	"context"
	"errors"

	"isafari/internal/models"
)

type FavoriteRepository interface {
	List(ctx context.Context, userID int) ([]models.Favorite, error)
	Add(ctx context.Context, userID, providerID int) error
	Remove(ctx context.Context, userID, providerID int) error
	Exists(ctx context.Context, userID, providerID int) (bool, error)
}

type FavoriteService struct {
	FavoriteRepo FavoriteRepository
	ProviderRepo ProviderReader
}

func (s *FavoriteService) List(ctx context.Context, userID int) ([]models.Favorite, error) {
	favs, err := s.FavoriteRepo.List(ctx, userID)
	if favs == nil && err == nil {
		favs = []models.Favorite{}
	}
	return favs, err
}

// Add is idempotent: favoriting a provider twice keeps one row.
func (s *FavoriteService) Add(ctx context.Context, userID, providerID int) error {
	if _, err := s.ProviderRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.ErrProviderNotFound
		}
		return err
	}
	return s.FavoriteRepo.Add(ctx, userID, providerID)
}

func (s *FavoriteService) Remove(ctx context.Context, userID, providerID int) error {
	return s.FavoriteRepo.Remove(ctx, userID, providerID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, providerID int) (bool, error) {
	return s.FavoriteRepo.Exists(ctx, userID, providerID)
}
