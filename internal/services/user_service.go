package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

type UserService struct {
	UserRepo UserRepository
}

func (s *UserService) Profile(ctx context.Context, userID int) (models.User, error) {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest) (models.User, error) {
	fields := repositories.Fields{}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		fields["phone"] = optionalStr(*req.Phone)
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = optionalStr(*req.AvatarURL)
	}
	if len(fields) == 0 {
		return s.Profile(ctx, userID)
	}
	return s.UserRepo.UpdateByID(ctx, userID, fields)
}

func (s *UserService) ChangePassword(ctx context.Context, userID int, req models.ChangePasswordRequest) error {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if u.Password == nil || *u.Password == "" {
		return models.ErrNoPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(req.CurrentPassword)); err != nil {
		return models.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.UserRepo.UpdatePassword(ctx, userID, string(hash))
}

// SetDeviceToken stores the FCM registration token; an empty token disables push.
func (s *UserService) SetDeviceToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.SetFCMToken(ctx, userID, strings.TrimSpace(token))
}
