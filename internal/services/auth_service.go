package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"isafari/internal/models"
	"isafari/internal/repositories"
	"isafari/utils"
)

const bcryptCost = 12

type UserRepository interface {
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	CreateWithProvider(ctx context.Context, u models.User, provider *models.ServiceProvider) (models.User, error)
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.User, error)
	UpdatePassword(ctx context.Context, id int, hash string) error
	SetFCMToken(ctx context.Context, id int, token string) error
}

type ProviderLookup interface {
	GetByUserID(ctx context.Context, userID int) (models.ServiceProvider, error)
}

type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID int, ttl time.Duration) error
	Consume(ctx context.Context, token string) (int, error)
}

type TokenIssuer interface {
	NewJWT(u models.User) (string, error)
}

type AuthService struct {
	UserRepo     UserRepository
	ProviderRepo ProviderLookup
	ResetTokens  ResetTokenStore
	TokenManager TokenIssuer
	ResetTTL     time.Duration
	Log          Logger
}

func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.UserRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return models.AuthResult{}, models.ErrDuplicateEmail
	case !errors.Is(err, models.ErrNoRecord):
		return models.AuthResult{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)

	u := models.User{
		Email:     email,
		Password:  &hashed,
		FirstName: strPtr(req.FirstName),
		LastName:  strPtr(req.LastName),
		Phone:     optionalStr(req.Phone),
		UserType:  req.UserType,
	}

	var provider *models.ServiceProvider
	if req.UserType == models.UserTypeProvider {
		p, err := providerFromSignUp(req)
		if err != nil {
			return models.AuthResult{}, err
		}
		provider = &p
	}

	created, err := s.UserRepo.CreateWithProvider(ctx, u, provider)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("create user: %w", err)
	}
	return s.issue(created)
}

// providerFromSignUp builds the provider profile registered alongside a
// service_provider account.
func providerFromSignUp(req models.SignUpRequest) (models.ServiceProvider, error) {
	loc := models.LocationData{}
	if req.LocationData != nil {
		loc = *req.LocationData
	}
	loc.Region = strings.TrimSpace(loc.Region)
	loc.District = strings.TrimSpace(loc.District)
	loc.Ward = strings.TrimSpace(loc.Ward)
	loc.Street = strings.TrimSpace(loc.Street)

	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		name = fmt.Sprintf("%s %s's Business", req.FirstName, req.LastName)
	}
	businessType := strings.TrimSpace(req.BusinessType)
	if businessType == "" {
		businessType = "General Services"
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "Professional " + strings.ToLower(businessType) + " provider"
	}
	categories := req.ServiceCategories
	if len(categories) == 0 {
		categories = []string{businessType}
	}

	raw, err := json.Marshal(map[string]string{
		"region":   loc.Region,
		"district": loc.District,
		"ward":     loc.Ward,
		"street":   loc.Street,
	})
	if err != nil {
		return models.ServiceProvider{}, err
	}

	location := joinLocation(loc.Street, loc.Ward, loc.District, loc.Region, "Tanzania")
	country := "Tanzania"
	return models.ServiceProvider{
		BusinessName:      name,
		BusinessType:      businessType,
		Description:       description,
		Location:          location,
		ServiceLocation:   location,
		Country:           &country,
		Region:            optionalStr(loc.Region),
		District:          optionalStr(loc.District),
		Ward:              optionalStr(loc.Ward),
		LocationData:      raw,
		ServiceCategories: categories,
	}, nil
}

func joinLocation(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResult, error) {
	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrNoRecord) {
		return models.AuthResult{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResult{}, err
	}
	if u.Password == nil || *u.Password == "" {
		return models.AuthResult{}, models.ErrNoPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(req.Password)); err != nil {
		return models.AuthResult{}, models.ErrInvalidCredentials
	}
	if !u.IsActive {
		return models.AuthResult{}, models.ErrAccountSuspended
	}
	if u.UserType == models.UserTypeProvider {
		s.attachProvider(ctx, &u)
	}
	return s.issue(u)
}

func (s *AuthService) issue(u models.User) (models.AuthResult, error) {
	token, err := s.TokenManager.NewJWT(u)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return models.AuthResult{User: u, Token: token}, nil
}

// Me returns the user with the provider profile attached for providers.
func (s *AuthService) Me(ctx context.Context, userID int) (models.User, error) {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	if u.UserType == models.UserTypeProvider {
		s.attachProvider(ctx, &u)
	}
	return u, nil
}

func (s *AuthService) attachProvider(ctx context.Context, u *models.User) {
	if s.ProviderRepo == nil {
		return
	}
	p, err := s.ProviderRepo.GetByUserID(ctx, u.ID)
	if err != nil {
		if !errors.Is(err, models.ErrNoRecord) {
			loggerOrNop(s.Log).Errorf("load provider for user %d: %v", u.ID, err)
		}
		return
	}
	u.Provider = &p
}

// ForgotPassword stores a reset token when the email belongs to a user.
// Unknown emails are not reported to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.UserRepo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNoRecord) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.NewResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.ResetTokens.Save(ctx, token, u.ID, s.ResetTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	loggerOrNop(s.Log).Infof("password reset token issued for user %d", u.ID)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	userID, err := s.ResetTokens.Consume(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.UserRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.ErrInvalidResetToken
		}
		return err
	}
	return nil
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	return &s
}

func optionalStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
