package services

import (
	"context"
	"sync"
	"time"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

type stubUsers struct {
	byEmail   map[string]models.User
	byID      map[int]models.User
	created   *models.User
	provider  *models.ServiceProvider
	passwords map[int]string
	fcm       map[int]string
	fields    repositories.Fields
}

func newStubUsers(users ...models.User) *stubUsers {
	s := &stubUsers{byEmail: map[string]models.User{}, byID: map[int]models.User{}, passwords: map[int]string{}, fcm: map[int]string{}}
	for _, u := range users {
		s.byEmail[u.Email] = u
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id int) (models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return models.User{}, models.ErrNoRecord
	}
	return u, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return models.User{}, models.ErrNoRecord
	}
	return u, nil
}

func (s *stubUsers) CreateWithProvider(_ context.Context, u models.User, p *models.ServiceProvider) (models.User, error) {
	u.ID = len(s.byID) + 100
	s.created = &u
	s.provider = p
	if p != nil {
		cp := *p
		cp.UserID = u.ID
		u.Provider = &cp
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return u, nil
}

func (s *stubUsers) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.User, error) {
	s.fields = fields
	return s.byID[id], nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, id int, hash string) error {
	if _, ok := s.byID[id]; !ok {
		return models.ErrNoRecord
	}
	s.passwords[id] = hash
	return nil
}

func (s *stubUsers) SetFCMToken(_ context.Context, id int, token string) error {
	s.fcm[id] = token
	return nil
}

type stubTokens struct{}

func (stubTokens) NewJWT(u models.User) (string, error) {
	return "token-for-" + u.Email, nil
}

type stubResetTokens struct {
	saved map[string]int
	ttl   time.Duration
}

func (s *stubResetTokens) Save(_ context.Context, token string, userID int, ttl time.Duration) error {
	if s.saved == nil {
		s.saved = map[string]int{}
	}
	s.saved[token] = userID
	s.ttl = ttl
	return nil
}

func (s *stubResetTokens) Consume(_ context.Context, token string) (int, error) {
	id, ok := s.saved[token]
	if !ok {
		return 0, models.ErrInvalidResetToken
	}
	delete(s.saved, token)
	return id, nil
}

type stubProviders struct {
	byID     map[int]models.ServiceProvider
	all      []models.ServiceProvider
	lastList models.ProviderFilter
	updated  repositories.Fields
}

func newStubProviders(ps ...models.ServiceProvider) *stubProviders {
	s := &stubProviders{byID: map[int]models.ServiceProvider{}, all: ps}
	for _, p := range ps {
		s.byID[p.ID] = p
	}
	return s
}

func (s *stubProviders) GetByID(_ context.Context, id int) (models.ServiceProvider, error) {
	p, ok := s.byID[id]
	if !ok {
		return models.ServiceProvider{}, models.ErrNoRecord
	}
	return p, nil
}

func (s *stubProviders) GetByUserID(_ context.Context, userID int) (models.ServiceProvider, error) {
	for _, p := range s.byID {
		if p.UserID == userID {
			return p, nil
		}
	}
	return models.ServiceProvider{}, models.ErrNoRecord
}

func (s *stubProviders) List(_ context.Context, f models.ProviderFilter) ([]models.ServiceProvider, int, error) {
	s.lastList = f
	return s.all, len(s.all), nil
}

func (s *stubProviders) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.ServiceProvider, error) {
	s.updated = fields
	return s.byID[id], nil
}

type sentNotification struct {
	UserID int
	Kind   string
	Data   map[string]interface{}
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (s *stubNotifier) Notify(_ context.Context, userID int, kind, _, _ string, data map[string]interface{}) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentNotification{UserID: userID, Kind: kind, Data: data})
	return models.Notification{ID: len(s.sent), UserID: userID, Type: kind}, nil
}

func intPtr(v int) *int { return &v }

func sptr(v string) *string { return &v }
