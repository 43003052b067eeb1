package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

type adminUsers struct {
	users   map[int]models.User
	fields  repositories.Fields
	deleted []int
}

func (a *adminUsers) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.User, error) {
	u, ok := a.users[id]
	if !ok {
		return models.User{}, models.ErrNoRecord
	}
	a.fields = fields
	if v, ok := fields["is_active"].(bool); ok {
		u.IsActive = v
	}
	if v, ok := fields["is_verified"].(bool); ok {
		u.IsVerified = v
	}
	a.users[id] = u
	return u, nil
}

func (a *adminUsers) DeleteByID(_ context.Context, id int) error {
	if _, ok := a.users[id]; !ok {
		return models.ErrNoRecord
	}
	delete(a.users, id)
	a.deleted = append(a.deleted, id)
	return nil
}

type adminCatalogue struct {
	services  map[int]models.Service
	providers map[int]models.ServiceProvider
	bookings  map[int]models.Booking
}

func (a *adminCatalogue) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.Service, error) {
	svc, ok := a.services[id]
	if !ok {
		return models.Service{}, models.ErrNoRecord
	}
	svc.IsActive = fields["is_active"].(bool)
	a.services[id] = svc
	return svc, nil
}

func (a *adminCatalogue) DeleteByID(_ context.Context, id int) error {
	if _, ok := a.services[id]; !ok {
		return models.ErrNoRecord
	}
	delete(a.services, id)
	return nil
}

type adminProviders struct{ *adminCatalogue }

func (a adminProviders) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.ServiceProvider, error) {
	p, ok := a.providers[id]
	if !ok {
		return models.ServiceProvider{}, models.ErrNoRecord
	}
	p.IsVerified = fields["is_verified"].(bool)
	a.providers[id] = p
	return p, nil
}

func (a *adminCatalogue) UpdateStatus(_ context.Context, id int, status string) (models.Booking, error) {
	b, ok := a.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrNoRecord
	}
	b.Status = status
	a.bookings[id] = b
	return b, nil
}

type reviewPromotions struct {
	byID       map[int]models.ServicePromotion
	listStatus string
	approvedBy int
	approvedAt time.Time
	reason     string
}

func (r *reviewPromotions) List(_ context.Context, status string) ([]models.ServicePromotion, error) {
	r.listStatus = status
	var out []models.ServicePromotion
	for _, p := range r.byID {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *reviewPromotions) Stats(context.Context) (models.PromotionStats, error) {
	var s models.PromotionStats
	for _, p := range r.byID {
		s.Total++
		switch p.Status {
		case models.PromotionPending:
			s.Pending++
		case models.PromotionApproved:
			s.Approved++
		case models.PromotionRejected:
			s.Rejected++
		}
	}
	return s, nil
}

func (r *reviewPromotions) review(id int, status string) (models.ServicePromotion, error) {
	p, ok := r.byID[id]
	if !ok {
		return models.ServicePromotion{}, models.ErrNoRecord
	}
	if p.Status != models.PromotionPending {
		return models.ServicePromotion{}, models.ErrPromotionReviewed
	}
	p.Status = status
	r.byID[id] = p
	return p, nil
}

func (r *reviewPromotions) Approve(_ context.Context, id, adminID int, now time.Time) (models.ServicePromotion, error) {
	r.approvedBy, r.approvedAt = adminID, now
	p, err := r.review(id, models.PromotionApproved)
	p.ExpiresAt = now.AddDate(0, 0, p.DurationDays)
	return p, err
}

func (r *reviewPromotions) Reject(_ context.Context, id int, reason string) (models.ServicePromotion, error) {
	r.reason = reason
	return r.review(id, models.PromotionRejected)
}

func newAdminFixture() (*AdminService, *adminUsers, *adminCatalogue, *reviewPromotions, *stubNotifier) {
	users := &adminUsers{users: map[int]models.User{
		1:  {ID: 1, Email: "admin@example.com", UserType: models.UserTypeAdmin, IsActive: true},
		12: {ID: 12, Email: "neema@example.com", UserType: models.UserTypeTraveler, IsActive: true},
	}}
	cat := &adminCatalogue{
		services:  map[int]models.Service{4: {ID: 4, Title: "Ngorongoro day trip"}},
		providers: map[int]models.ServiceProvider{9: {ID: 9, UserID: 30, BusinessName: "Crater Tours"}},
		bookings:  map[int]models.Booking{20: {ID: 20, TravelerID: 12, Status: models.BookingConfirmed}},
	}
	promos := &reviewPromotions{byID: map[int]models.ServicePromotion{
		7: {ID: 7, ServiceID: 4, PromotionType: "featured", DurationDays: 30, Status: models.PromotionPending,
			ServiceTitle: "Ngorongoro day trip", ProviderUserID: 30},
		8: {ID: 8, ServiceID: 4, PromotionType: "trending", DurationDays: 7, Status: models.PromotionApproved, ProviderUserID: 30},
	}}
	notifier := &stubNotifier{}
	svc := &AdminService{
		UserRepo:      users,
		ServiceRepo:   cat,
		ProviderRepo:  adminProviders{cat},
		BookingRepo:   cat,
		PromotionRepo: promos,
		Notifier:      notifier,
	}
	return svc, users, cat, promos, notifier
}

func TestAdminUserModeration(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _, _ := newAdminFixture()

	u, err := svc.VerifyUser(ctx, 12)
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	assert.Equal(t, repositories.Fields{"is_verified": true}, users.fields)

	u, err = svc.SuspendUser(ctx, 12)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	u, err = svc.SetUserActive(ctx, 12, true)
	require.NoError(t, err)
	assert.True(t, u.IsActive)

	_, err = svc.VerifyUser(ctx, 99)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestAdminDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _, _ := newAdminFixture()

	assert.ErrorIs(t, svc.DeleteUser(ctx, 1, 1), models.ErrForbidden)
	require.NoError(t, svc.DeleteUser(ctx, 1, 12))
	assert.Equal(t, []int{12}, users.deleted)
	assert.ErrorIs(t, svc.DeleteUser(ctx, 1, 12), models.ErrUserNotFound)
}

func TestAdminServiceModeration(t *testing.T) {
	ctx := context.Background()
	svc, _, cat, _, _ := newAdminFixture()

	s, err := svc.ApproveService(ctx, 4)
	require.NoError(t, err)
	assert.True(t, s.IsActive)

	s, err = svc.RejectService(ctx, 4)
	require.NoError(t, err)
	assert.False(t, s.IsActive)

	require.NoError(t, svc.DeleteService(ctx, 4))
	assert.Empty(t, cat.services)
	assert.ErrorIs(t, svc.DeleteService(ctx, 4), models.ErrServiceNotFound)
	_, err = svc.ApproveService(ctx, 4)
	assert.ErrorIs(t, err, models.ErrServiceNotFound)
}

func TestAdminProviderBadge(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAdminFixture()

	p, err := svc.SetProviderBadge(ctx, 9, true)
	require.NoError(t, err)
	assert.True(t, p.IsVerified)

	p, err = svc.SetProviderBadge(ctx, 9, false)
	require.NoError(t, err)
	assert.False(t, p.IsVerified)

	_, err = svc.SetProviderBadge(ctx, 404, true)
	assert.ErrorIs(t, err, models.ErrProviderNotFound)
}

func TestAdminCancelBookingNotifiesTraveler(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, notifier := newAdminFixture()

	b, err := svc.CancelBooking(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, b.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 12, notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationBookingStatus, notifier.sent[0].Kind)

	_, err = svc.CancelBooking(ctx, 21)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func TestAdminPromotionReview(t *testing.T) {
	ctx := context.Background()
	svc, _, _, promos, notifier := newAdminFixture()

	review, err := svc.Promotions(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, review.Promotions, 1)
	assert.Equal(t, models.PromotionStats{Total: 2, Pending: 1, Approved: 1}, review.Stats)

	_, err = svc.Promotions(ctx, "live")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	before := time.Now().UTC()
	p, err := svc.ApprovePromotion(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionApproved, p.Status)
	assert.Equal(t, 1, promos.approvedBy)
	assert.WithinDuration(t, before, promos.approvedAt, time.Minute)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 30, notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationPromotion, notifier.sent[0].Kind)

	_, err = svc.ApprovePromotion(ctx, 1, 7)
	assert.ErrorIs(t, err, models.ErrPromotionReviewed)
	_, err = svc.ApprovePromotion(ctx, 1, 404)
	assert.ErrorIs(t, err, models.ErrPromotionNotFound)
}

func TestAdminRejectPromotionDefaultsReason(t *testing.T) {
	ctx := context.Background()
	svc, _, _, promos, notifier := newAdminFixture()

	p, err := svc.RejectPromotion(ctx, 7, "  ")
	require.NoError(t, err)
	assert.Equal(t, models.PromotionRejected, p.Status)
	assert.Equal(t, "No reason provided", promos.reason)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, models.PromotionRejected, notifier.sent[0].Data["status"])

	_, err = svc.RejectPromotion(ctx, 404, "spam")
	assert.ErrorIs(t, err, models.ErrPromotionNotFound)
}
