package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
)

type stubReviews struct {
	byID     map[int]models.Review
	reviewed map[int]bool
	created  *models.Review
	deleted  *models.Review
}

func (s *stubReviews) GetByID(_ context.Context, id int) (models.Review, error) {
	rv, ok := s.byID[id]
	if !ok {
		return models.Review{}, models.ErrNoRecord
	}
	return rv, nil
}

func (s *stubReviews) ListByService(context.Context, int) ([]models.Review, error)  { return nil, nil }
func (s *stubReviews) ListByProvider(context.Context, int) ([]models.Review, error) { return nil, nil }
func (s *stubReviews) ListByTraveler(context.Context, int) ([]models.Review, error) { return nil, nil }

func (s *stubReviews) ExistsForBooking(_ context.Context, bookingID int) (bool, error) {
	return s.reviewed[bookingID], nil
}

func (s *stubReviews) Create(_ context.Context, rv models.Review) (models.Review, error) {
	rv.ID = 11
	s.created = &rv
	return rv, nil
}

func (s *stubReviews) Update(_ context.Context, id, rating int, comment string) (models.Review, error) {
	rv := s.byID[id]
	rv.Rating, rv.Comment = rating, comment
	return rv, nil
}

func (s *stubReviews) Delete(_ context.Context, rv models.Review) error {
	s.deleted = &rv
	return nil
}

func newReviewFixture() (*ReviewService, *stubReviews, *stubNotifier) {
	reviews := &stubReviews{
		byID:     map[int]models.Review{3: {ID: 3, TravelerID: 20, ProviderID: 9, Rating: 4}},
		reviewed: map[int]bool{2: true},
	}
	bookings := &stubBookings{byID: map[int]models.Booking{
		1: {ID: 1, TravelerID: 20, ServiceID: 4, ProviderID: 9, Status: models.BookingCompleted, ServiceTitle: "Zanzibar dive"},
		2: {ID: 2, TravelerID: 20, ServiceID: 4, ProviderID: 9, Status: models.BookingCompleted},
		5: {ID: 5, TravelerID: 20, ServiceID: 4, ProviderID: 9, Status: models.BookingConfirmed},
	}}
	notifier := &stubNotifier{}
	svc := &ReviewService{
		ReviewsRepo:  reviews,
		BookingRepo:  bookings,
		ProviderRepo: newStubProviders(models.ServiceProvider{ID: 9, UserID: 30}),
		Notifier:     notifier,
	}
	return svc, reviews, notifier
}

func TestReviewCreate(t *testing.T) {
	svc, reviews, notifier := newReviewFixture()

	rv, err := svc.Create(context.Background(), 20, models.ReviewRequest{BookingID: 1, Rating: 5, Comment: " Great reef "})
	require.NoError(t, err)
	assert.Equal(t, 11, rv.ID)
	require.NotNil(t, reviews.created)
	assert.Equal(t, 9, reviews.created.ProviderID)
	assert.Equal(t, 4, reviews.created.ServiceID)
	assert.Equal(t, "Great reef", reviews.created.Comment)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 30, notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationNewReview, notifier.sent[0].Kind)
}

func TestReviewCreateRejects(t *testing.T) {
	cases := []struct {
		name   string
		userID int
		req    models.ReviewRequest
		want   error
	}{
		{"missing booking", 20, models.ReviewRequest{BookingID: 99, Rating: 5}, models.ErrBookingNotFound},
		{"someone else's booking", 21, models.ReviewRequest{BookingID: 1, Rating: 5}, models.ErrBookingNotFound},
		{"not completed", 20, models.ReviewRequest{BookingID: 5, Rating: 5}, models.ErrBookingNotComplete},
		{"already reviewed", 20, models.ReviewRequest{BookingID: 2, Rating: 5}, models.ErrAlreadyReviewed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, reviews, notifier := newReviewFixture()
			_, err := svc.Create(context.Background(), tc.userID, tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, reviews.created)
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestReviewUpdateAndDeleteByAuthorOnly(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _ := newReviewFixture()

	_, err := svc.Update(ctx, 21, 3, models.ReviewUpdateRequest{Rating: 1})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Update(ctx, 20, 404, models.ReviewUpdateRequest{Rating: 1})
	assert.ErrorIs(t, err, models.ErrReviewNotFound)

	rv, err := svc.Update(ctx, 20, 3, models.ReviewUpdateRequest{Rating: 2, Comment: "meh "})
	require.NoError(t, err)
	assert.Equal(t, 2, rv.Rating)
	assert.Equal(t, "meh", rv.Comment)

	assert.ErrorIs(t, svc.Delete(ctx, 21, 3), models.ErrForbidden)
	assert.Nil(t, reviews.deleted)
	require.NoError(t, svc.Delete(ctx, 20, 3))
	require.NotNil(t, reviews.deleted)
	assert.Equal(t, 9, reviews.deleted.ProviderID)
}
