package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
)

var bookingCols = []string{"id", "traveler_id", "service_id", "provider_id", "booking_date", "start_time",
	"end_time", "participants", "total_amount", "status", "payment_status", "special_requests",
	"created_at", "updated_at"}

func TestBookingCreateForServicePricesFromService(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price, provider_id FROM services WHERE id = $1 AND is_active = TRUE FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"price", "provider_id"}).AddRow(45000.0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(date, nil, 3, "pending", 2, 4, nil, nil, "pending", 135000.0, 9).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(1, 9, 4, 2, date, nil, nil, 3, 135000.0, "pending", "pending", nil, now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE services SET bookings_count = bookings_count + 1")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	b, err := repo.CreateForService(context.Background(), NewBooking{
		TravelerID: 9, ServiceID: 4, BookingDate: date, Participants: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 135000.0, b.TotalAmount)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateForMissingService(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price, provider_id FROM services")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"price", "provider_id"}))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	_, err = repo.CreateForService(context.Background(), NewBooking{TravelerID: 1, ServiceID: 404, BookingDate: time.Now()})
	assert.ErrorIs(t, err, models.ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingTotal(t *testing.T) {
	cases := []struct {
		name         string
		price        float64
		participants int
		want         float64
	}{
		{"single", 25000, 1, 25000},
		{"group", 12500.5, 4, 50002},
		{"free", 0, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, BookingTotal(tc.price, tc.participants), 0.001)
		})
	}
}
