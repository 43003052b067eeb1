package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
)

var journeyCols = []string{"id", "user_id", "journey_name", "total_destinations", "start_date", "end_date",
	"travelers", "budget", "total_cost", "status", "created_at", "updated_at"}

var destinationCols = []string{"id", "journey_id", "destination_order", "country", "region", "district",
	"sublocation", "is_starting_point", "is_ending_point", "created_at"}

func journeyInput() (models.Journey, []models.DestinationInput) {
	name := "Southern Highlands"
	return models.Journey{UserID: 5, JourneyName: &name, Travelers: 2},
		[]models.DestinationInput{
			{Country: "Tanzania", Region: "Mbeya", District: "Mbeya City"},
			{Country: "Tanzania", Region: "Iringa"},
			{Country: "Tanzania", Region: "Njombe"},
		}
}

func TestJourneyCreateCommitsAllDestinations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO multi_trip_journeys")).
		WillReturnRows(sqlmock.NewRows(journeyCols).
			AddRow(11, 5, "Southern Highlands", 3, nil, nil, 2, nil, 0, "draft", now, now))
	for i := 0; i < 3; i++ {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO multi_trip_destinations")).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM multi_trip_destinations WHERE (journey_id = $1) ORDER BY destination_order")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows(destinationCols).
			AddRow(1, 11, 1, "Tanzania", "Mbeya", "Mbeya City", nil, true, false, now).
			AddRow(2, 11, 2, "Tanzania", "Iringa", nil, nil, false, false, now).
			AddRow(3, 11, 3, "Tanzania", "Njombe", nil, nil, false, true, now))
	mock.ExpectCommit()

	repo := JourneyRepository{DB: db}
	j, dests := journeyInput()
	created, err := repo.Create(context.Background(), j, dests)
	require.NoError(t, err)

	assert.Equal(t, 11, created.ID)
	assert.Equal(t, models.JourneyDraft, created.Status)
	assert.Equal(t, 3, created.TotalDestinations)
	require.Len(t, created.Destinations, 3)
	assert.True(t, created.Destinations[0].IsStartingPoint)
	assert.True(t, created.Destinations[2].IsEndingPoint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJourneyCreateRollsBackOnDestinationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO multi_trip_journeys")).
		WillReturnRows(sqlmock.NewRows(journeyCols).
			AddRow(12, 5, "Southern Highlands", 2, nil, nil, 1, nil, 0, "draft", now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO multi_trip_destinations")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO multi_trip_destinations")).
		WillReturnError(errors.New("value too long for type character varying(100)"))
	mock.ExpectRollback()

	repo := JourneyRepository{DB: db}
	_, dests := journeyInput()
	_, err = repo.Create(context.Background(), models.Journey{UserID: 5}, dests[:2])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert destination")
	assert.Contains(t, err.Error(), "value too long")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJourneyCreateDestinationBounds(t *testing.T) {
	repo := JourneyRepository{}
	one := []models.DestinationInput{{Region: "Arusha"}}
	five := make([]models.DestinationInput, 5)

	_, err := repo.Create(context.Background(), models.Journey{UserID: 1}, one)
	assert.ErrorIs(t, err, models.ErrDestinationCount)
	_, err = repo.Create(context.Background(), models.Journey{UserID: 1}, five)
	assert.ErrorIs(t, err, models.ErrDestinationCount)
}

func TestJourneyRemoveServiceUnknownJourney(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM multi_trip_journeys WHERE id = $1 AND user_id = $2 FOR UPDATE")).
		WithArgs(99, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	repo := JourneyRepository{DB: db}
	_, err = repo.RemoveService(context.Background(), 99, 5, 3)
	assert.ErrorIs(t, err, models.ErrJourneyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
