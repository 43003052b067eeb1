package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, region, district, area, problem FROM").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "region", "district", "area", "problem"}).
			AddRow(4, "Stone Town walk", "", "", "", "missing region").
			AddRow(9, "Crater drive", "arusha", "Karatu", "", "region spelled differently elsewhere"))

	repo := &LocationRepository{DB: db}
	issues, err := repo.Audit(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 4, issues[0].ServiceID)
	assert.Equal(t, "missing region", issues[0].Problem)
	assert.Equal(t, "arusha", issues[1].Region)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationNormalizeDryRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, col := range []string{"country", "region", "district", "area"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM services WHERE " + col + " IS NOT NULL")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}
	for _, col := range []string{"country", "region", "district", "area", "ward"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM service_providers WHERE " + col + " IS NOT NULL")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	}
	mock.ExpectCommit()

	repo := &LocationRepository{DB: db}
	changed, err := repo.Normalize(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"services": 4, "service_providers": 10}, changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationNormalizeRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE services SET country = NULLIF(TRIM(country), '')")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE services SET region = NULLIF(TRIM(region), '')")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := &LocationRepository{DB: db}
	_, err = repo.Normalize(context.Background(), false)
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}
