package main

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Setenv("DATABASE_URL", "postgres://ctl-test")
	prev := openDB
	openDB = func(_ context.Context, url string) (*sql.DB, error) {
		assert.Equal(t, "postgres://ctl-test", url)
		return db, nil
	}
	t.Cleanup(func() { openDB = prev })
	return mock
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs(append([]string{"--config", ""}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLocationsAudit(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("SELECT id, title, region, district, area, problem FROM").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "region", "district", "area", "problem"}).
			AddRow(12, "Serengeti balloon", "Arusha ", "", "", "untrimmed location"))
	mock.ExpectClose()

	out, err := execute(t, "locations", "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "Serengeti balloon")
	assert.Contains(t, out, `"Arusha "`)
	assert.Contains(t, out, "1 issue(s)")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationsAuditClean(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("SELECT id, title, region, district, area, problem FROM").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "region", "district", "area", "problem"}))
	mock.ExpectClose()

	out, err := execute(t, "locations", "audit")
	require.NoError(t, err)
	assert.Equal(t, "no location issues found\n", out)
}

func TestLocationsNormalizeDryRun(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectBegin()
	for i := 0; i < 9; i++ {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}
	mock.ExpectCommit()
	mock.ExpectClose()

	out, err := execute(t, "locations", "normalize", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "services: would update 4 value(s)")
	assert.Contains(t, out, "service_providers: would update 5 value(s)")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := execute(t, "migrate", "status")
	assert.EqualError(t, err, "database url is required")
}
