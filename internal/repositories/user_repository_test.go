package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
)

var userCols = []string{"id", "email", "password", "first_name", "last_name", "phone", "user_type",
	"avatar_url", "is_verified", "is_active", "fcm_token", "created_at", "updated_at"}

func TestUserDeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(13).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &UserRepository{DB: db}
	require.NoError(t, repo.DeleteByID(context.Background(), 12))
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), 13), models.ErrNoRecord)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := nowForTest()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET is_verified = $1 WHERE id = $2 RETURNING id, email")).
		WithArgs(true, 12).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(12, "neema@example.com", nil, "Neema", nil, nil, models.UserTypeTraveler, nil, true, true, nil, now, now))

	repo := &UserRepository{DB: db}
	u, err := repo.UpdateByID(context.Background(), 12, Fields{"is_verified": true})
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}
