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

func TestStoryLikeIncrementsCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO story_likes (story_id, user_id)")).
		WithArgs(8, 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE traveler_stories SET likes_count = likes_count + 1")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(5))
	mock.ExpectCommit()

	repo := StoryRepository{DB: db}
	likes, err := repo.Like(context.Background(), 8, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoryLikeTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO story_likes")).
		WithArgs(8, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := StoryRepository{DB: db}
	_, err = repo.Like(context.Background(), 8, 3)
	assert.ErrorIs(t, err, models.ErrAlreadyLiked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoryAddCommentBumpsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO story_comments")).
		WithArgs(8, 3, "Stunning crater views").
		WillReturnRows(sqlmock.NewRows([]string{"id", "story_id", "user_id", "comment", "created_at", "updated_at"}).
			AddRow(1, 8, 3, "Stunning crater views", nowForTest(), nowForTest()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE traveler_stories SET comments_count = comments_count + 1 WHERE id = $1")).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := StoryRepository{DB: db}
	c, err := repo.AddComment(context.Background(), models.StoryComment{StoryID: 8, UserID: 3, Comment: "Stunning crater views"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
