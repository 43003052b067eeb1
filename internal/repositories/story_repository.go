package repositories

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"isafari/internal/models"
)

var storiesTable = newTable("traveler_stories",
	"id", "user_id", "title", "story", "location", "duration", "highlights", "media",
	"is_approved", "is_active", "is_featured", "likes_count", "comments_count",
	"created_at", "updated_at",
)

var commentsTable = newTable("story_comments",
	"id", "story_id", "user_id", "comment", "created_at", "updated_at",
)

const latestCommentsLimit = 20

type StoryRepository struct {
	DB *sql.DB
}

func storyDest(s *models.TravelerStory) []interface{} {
	return []interface{}{&s.ID, &s.UserID, &s.Title, &s.Story, &s.Location, &s.Duration,
		pq.Array(&s.Highlights), (*[]byte)(&s.Media), &s.IsApproved, &s.IsActive, &s.IsFeatured,
		&s.LikesCount, &s.CommentsCount, &s.CreatedAt, &s.UpdatedAt}
}

func scanStory(row scanner) (models.TravelerStory, error) {
	var s models.TravelerStory
	err := row.Scan(storyDest(&s)...)
	return s, err
}

func scanStoryWithAuthor(row scanner) (models.TravelerStory, error) {
	var s models.TravelerStory
	err := row.Scan(append(storyDest(&s), &s.FirstName, &s.LastName, &s.AvatarURL)...)
	return s, err
}

func scanComment(row scanner) (models.StoryComment, error) {
	var c models.StoryComment
	err := row.Scan(&c.ID, &c.StoryID, &c.UserID, &c.Comment, &c.CreatedAt, &c.UpdatedAt,
		&c.FirstName, &c.LastName, &c.AvatarURL)
	return c, err
}

func selectStoriesWithAuthor() sq.SelectBuilder {
	cols := append(qualify("ts", storiesTable.columns), "u.first_name", "u.last_name", "u.avatar_url")
	return psql.Select(cols...).From("traveler_stories ts").LeftJoin("users u ON u.id = ts.user_id")
}

var publishedStory = sq.Eq{"ts.is_approved": true, "ts.is_active": true}

// ListPublished returns one page of approved, active stories and their total.
func (r *StoryRepository) ListPublished(ctx context.Context, page, limit int) ([]models.TravelerStory, int, error) {
	page, limit = models.NormalizePage(page, limit)
	total, err := countRows(ctx, r.DB, psql.Select("COUNT(*)").From("traveler_stories ts").Where(publishedStory))
	if err != nil {
		return nil, 0, err
	}
	stories, err := queryAll(ctx, r.DB, selectStoriesWithAuthor().Where(publishedStory).
		OrderBy("ts.created_at DESC").
		Limit(uint64(limit)).Offset(uint64(models.Offset(page, limit))), scanStoryWithAuthor)
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func (r *StoryRepository) Featured(ctx context.Context, limit int) ([]models.TravelerStory, error) {
	return queryAll(ctx, r.DB, selectStoriesWithAuthor().Where(publishedStory).Where(sq.Eq{"ts.is_featured": true}).
		OrderBy("ts.likes_count DESC", "ts.created_at DESC").Limit(uint64(limit)), scanStoryWithAuthor)
}

func (r *StoryRepository) ListByUser(ctx context.Context, userID int) ([]models.TravelerStory, error) {
	return queryAll(ctx, r.DB, selectStoriesWithAuthor().Where(sq.Eq{"ts.user_id": userID}).
		OrderBy("ts.created_at DESC"), scanStoryWithAuthor)
}

// ListForModeration lists stories by approval state, newest first.
func (r *StoryRepository) ListForModeration(ctx context.Context, approved bool) ([]models.TravelerStory, error) {
	return queryAll(ctx, r.DB, selectStoriesWithAuthor().Where(sq.Eq{"ts.is_approved": approved}).
		OrderBy("ts.created_at DESC"), scanStoryWithAuthor)
}

func (r *StoryRepository) GetByID(ctx context.Context, id int) (models.TravelerStory, error) {
	return queryOne(ctx, r.DB, selectStoriesWithAuthor().Where(sq.Eq{"ts.id": id}), scanStoryWithAuthor)
}

func (r *StoryRepository) LatestComments(ctx context.Context, storyID int) ([]models.StoryComment, error) {
	cols := append(qualify("c", commentsTable.columns), "u.first_name", "u.last_name", "u.avatar_url")
	b := psql.Select(cols...).From("story_comments c").LeftJoin("users u ON u.id = c.user_id").
		Where(sq.Eq{"c.story_id": storyID}).OrderBy("c.created_at DESC").Limit(latestCommentsLimit)
	return queryAll(ctx, r.DB, b, scanComment)
}

// Create stores a new story awaiting moderation.
func (r *StoryRepository) Create(ctx context.Context, s models.TravelerStory) (models.TravelerStory, error) {
	var media interface{}
	if len(s.Media) > 0 {
		media = string(s.Media)
	}
	b, err := storiesTable.insert(Fields{
		"user_id":     s.UserID,
		"title":       s.Title,
		"story":       s.Story,
		"location":    s.Location,
		"duration":    nullIfBlankPtr(s.Duration),
		"highlights":  pq.Array(nonNil(s.Highlights)),
		"media":       media,
		"is_approved": false,
		"is_active":   false,
	})
	if err != nil {
		return models.TravelerStory{}, err
	}
	return queryOne(ctx, r.DB, b, scanStory)
}

func (r *StoryRepository) UpdateByID(ctx context.Context, id int, fields Fields) (models.TravelerStory, error) {
	b, err := storiesTable.updateByID(id, fields)
	if err != nil {
		return models.TravelerStory{}, err
	}
	return queryOne(ctx, r.DB, b, scanStory)
}

func (r *StoryRepository) DeleteByID(ctx context.Context, id int) error {
	return execOne(ctx, r.DB, psql.Delete("traveler_stories").Where(sq.Eq{"id": id}))
}

// Like records the like and bumps the counter. A second like by the same
// user yields models.ErrAlreadyLiked.
func (r *StoryRepository) Like(ctx context.Context, storyID, userID int) (int, error) {
	var likes int
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO story_likes (story_id, user_id) VALUES ($1, $2) ON CONFLICT (story_id, user_id) DO NOTHING`,
			storyID, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrAlreadyLiked
		}
		return tx.QueryRowContext(ctx,
			`UPDATE traveler_stories SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count`,
			storyID).Scan(&likes)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrStoryNotFound
	}
	return likes, err
}

func (r *StoryRepository) Unlike(ctx context.Context, storyID, userID int) (int, error) {
	var likes int
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := execOne(ctx, tx, psql.Delete("story_likes").Where(sq.Eq{"story_id": storyID, "user_id": userID})); err != nil {
			if errors.Is(err, models.ErrNoRecord) {
				return models.ErrNotLiked
			}
			return err
		}
		return tx.QueryRowContext(ctx,
			`UPDATE traveler_stories SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1 RETURNING likes_count`,
			storyID).Scan(&likes)
	})
	return likes, err
}

// AddComment stores the comment and bumps the story's comment counter.
func (r *StoryRepository) AddComment(ctx context.Context, c models.StoryComment) (models.StoryComment, error) {
	var created models.StoryComment
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO story_comments (story_id, user_id, comment) VALUES ($1, $2, $3)
			 RETURNING id, story_id, user_id, comment, created_at, updated_at`,
			c.StoryID, c.UserID, c.Comment).
			Scan(&created.ID, &created.StoryID, &created.UserID, &created.Comment, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}
		return execOne(ctx, tx, psql.Update("traveler_stories").
			Set("comments_count", sq.Expr("comments_count + 1")).Where(sq.Eq{"id": c.StoryID}))
	})
	return created, err
}
