package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

type stubStories struct {
	byID       map[int]models.TravelerStory
	created    *models.TravelerStory
	fields     repositories.Fields
	moderation []bool
	comment    *models.StoryComment
	likes      []int
}

func (s *stubStories) ListPublished(context.Context, int, int) ([]models.TravelerStory, int, error) {
	return nil, 0, nil
}

func (s *stubStories) Featured(context.Context, int) ([]models.TravelerStory, error) { return nil, nil }

func (s *stubStories) ListByUser(context.Context, int) ([]models.TravelerStory, error) {
	return nil, nil
}

func (s *stubStories) ListForModeration(_ context.Context, approved bool) ([]models.TravelerStory, error) {
	s.moderation = append(s.moderation, approved)
	return nil, nil
}

func (s *stubStories) GetByID(_ context.Context, id int) (models.TravelerStory, error) {
	st, ok := s.byID[id]
	if !ok {
		return models.TravelerStory{}, models.ErrNoRecord
	}
	return st, nil
}

func (s *stubStories) LatestComments(context.Context, int) ([]models.StoryComment, error) {
	return nil, nil
}

func (s *stubStories) Create(_ context.Context, st models.TravelerStory) (models.TravelerStory, error) {
	s.created = &st
	return st, nil
}

func (s *stubStories) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.TravelerStory, error) {
	st, ok := s.byID[id]
	if !ok {
		return models.TravelerStory{}, models.ErrNoRecord
	}
	s.fields = fields
	return st, nil
}

func (s *stubStories) DeleteByID(context.Context, int) error { return models.ErrNoRecord }

func (s *stubStories) Like(_ context.Context, storyID, _ int) (int, error) {
	s.likes = append(s.likes, storyID)
	return len(s.likes), nil
}

func (s *stubStories) Unlike(context.Context, int, int) (int, error) { return 0, nil }

func (s *stubStories) AddComment(_ context.Context, c models.StoryComment) (models.StoryComment, error) {
	s.comment = &c
	return c, nil
}

func newStoryFixture() (*StoryService, *stubStories, *stubNotifier) {
	repo := &stubStories{byID: map[int]models.TravelerStory{
		1: {ID: 1, UserID: 20, Title: "Sunrise on Kibo", IsApproved: true, IsActive: true},
		2: {ID: 2, UserID: 20, Title: "Draft"},
	}}
	notifier := &stubNotifier{}
	return &StoryService{StoryRepo: repo, Notifier: notifier}, repo, notifier
}

func TestStoryGetVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newStoryFixture()

	st, err := svc.Get(ctx, 1, 0)
	require.NoError(t, err)
	assert.NotNil(t, st.Comments)

	_, err = svc.Get(ctx, 2, 0)
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
	_, err = svc.Get(ctx, 2, 21)
	assert.ErrorIs(t, err, models.ErrStoryNotFound)

	st, err = svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, "Draft", st.Title)
}

func TestStoryCreateCleansInput(t *testing.T) {
	svc, repo, _ := newStoryFixture()

	_, err := svc.Create(context.Background(), 20, models.StoryRequest{
		Title:      " Kilwa ruins ",
		Story:      "Old stones.",
		Highlights: []string{"dhow", " ", "ruins "},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Kilwa ruins", repo.created.Title)
	assert.Equal(t, []string{"dhow", "ruins"}, repo.created.Highlights)
	assert.JSONEq(t, "[]", string(repo.created.Media))
	assert.False(t, repo.created.IsApproved)
}

func TestStoryComment(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newStoryFixture()

	_, err := svc.Comment(ctx, 1, 20, "   ")
	assert.ErrorIs(t, err, models.ErrEmptyComment)

	_, err = svc.Comment(ctx, 9, 20, "nice")
	assert.ErrorIs(t, err, models.ErrStoryNotFound)

	_, err = svc.Comment(ctx, 1, 21, " lovely ")
	require.NoError(t, err)
	assert.Equal(t, "lovely", repo.comment.Comment)
}

func TestStoryHiddenFromOthersCannotBeLikedOrCommented(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newStoryFixture()

	_, err := svc.Like(ctx, 2, 21)
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
	_, err = svc.Comment(ctx, 2, 21, "first!")
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
	assert.Empty(t, repo.likes)
	assert.Nil(t, repo.comment)

	count, err := svc.Like(ctx, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	_, err = svc.Comment(ctx, 2, 20, "note to self")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.comment.StoryID)

	count, err = svc.Like(ctx, 1, 21)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []int{2, 1}, repo.likes)
}

func TestStoryModeration(t *testing.T) {
	ctx := context.Background()
	svc, repo, notifier := newStoryFixture()

	_, err := svc.ListForModeration(ctx, "pending")
	require.NoError(t, err)
	_, err = svc.ListForModeration(ctx, "approved")
	require.NoError(t, err)
	_, err = svc.ListForModeration(ctx, "rejected")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
	assert.Equal(t, []bool{false, true}, repo.moderation)

	_, err = svc.Approve(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, repositories.Fields{"is_approved": true, "is_active": true}, repo.fields)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, models.NotificationStoryApproved, notifier.sent[0].Kind)
	assert.Equal(t, 20, notifier.sent[0].UserID)

	_, err = svc.Reject(ctx, 99)
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
	assert.Len(t, notifier.sent, 1)

	assert.ErrorIs(t, svc.Delete(ctx, 1), models.ErrStoryNotFound)
}
