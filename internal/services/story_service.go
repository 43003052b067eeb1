package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

const defaultFeaturedStories = 3

type StoryRepository interface {
	ListPublished(ctx context.Context, page, limit int) ([]models.TravelerStory, int, error)
	Featured(ctx context.Context, limit int) ([]models.TravelerStory, error)
	ListByUser(ctx context.Context, userID int) ([]models.TravelerStory, error)
	ListForModeration(ctx context.Context, approved bool) ([]models.TravelerStory, error)
	GetByID(ctx context.Context, id int) (models.TravelerStory, error)
	LatestComments(ctx context.Context, storyID int) ([]models.StoryComment, error)
	Create(ctx context.Context, s models.TravelerStory) (models.TravelerStory, error)
	UpdateByID(ctx context.Context, id int, fields repositories.Fields) (models.TravelerStory, error)
	DeleteByID(ctx context.Context, id int) error
	Like(ctx context.Context, storyID, userID int) (int, error)
	Unlike(ctx context.Context, storyID, userID int) (int, error)
	AddComment(ctx context.Context, c models.StoryComment) (models.StoryComment, error)
}

type StoryService struct {
	StoryRepo StoryRepository
	Notifier  Notifier
	Log       Logger
}

func (s *StoryService) List(ctx context.Context, page, limit int) (models.StoryPage, error) {
	page, limit = models.NormalizePage(page, limit)
	items, total, err := s.StoryRepo.ListPublished(ctx, page, limit)
	if err != nil {
		return models.StoryPage{}, err
	}
	if items == nil {
		items = []models.TravelerStory{}
	}
	return models.StoryPage{Stories: items, Pagination: models.NewPagination(page, limit, total)}, nil
}

func (s *StoryService) Featured(ctx context.Context, limit int) ([]models.TravelerStory, error) {
	if limit <= 0 {
		limit = defaultFeaturedStories
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}
	return s.StoryRepo.Featured(ctx, limit)
}

// Get returns a published story with its latest comments. Unpublished
// stories are only visible to their author.
func (s *StoryService) Get(ctx context.Context, id, viewerID int) (models.TravelerStory, error) {
	st, err := s.visible(ctx, id, viewerID)
	if err != nil {
		return models.TravelerStory{}, err
	}
	comments, err := s.StoryRepo.LatestComments(ctx, id)
	if err != nil {
		return models.TravelerStory{}, err
	}
	if comments == nil {
		comments = []models.StoryComment{}
	}
	st.Comments = comments
	return st, nil
}

func (s *StoryService) visible(ctx context.Context, id, viewerID int) (models.TravelerStory, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return models.TravelerStory{}, err
	}
	if !(st.IsApproved && st.IsActive) && st.UserID != viewerID {
		return models.TravelerStory{}, models.ErrStoryNotFound
	}
	return st, nil
}

func (s *StoryService) Mine(ctx context.Context, userID int) ([]models.TravelerStory, error) {
	return s.StoryRepo.ListByUser(ctx, userID)
}

// Create stores the story hidden until an admin approves it.
func (s *StoryService) Create(ctx context.Context, userID int, req models.StoryRequest) (models.TravelerStory, error) {
	highlights := make([]string, 0, len(req.Highlights))
	for _, h := range req.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			highlights = append(highlights, h)
		}
	}
	media := req.Media
	if len(media) == 0 {
		media = json.RawMessage("[]")
	}
	return s.StoryRepo.Create(ctx, models.TravelerStory{
		UserID:     userID,
		Title:      strings.TrimSpace(req.Title),
		Story:      strings.TrimSpace(req.Story),
		Location:   strings.TrimSpace(req.Location),
		Duration:   optionalStr(req.Duration),
		Highlights: highlights,
		Media:      media,
	})
}

func (s *StoryService) Like(ctx context.Context, storyID, userID int) (int, error) {
	if _, err := s.visible(ctx, storyID, userID); err != nil {
		return 0, err
	}
	return s.StoryRepo.Like(ctx, storyID, userID)
}

func (s *StoryService) Unlike(ctx context.Context, storyID, userID int) (int, error) {
	return s.StoryRepo.Unlike(ctx, storyID, userID)
}

func (s *StoryService) Comment(ctx context.Context, storyID, userID int, text string) (models.StoryComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.StoryComment{}, models.ErrEmptyComment
	}
	if _, err := s.visible(ctx, storyID, userID); err != nil {
		return models.StoryComment{}, err
	}
	return s.StoryRepo.AddComment(ctx, models.StoryComment{StoryID: storyID, UserID: userID, Comment: text})
}

// ListForModeration lists stories by approval state: "pending" or "approved".
func (s *StoryService) ListForModeration(ctx context.Context, status string) ([]models.TravelerStory, error) {
	switch status {
	case "", "pending":
		return s.StoryRepo.ListForModeration(ctx, false)
	case "approved":
		return s.StoryRepo.ListForModeration(ctx, true)
	default:
		return nil, models.ErrInvalidStatus
	}
}

func (s *StoryService) Approve(ctx context.Context, id int) (models.TravelerStory, error) {
	st, err := s.update(ctx, id, repositories.Fields{"is_approved": true, "is_active": true})
	if err != nil {
		return models.TravelerStory{}, err
	}
	s.notifyAuthor(ctx, st, models.NotificationStoryApproved, "Story published",
		fmt.Sprintf("Your story %q is now live.", st.Title))
	return st, nil
}

func (s *StoryService) Reject(ctx context.Context, id int) (models.TravelerStory, error) {
	st, err := s.update(ctx, id, repositories.Fields{"is_approved": false, "is_active": false, "is_featured": false})
	if err != nil {
		return models.TravelerStory{}, err
	}
	s.notifyAuthor(ctx, st, models.NotificationStoryRejected, "Story not approved",
		fmt.Sprintf("Your story %q was not approved.", st.Title))
	return st, nil
}

func (s *StoryService) Feature(ctx context.Context, id int, featured bool) (models.TravelerStory, error) {
	return s.update(ctx, id, repositories.Fields{"is_featured": featured})
}

func (s *StoryService) Delete(ctx context.Context, id int) error {
	err := s.StoryRepo.DeleteByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ErrStoryNotFound
	}
	return err
}

func (s *StoryService) update(ctx context.Context, id int, fields repositories.Fields) (models.TravelerStory, error) {
	st, err := s.StoryRepo.UpdateByID(ctx, id, fields)
	if errors.Is(err, models.ErrNoRecord) {
		return models.TravelerStory{}, models.ErrStoryNotFound
	}
	return st, err
}

func (s *StoryService) notifyAuthor(ctx context.Context, st models.TravelerStory, kind, title, message string) {
	if s.Notifier == nil {
		return
	}
	if _, err := s.Notifier.Notify(ctx, st.UserID, kind, title, message,
		map[string]interface{}{"story_id": st.ID}); err != nil {
		loggerOrNop(s.Log).Errorf("story %d: notify author: %v", st.ID, err)
	}
}

func (s *StoryService) load(ctx context.Context, id int) (models.TravelerStory, error) {
	st, err := s.StoryRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		return models.TravelerStory{}, models.ErrStoryNotFound
	}
	return st, err
}
