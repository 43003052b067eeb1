package services

import (
	"context"
	"encoding/json"
	"fmt"

	"isafari/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
	List(ctx context.Context, userID int, unreadOnly bool, page, limit int) ([]models.Notification, int, int, error)
	MarkRead(ctx context.Context, id, userID int) error
	MarkAllRead(ctx context.Context, userID int) (int64, error)
}

// Broadcaster delivers a payload to the live connections of a user.
type Broadcaster interface {
	SendToUser(userID int, payload interface{})
}

type Pusher interface {
	Push(ctx context.Context, token string, n models.Notification) error
}

type DeviceTokenLookup interface {
	GetByID(ctx context.Context, id int) (models.User, error)
}

type NotificationService struct {
	Repo  NotificationRepository
	Hub   Broadcaster
	Push  Pusher
	Users DeviceTokenLookup
	Log   Logger
}

// Notify stores the notification and fans it out to open websockets and the
// user's device. Delivery failures are logged, only the insert can fail.
func (s *NotificationService) Notify(ctx context.Context, userID int, kind, title, message string, data map[string]interface{}) (models.Notification, error) {
	n := models.Notification{UserID: userID, Type: kind, Title: title, Message: message}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			return models.Notification{}, fmt.Errorf("encode notification data: %w", err)
		}
		n.Data = raw
	}

	created, err := s.Repo.Create(ctx, n)
	if err != nil {
		return models.Notification{}, fmt.Errorf("store notification: %w", err)
	}

	if s.Hub != nil {
		s.Hub.SendToUser(userID, map[string]interface{}{
			"event":        "notification",
			"notification": created,
		})
	}
	s.push(ctx, created)
	return created, nil
}

func (s *NotificationService) push(ctx context.Context, n models.Notification) {
	if s.Push == nil || s.Users == nil {
		return
	}
	log := loggerOrNop(s.Log)
	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil {
		log.Errorf("push notification %d: load user %d: %v", n.ID, n.UserID, err)
		return
	}
	if u.FCMToken == nil || *u.FCMToken == "" {
		return
	}
	if err := s.Push.Push(ctx, *u.FCMToken, n); err != nil {
		log.Errorf("push notification %d to user %d: %v", n.ID, n.UserID, err)
	}
}

func (s *NotificationService) List(ctx context.Context, userID int, unreadOnly bool, page, limit int) (models.NotificationPage, error) {
	page, limit = models.NormalizePage(page, limit)
	items, total, unread, err := s.Repo.List(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return models.NotificationPage{}, err
	}
	if items == nil {
		items = []models.Notification{}
	}
	return models.NotificationPage{
		Notifications: items,
		UnreadCount:   unread,
		Pagination:    models.NewPagination(page, limit, total),
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}
