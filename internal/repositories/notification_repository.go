package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"isafari/internal/models"
)

var notificationsTable = newTable("notifications",
	"id", "user_id", "type", "title", "message", "data", "is_read", "created_at",
)

type NotificationRepository struct {
	DB *sql.DB
}

func scanNotification(row scanner) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, (*[]byte)(&n.Data), &n.IsRead, &n.CreatedAt)
	return n, err
}

func (r *NotificationRepository) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	var data interface{}
	if len(n.Data) > 0 {
		data = string(n.Data)
	}
	b, err := notificationsTable.insert(Fields{
		"user_id": n.UserID,
		"type":    n.Type,
		"title":   n.Title,
		"message": n.Message,
		"data":    data,
	})
	if err != nil {
		return models.Notification{}, err
	}
	return queryOne(ctx, r.DB, b, scanNotification)
}

// List returns one page of the user's notifications, the number of rows
// matching the filter and the user's unread count.
func (r *NotificationRepository) List(ctx context.Context, userID int, unreadOnly bool, page, limit int) ([]models.Notification, int, int, error) {
	page, limit = models.NormalizePage(page, limit)
	cond := sq.And{sq.Eq{"user_id": userID}}
	if unreadOnly {
		cond = append(cond, sq.Eq{"is_read": false})
	}

	total, err := countRows(ctx, r.DB, psql.Select("COUNT(*)").From("notifications").Where(cond))
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := countRows(ctx, r.DB, psql.Select("COUNT(*)").From("notifications").
		Where(sq.Eq{"user_id": userID, "is_read": false}))
	if err != nil {
		return nil, 0, 0, err
	}
	items, err := queryAll(ctx, r.DB, psql.Select(notificationsTable.columns...).From("notifications").Where(cond).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).Offset(uint64(models.Offset(page, limit))), scanNotification)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	return execOne(ctx, r.DB, psql.Update("notifications").Set("is_read", true).
		Where(sq.Eq{"id": id, "user_id": userID}))
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	return execAffected(ctx, r.DB, psql.Update("notifications").Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false}))
}
