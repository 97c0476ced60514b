package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
)

var notificationColumnList = []string{"id", "user_id", "type", "title", "message", "link", "article_id", "is_read", "created_at", "read_at"}

// NotificationRepository persists in-app notifications.
type NotificationRepository struct {
	db DBTX
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateBatch inserts notifications in a single statement.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	now := time.Now().UTC()
	insert := psql.Insert("notifications").Columns(notificationColumnList...)
	for i := range notifications {
		n := &notifications[i]
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		insert = insert.Values(n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.ArticleID, n.IsRead, n.CreatedAt, n.ReadAt)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build notification insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}
	return nil
}

// List returns a page of the user's notifications, newest first, with the total count.
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	where := sq.And{sq.Eq{"user_id": filter.UserID}}
	if filter.UnreadOnly {
		where = append(where, sq.Eq{"is_read": false})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build notification count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	page, size := normalisePage(filter.Page, filter.PageSize)
	listSQL, listArgs, err := psql.Select(notificationColumnList...).From("notifications").Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build notification list: %w", err)
	}
	notifications := []models.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read; sql.ErrNoRows is returned when it does not belong to userID.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string, now time.Time) error {
	const query = `UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, $3) WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID, now.UTC())
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return expectAffected(result, "notification")
}

// MarkAllRead marks every unread notification of the user read and returns how many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error) {
	const query = `UPDATE notifications SET is_read = TRUE, read_at = $2 WHERE user_id = $1 AND is_read = FALSE`
	result, err := r.db.ExecContext(ctx, query, userID, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check notification rows: %w", err)
	}
	return rows, nil
}
