package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

type notificationStore interface {
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string, now time.Time) error
	MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error)
}

// NotificationService serves a user's in-app inbox.
type NotificationService struct {
	repo   notificationStore
	logger *zap.Logger
	now    func() time.Time
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationStore, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, logger: logger, now: time.Now}
}

// List returns one page of the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, *models.Pagination, error) {
	if strings.TrimSpace(filter.UserID) == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "user is required")
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalErr(err, "failed to list notifications")
	}
	return items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, internalErr(err, "failed to count notifications")
	}
	return count, nil
}

// MarkRead marks one of the user's notifications read. Another user's notification reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID, s.now().UTC()); err != nil {
		return notFoundOr(err, "notification not found", "failed to update notification")
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID, s.now().UTC())
	if err != nil {
		return 0, internalErr(err, "failed to update notifications")
	}
	s.logger.Debug("notifications marked read", zap.String("user_id", userID), zap.Int64("count", updated))
	return updated, nil
}
