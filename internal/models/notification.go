package models

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationReviewerAssigned   NotificationType = "REVIEWER_ASSIGNED"
	NotificationArticleForReview   NotificationType = "ARTICLE_FOR_REVIEW"
	NotificationReviewSubmitted    NotificationType = "REVIEW_SUBMITTED"
	NotificationArticlePublished   NotificationType = "ARTICLE_PUBLISHED"
	NotificationArticleRejected    NotificationType = "ARTICLE_REJECTED"
	NotificationChangesRequested   NotificationType = "CHANGES_REQUESTED"
	NotificationArticleSubmitted   NotificationType = "ARTICLE_SUBMITTED"
	NotificationArticleResubmitted NotificationType = "ARTICLE_RESUBMITTED"
	NotificationStatusChanged      NotificationType = "STATUS_CHANGED"
	NotificationGeneral            NotificationType = "GENERAL"
)

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Type      NotificationType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Link      *string          `db:"link" json:"link,omitempty"`
	ArticleID *string          `db:"article_id" json:"article_id,omitempty"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	ReadAt    *time.Time       `db:"read_at" json:"read_at,omitempty"`
}

// NotificationFilter constrains inbox listing.
type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
