package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
)

// outbox collects notifications produced by one workflow operation. They are persisted inside
// the operation's transaction and handed to the dispatcher after commit.
type outbox struct {
	now        time.Time
	deliveries []Delivery
}

func newOutbox(now time.Time) *outbox {
	return &outbox{now: now}
}

func (o *outbox) add(article *models.Article, typ models.NotificationType, title, message string, recipients ...models.User) {
	link := articleLink(article)
	articleID := article.ID
	o.push(typ, title, message, &link, &articleID, recipients)
}

func (o *outbox) push(typ models.NotificationType, title, message string, link, articleID *string, recipients []models.User) {
	seen := make(map[string]struct{}, len(recipients))
	for _, user := range recipients {
		if user.ID == "" || !user.Active {
			continue
		}
		if _, dup := seen[user.ID]; dup {
			continue
		}
		seen[user.ID] = struct{}{}
		o.deliveries = append(o.deliveries, Delivery{
			Notification: models.Notification{
				ID:        uuid.NewString(),
				UserID:    user.ID,
				Type:      typ,
				Title:     title,
				Message:   message,
				Link:      link,
				ArticleID: articleID,
				CreatedAt: o.now,
			},
			Email: user.Email,
			Name:  user.DisplayName(),
		})
	}
}

func (o *outbox) notifications() []models.Notification {
	out := make([]models.Notification, 0, len(o.deliveries))
	for _, d := range o.deliveries {
		out = append(out, d.Notification)
	}
	return out
}

type notificationWriter interface {
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
}

func (o *outbox) flush(ctx context.Context, tx notificationWriter) error {
	if len(o.deliveries) == 0 {
		return nil
	}
	return tx.CreateNotifications(ctx, o.notifications())
}

func articleLink(article *models.Article) string {
	return "/articles/" + article.Slug
}

func (o *outbox) articleSubmitted(article *models.Article, author *models.User, admins []models.User) {
	o.add(article, models.NotificationArticleSubmitted,
		"New article submitted",
		fmt.Sprintf("Article '%s' by %s has been submitted and is waiting for your decision.", article.DisplayTitle(), author.DisplayName()),
		admins...)
}

func (o *outbox) articleResubmitted(article *models.Article, recipients []models.User) {
	o.add(article, models.NotificationArticleResubmitted,
		"Article resubmitted",
		fmt.Sprintf("Article '%s' has been updated by its author and resubmitted.", article.DisplayTitle()),
		recipients...)
}

func (o *outbox) articleAssigned(article *models.Article, author *models.User, reviewer models.User) {
	o.add(article, models.NotificationArticleForReview,
		"New article assigned for review",
		fmt.Sprintf("Article '%s' by %s has been assigned to you for review.", article.DisplayTitle(), author.DisplayName()),
		reviewer)
}

func (o *outbox) articleForReview(article *models.Article, author *models.User, reviewer models.User, categories []string) {
	o.add(article, models.NotificationArticleForReview,
		"New article assigned for review",
		fmt.Sprintf("Article '%s' by %s has been assigned for your review. Categories: %s.",
			article.DisplayTitle(), author.DisplayName(), strings.Join(categories, ", ")),
		reviewer)
}

func (o *outbox) reviewReceived(article *models.Article, author *models.User, decision models.ReviewDecision, category string, comment *string) {
	message := fmt.Sprintf("Your article '%s' has received a review. Decision: %s. Category: %s.",
		article.DisplayTitle(), decision.Label(), category)
	if comment != nil && *comment != "" {
		message += " Comment: " + truncate(*comment, 200)
	}
	o.add(article, models.NotificationReviewSubmitted, "Review received for your article", message, *author)
}

func (o *outbox) changesRequested(article *models.Article, author *models.User, feedback string) {
	message := fmt.Sprintf("Changes have been requested for your article '%s'. Please review the feedback and make necessary updates.",
		article.DisplayTitle())
	if feedback != "" {
		message += " Feedback: " + feedback
	}
	o.add(article, models.NotificationChangesRequested, "Changes requested for your article", message, *author)
}

func (o *outbox) rejected(article *models.Article, author *models.User, reason string) {
	message := fmt.Sprintf("Your article '%s' has been rejected.", article.DisplayTitle())
	if reason != "" {
		message += " Reason: " + reason
	}
	o.add(article, models.NotificationArticleRejected, "Your article has been rejected", message, *author)
}

// published notifies the author and, separately, every other party.
func (o *outbox) published(article *models.Article, author *models.User, others []models.User) {
	o.add(article, models.NotificationArticlePublished,
		"Your article has been published!",
		fmt.Sprintf("Congratulations! Your article '%s' has been published and is now visible to readers.", article.DisplayTitle()),
		*author)

	rest := make([]models.User, 0, len(others))
	for _, u := range others {
		if u.ID != author.ID {
			rest = append(rest, u)
		}
	}
	o.add(article, models.NotificationArticlePublished,
		"Article published",
		fmt.Sprintf("Article '%s' has been published.", article.DisplayTitle()),
		rest...)
}

func (o *outbox) reviewerAssigned(category *models.Category, reviewers []models.User) {
	link := "/categories/" + category.Slug
	o.push(models.NotificationReviewerAssigned,
		"You have been assigned as a reviewer",
		fmt.Sprintf("You are now a reviewer for category '%s'. New articles in this category will appear in your review queue.",
			category.Name.Get(models.DefaultLanguage)),
		&link, nil, reviewers)
}

func (o *outbox) statusChanged(article *models.Article, user *models.User, from, to models.ArticleStatus, note string) {
	message := fmt.Sprintf("The status of your article '%s' changed from %s to %s.", article.DisplayTitle(), from, to)
	if note != "" {
		message += " Note: " + note
	}
	o.add(article, models.NotificationStatusChanged, "Article status changed", message, *user)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func mergeUsers(groups ...[]models.User) []models.User {
	seen := make(map[string]struct{})
	var out []models.User
	for _, group := range groups {
		for _, u := range group {
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}
