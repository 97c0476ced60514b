package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

var transitions = map[models.ArticleStatus][]models.ArticleStatus{
	models.ArticleStatusDraft: {
		models.ArticleStatusPendingAdmin,
	},
	models.ArticleStatusPendingAdmin: {
		models.ArticleStatusInReview,
		models.ArticleStatusChangesRequested,
		models.ArticleStatusPublished,
		models.ArticleStatusRejected,
		models.ArticleStatusDraft,
	},
	models.ArticleStatusInReview: {
		models.ArticleStatusChangesRequested,
		models.ArticleStatusPublished,
		models.ArticleStatusRejected,
		models.ArticleStatusPendingAdmin,
	},
	models.ArticleStatusChangesRequested: {
		models.ArticleStatusPendingAdmin,
		models.ArticleStatusPublished,
		models.ArticleStatusRejected,
		models.ArticleStatusDraft,
	},
	models.ArticleStatusRejected: {
		models.ArticleStatusDraft,
	},
	models.ArticleStatusPublished: {
		models.ArticleStatusDraft,
	},
}

// ValidateTransition reports whether moving from one status to another is legal.
func ValidateTransition(from, to models.ArticleStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given status.
func AllowedTransitions(from models.ArticleStatus) []models.ArticleStatus {
	allowed := transitions[from]
	out := make([]models.ArticleStatus, len(allowed))
	copy(out, allowed)
	return out
}

// Change describes a requested status transition.
type Change struct {
	To      models.ArticleStatus
	ActorID string
	Reason  string
	// AdminDecision records the actor as the article's last admin decision maker.
	AdminDecision bool
	Note          *string
}

// Apply validates and applies a transition to article, returning the audit row to persist.
// The article is left untouched when the transition is illegal.
func Apply(article *models.Article, change Change, now time.Time) (*models.ArticleStatusHistory, error) {
	from := article.Status
	if !ValidateTransition(from, change.To) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move article from %s to %s", from, change.To))
	}

	now = now.UTC()
	article.Status = change.To
	article.UpdatedAt = now

	switch change.To {
	case models.ArticleStatusPendingAdmin:
		if from == models.ArticleStatusDraft || from == models.ArticleStatusChangesRequested {
			article.SubmittedAt = timePtr(now)
		}
	case models.ArticleStatusPublished:
		if article.PublishedAt == nil {
			article.PublishedAt = timePtr(now)
		}
		if article.AdminDecisionAt == nil {
			article.AdminDecisionAt = timePtr(now)
		}
	case models.ArticleStatusDraft:
		if from == models.ArticleStatusPublished {
			article.PublishedAt = nil
		}
	}

	if change.AdminDecision {
		actor := change.ActorID
		article.AdminDecisionBy = &actor
		article.AdminDecisionAt = timePtr(now)
	}
	if change.Note != nil && *change.Note != "" {
		note := *change.Note
		article.AdminNote = &note
	}

	entry := &models.ArticleStatusHistory{
		ID:         uuid.NewString(),
		ArticleID:  article.ID,
		FromStatus: from,
		ToStatus:   change.To,
		Reason:     change.Reason,
		ChangedAt:  now,
	}
	if change.ActorID != "" {
		actor := change.ActorID
		entry.ChangedBy = &actor
	}
	return entry, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
