package workflow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

func TestValidateTransitionTable(t *testing.T) {
	legal := map[models.ArticleStatus]map[models.ArticleStatus]bool{
		models.ArticleStatusDraft: {
			models.ArticleStatusPendingAdmin: true,
		},
		models.ArticleStatusPendingAdmin: {
			models.ArticleStatusInReview:         true,
			models.ArticleStatusChangesRequested: true,
			models.ArticleStatusPublished:        true,
			models.ArticleStatusRejected:         true,
			models.ArticleStatusDraft:            true,
		},
		models.ArticleStatusInReview: {
			models.ArticleStatusChangesRequested: true,
			models.ArticleStatusPublished:        true,
			models.ArticleStatusRejected:         true,
			models.ArticleStatusPendingAdmin:     true,
		},
		models.ArticleStatusChangesRequested: {
			models.ArticleStatusPendingAdmin: true,
			models.ArticleStatusPublished:    true,
			models.ArticleStatusRejected:     true,
			models.ArticleStatusDraft:        true,
		},
		models.ArticleStatusRejected: {
			models.ArticleStatusDraft: true,
		},
		models.ArticleStatusPublished: {
			models.ArticleStatusDraft: true,
		},
	}

	cases := 0
	for _, from := range models.ArticleStatuses {
		for _, to := range models.ArticleStatuses {
			cases++
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				assert.Equal(t, legal[from][to], ValidateTransition(from, to))
			})
		}
	}
	assert.Equal(t, 36, cases)
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	assert.False(t, ValidateTransition("ARCHIVED", models.ArticleStatusDraft))
	assert.Empty(t, AllowedTransitions("ARCHIVED"))
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	allowed := AllowedTransitions(models.ArticleStatusRejected)
	require.Equal(t, []models.ArticleStatus{models.ArticleStatusDraft}, allowed)
	allowed[0] = models.ArticleStatusPublished
	assert.False(t, ValidateTransition(models.ArticleStatusRejected, models.ArticleStatusPublished))
}

func TestApplySubmitSetsSubmittedAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	article := &models.Article{ID: "a1", Status: models.ArticleStatusDraft, AuthorID: "u1"}

	entry, err := Apply(article, Change{To: models.ArticleStatusPendingAdmin, ActorID: "u1", Reason: "Author submitted"}, now)
	require.NoError(t, err)

	assert.Equal(t, models.ArticleStatusPendingAdmin, article.Status)
	require.NotNil(t, article.SubmittedAt)
	assert.Equal(t, now, *article.SubmittedAt)
	assert.Equal(t, models.ArticleStatusDraft, entry.FromStatus)
	assert.Equal(t, models.ArticleStatusPendingAdmin, entry.ToStatus)
	assert.Equal(t, "a1", entry.ArticleID)
	require.NotNil(t, entry.ChangedBy)
	assert.Equal(t, "u1", *entry.ChangedBy)
	assert.NotEmpty(t, entry.ID)
}

func TestApplyPublishKeepsExistingTimestamps(t *testing.T) {
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := earlier.Add(48 * time.Hour)
	article := &models.Article{Status: models.ArticleStatusInReview, PublishedAt: &earlier}

	_, err := Apply(article, Change{To: models.ArticleStatusPublished, ActorID: "rev"}, now)
	require.NoError(t, err)
	assert.Equal(t, earlier, *article.PublishedAt)
	require.NotNil(t, article.AdminDecisionAt)
	assert.Equal(t, now, *article.AdminDecisionAt)
	assert.Nil(t, article.AdminDecisionBy)
}

func TestApplyAdminDecisionRecordsActorAndNote(t *testing.T) {
	now := time.Now()
	note := "duplicate of earlier piece"
	article := &models.Article{Status: models.ArticleStatusPendingAdmin}

	_, err := Apply(article, Change{To: models.ArticleStatusRejected, ActorID: "admin", AdminDecision: true, Note: &note}, now)
	require.NoError(t, err)
	require.NotNil(t, article.AdminDecisionBy)
	assert.Equal(t, "admin", *article.AdminDecisionBy)
	require.NotNil(t, article.AdminNote)
	assert.Equal(t, note, *article.AdminNote)
	assert.Nil(t, article.PublishedAt)
}

func TestApplyUnpublishClearsPublishedAt(t *testing.T) {
	published := time.Now().Add(-time.Hour)
	article := &models.Article{Status: models.ArticleStatusPublished, PublishedAt: &published}

	_, err := Apply(article, Change{To: models.ArticleStatusDraft, ActorID: "admin"}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, article.PublishedAt)
	assert.Equal(t, models.ArticleStatusDraft, article.Status)
}

func TestApplyRejectsIllegalTransition(t *testing.T) {
	article := &models.Article{Status: models.ArticleStatusDraft}

	entry, err := Apply(article, Change{To: models.ArticleStatusPublished}, time.Now())
	require.Error(t, err)
	assert.Nil(t, entry)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidTransition))
	assert.Equal(t, models.ArticleStatusDraft, article.Status)
	assert.Nil(t, article.PublishedAt)
}
