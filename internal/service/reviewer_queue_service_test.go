package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

type queueArticlesStub struct {
	// pending[categoryID] lists reviewable articles not yet reviewed by anyone.
	pending  map[string][]models.Article
	reviewed map[string]bool // key: category|reviewer|article
	limits   []int
}

func (s *queueArticlesStub) ReviewQueue(ctx context.Context, categoryID, reviewerID string, limit int) ([]models.Article, int, error) {
	s.limits = append(s.limits, limit)
	var open []models.Article
	for _, a := range s.pending[categoryID] {
		if !s.reviewed[categoryID+"|"+reviewerID+"|"+a.ID] {
			open = append(open, a)
		}
	}
	total := len(open)
	if len(open) > limit {
		open = open[:limit]
	}
	return open, total, nil
}

func manyArticles(prefix string, n int) []models.Article {
	out := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		id := prefix + string(rune('a'+i))
		out = append(out, models.Article{ID: id, Slug: id, Status: models.ArticleStatusInReview})
	}
	return out
}

func newQueueFixture() (*ReviewerQueueService, *queueArticlesStub) {
	articles := &queueArticlesStub{
		pending: map[string][]models.Article{
			"science": manyArticles("s", 7),
			"history": manyArticles("h", 1),
			"archive": manyArticles("x", 2),
		},
		reviewed: map[string]bool{"science|rev1|sa": true},
	}
	return NewReviewerQueueService(newCategoryCatalog(), articles, newUserDirectory(), nil), articles
}

func TestReviewerQueueForPoolMember(t *testing.T) {
	svc, articles := newQueueFixture()

	queue, err := svc.Queue(context.Background(), "rev1")
	require.NoError(t, err)

	require.Len(t, queue.Categories, 1)
	science := queue.Categories[0]
	assert.Equal(t, "science", science.CategoryID)
	assert.Equal(t, "Fan", science.CategoryName)
	assert.Equal(t, 6, science.PendingCount)
	assert.Len(t, science.Articles, queuePreviewSize)
	assert.Equal(t, "sb", science.Articles[0].ID)
	assert.Equal(t, 6, queue.TotalPending)
	assert.Equal(t, []int{queuePreviewSize}, articles.limits)
}

func TestReviewerQueueSumsCategories(t *testing.T) {
	svc, _ := newQueueFixture()

	queue, err := svc.Queue(context.Background(), "rev2")
	require.NoError(t, err)

	require.Len(t, queue.Categories, 2)
	assert.Equal(t, "history", queue.Categories[0].CategoryID)
	assert.Equal(t, "science", queue.Categories[1].CategoryID)
	assert.Equal(t, 8, queue.TotalPending)
}

func TestReviewerQueueSuperuserSeesActiveCategories(t *testing.T) {
	svc, _ := newQueueFixture()

	queue, err := svc.Queue(context.Background(), "root")
	require.NoError(t, err)

	ids := make([]string, 0, len(queue.Categories))
	for _, c := range queue.Categories {
		ids = append(ids, c.CategoryID)
	}
	assert.Equal(t, []string{"history", "science"}, ids, "inactive categories are skipped")
	assert.Equal(t, 8, queue.TotalPending)
}

func TestReviewerQueueEmptyForNonReviewers(t *testing.T) {
	svc, articles := newQueueFixture()

	queue, err := svc.Queue(context.Background(), "author")
	require.NoError(t, err)
	assert.Empty(t, queue.Categories)
	assert.Zero(t, queue.TotalPending)
	assert.Empty(t, articles.limits)

	_, err = svc.Queue(context.Background(), "nobody")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
