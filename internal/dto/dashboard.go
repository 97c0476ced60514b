package dto

import (
	"time"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
)

// ArticleSummary is the compact article shape used in dashboards and queues.
type ArticleSummary struct {
	ID          string               `json:"id"`
	Slug        string               `json:"slug"`
	Title       string               `json:"title"`
	Status      models.ArticleStatus `json:"status"`
	AuthorID    string               `json:"author_id"`
	SubmittedAt *time.Time           `json:"submitted_at,omitempty"`
}

// NewArticleSummary builds a summary titled in the default language.
func NewArticleSummary(a models.Article) ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Slug:        a.Slug,
		Title:       a.DisplayTitle(),
		Status:      a.Status,
		AuthorID:    a.AuthorID,
		SubmittedAt: a.SubmittedAt,
	}
}

// ReadyArticle pairs an article with the verdict that makes it publishable.
type ReadyArticle struct {
	Article        ArticleSummary          `json:"article"`
	Publishability workflow.Publishability `json:"publishability"`
}

// AdminDashboardResponse holds the editorial counters shown to administrators.
type AdminDashboardResponse struct {
	PendingAdmin     int                          `json:"pending_admin"`
	InReview         int                          `json:"in_review"`
	ChangesRequested int                          `json:"changes_requested"`
	Published        int                          `json:"published"`
	Rejected         int                          `json:"rejected"`
	Draft            int                          `json:"draft"`
	Total            int                          `json:"total"`
	ByStatus         map[models.ArticleStatus]int `json:"by_status"`
	ReadyForPublish  []ReadyArticle               `json:"ready_for_publish"`
	ReadyCount       int                          `json:"ready_count"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// ReviewerQueueCategory is one category of a reviewer's queue.
type ReviewerQueueCategory struct {
	CategoryID   string           `json:"category_id"`
	CategorySlug string           `json:"category_slug"`
	CategoryName string           `json:"category_name"`
	PendingCount int              `json:"pending_count"`
	Articles     []ArticleSummary `json:"articles"`
}

// ReviewerQueueResponse lists what a reviewer still has to review, per category.
type ReviewerQueueResponse struct {
	Categories   []ReviewerQueueCategory `json:"categories"`
	TotalPending int                     `json:"total_pending"`
}
