package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
)

const queuePreviewSize = 5

type queueCategoryStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	ListForReviewer(ctx context.Context, userID string) ([]models.Category, error)
}

type queueArticleStore interface {
	ReviewQueue(ctx context.Context, categoryID, reviewerID string, limit int) ([]models.Article, int, error)
}

// ReviewerQueueService lists, per category, the articles a reviewer has not reviewed yet.
type ReviewerQueueService struct {
	categories queueCategoryStore
	articles   queueArticleStore
	users      userFinder
	logger     *zap.Logger
}

// NewReviewerQueueService constructs a ReviewerQueueService.
func NewReviewerQueueService(categories queueCategoryStore, articles queueArticleStore, users userFinder, logger *zap.Logger) *ReviewerQueueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewerQueueService{categories: categories, articles: articles, users: users, logger: logger}
}

// Queue returns the reviewer's pending work. Superusers see every active category;
// users without reviewer capability get an empty queue.
func (s *ReviewerQueueService) Queue(ctx context.Context, reviewerID string) (*dto.ReviewerQueueResponse, error) {
	out := &dto.ReviewerQueueResponse{Categories: []dto.ReviewerQueueCategory{}}

	user, err := s.users.FindByID(ctx, reviewerID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to load user")
	}
	if !user.Active || !user.IsReviewer() {
		return out, nil
	}

	var categories []models.Category
	if user.IsSuperuser {
		categories, err = s.categories.List(ctx, true)
	} else {
		categories, err = s.categories.ListForReviewer(ctx, user.ID)
	}
	if err != nil {
		return nil, internalErr(err, "failed to load reviewer categories")
	}

	for _, category := range categories {
		articles, count, err := s.articles.ReviewQueue(ctx, category.ID, user.ID, queuePreviewSize)
		if err != nil {
			return nil, internalErr(err, "failed to load review queue")
		}
		if count == 0 {
			continue
		}
		entry := dto.ReviewerQueueCategory{
			CategoryID:   category.ID,
			CategorySlug: category.Slug,
			CategoryName: category.Name.Get(models.DefaultLanguage),
			PendingCount: count,
			Articles:     make([]dto.ArticleSummary, 0, len(articles)),
		}
		for _, a := range articles {
			entry.Articles = append(entry.Articles, dto.NewArticleSummary(a))
		}
		out.Categories = append(out.Categories, entry)
		out.TotalPending += count
	}
	s.logger.Debug("reviewer queue built", zap.String("reviewer_id", user.ID), zap.Int("total_pending", out.TotalPending))
	return out, nil
}
