package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
)

type publishabilityArticleReader interface {
	GetByID(ctx context.Context, id string) (*models.Article, error)
}

type policyReader interface {
	PoliciesFor(ctx context.Context, categoryIDs []string) (map[string]*models.CategoryPolicy, error)
}

type reviewLister interface {
	ListByArticle(ctx context.Context, articleID string) ([]models.Review, error)
}

// PublishabilityService answers "is this article ready" without mutating anything.
// Results are not cached; dashboards tolerate stale snapshots instead.
type PublishabilityService struct {
	articles publishabilityArticleReader
	policies policyReader
	reviews  reviewLister
	logger   *zap.Logger
}

// NewPublishabilityService constructs the read-side evaluator.
func NewPublishabilityService(articles publishabilityArticleReader, policies policyReader, reviews reviewLister, logger *zap.Logger) *PublishabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublishabilityService{articles: articles, policies: policies, reviews: reviews, logger: logger}
}

// Evaluate loads the article by id and evaluates it.
func (s *PublishabilityService) Evaluate(ctx context.Context, articleID string) (*workflow.Publishability, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, notFoundOr(err, "article not found", "failed to load article")
	}
	return s.EvaluateArticle(ctx, article)
}

// EvaluateArticle evaluates an already loaded article. Categories keep the article's order.
func (s *PublishabilityService) EvaluateArticle(ctx context.Context, article *models.Article) (*workflow.Publishability, error) {
	if len(article.CategoryIDs) == 0 {
		verdict := workflow.EvaluatePublishability(article.ReviewMode, nil)
		return &verdict, nil
	}

	policies, err := s.policies.PoliciesFor(ctx, article.CategoryIDs)
	if err != nil {
		return nil, internalErr(err, "failed to load category policies")
	}
	reviews, err := s.reviews.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, internalErr(err, "failed to load reviews")
	}

	inputs := make([]workflow.CategoryInput, 0, len(article.CategoryIDs))
	for _, categoryID := range article.CategoryIDs {
		inputs = append(inputs, workflow.CategoryInput{
			CategoryID: categoryID,
			Policy:     policies[categoryID],
			Counts:     workflow.CountReviews(reviews, categoryID),
		})
	}
	verdict := workflow.EvaluatePublishability(article.ReviewMode, inputs)
	s.logger.Debug("publishability evaluated",
		zap.String("article_id", article.ID),
		zap.Bool("publishable", verdict.Publishable),
		zap.Bool("blocked", verdict.AnyBlocked))
	return &verdict, nil
}
