package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
)

const dashboardStatsKey = "dashboard:stats"

var reviewingStatuses = []models.ArticleStatus{models.ArticleStatusInReview, models.ArticleStatusChangesRequested}

type dashboardArticleStore interface {
	CountByStatus(ctx context.Context) (map[models.ArticleStatus]int, error)
	ListByStatus(ctx context.Context, statuses []models.ArticleStatus) ([]models.Article, error)
}

type publishabilityEvaluator interface {
	EvaluateArticle(ctx context.Context, article *models.Article) (*workflow.Publishability, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Articles  dashboardArticleStore
	Evaluator publishabilityEvaluator
	Cache     *CacheService
	Logger    *zap.Logger
	Config    DashboardServiceConfig
}

// DashboardService composes the administrator statistics. Snapshots may be served from
// cache and are dropped whenever the workflow accepts a transition.
type DashboardService struct {
	articles  dashboardArticleStore
	evaluator publishabilityEvaluator
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	cfg       DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		articles:  params.Articles,
		evaluator: params.Evaluator,
		cache:     params.Cache,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Stats returns the admin dashboard counters and indicates whether they came from cache.
func (s *DashboardService) Stats(ctx context.Context) (*dto.AdminDashboardResponse, bool, error) {
	stats := &dto.AdminDashboardResponse{}
	cached, err := s.cache.Remember(ctx, dashboardStatsKey, s.cfg.CacheTTL, stats, func(ctx context.Context) error {
		return s.compose(ctx, stats)
	})
	if err != nil {
		return nil, false, err
	}
	return stats, cached, nil
}

// InvalidateStats drops the cached snapshot.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	s.cache.Forget(ctx, dashboardStatsKey)
}

func (s *DashboardService) compose(ctx context.Context, stats *dto.AdminDashboardResponse) error {
	counts, err := s.articles.CountByStatus(ctx)
	if err != nil {
		return internalErr(err, "failed to count articles")
	}
	*stats = dto.AdminDashboardResponse{
		PendingAdmin:     counts[models.ArticleStatusPendingAdmin],
		InReview:         counts[models.ArticleStatusInReview],
		ChangesRequested: counts[models.ArticleStatusChangesRequested],
		Published:        counts[models.ArticleStatusPublished],
		Rejected:         counts[models.ArticleStatusRejected],
		Draft:            counts[models.ArticleStatusDraft],
		ByStatus:         make(map[models.ArticleStatus]int, len(models.ArticleStatuses)),
		ReadyForPublish:  []dto.ReadyArticle{},
		GeneratedAt:      s.now().UTC(),
	}
	for _, status := range models.ArticleStatuses {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}

	candidates, err := s.articles.ListByStatus(ctx, reviewingStatuses)
	if err != nil {
		return internalErr(err, "failed to list articles under review")
	}
	for i := range candidates {
		verdict, err := s.evaluator.EvaluateArticle(ctx, &candidates[i])
		if err != nil {
			return err
		}
		if verdict.Publishable {
			stats.ReadyForPublish = append(stats.ReadyForPublish, dto.ReadyArticle{
				Article:        dto.NewArticleSummary(candidates[i]),
				Publishability: *verdict,
			})
		}
	}
	stats.ReadyCount = len(stats.ReadyForPublish)
	return nil
}
