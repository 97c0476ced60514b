package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
	"github.com/Burkhanovich/article-site/pkg/export"
)

type historyArticleReader interface {
	GetByID(ctx context.Context, id string) (*models.Article, error)
}

type historyReader interface {
	ListByArticle(ctx context.Context, articleID string, ascending bool) ([]models.ArticleStatusHistory, error)
}

type userLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

var historyExportHeaders = []string{"Changed At", "From", "To", "Changed By", "Reason"}

// HistoryService exposes the append-only audit log.
type HistoryService struct {
	articles historyArticleReader
	history  historyReader
	users    userLookup
	logger   *zap.Logger
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(articles historyArticleReader, history historyReader, users userLookup, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{articles: articles, history: history, users: users, logger: logger}
}

// List returns the audit rows for an article, newest first unless ascending is set.
func (s *HistoryService) List(ctx context.Context, articleID string, ascending bool) ([]models.ArticleStatusHistory, error) {
	if _, err := s.article(ctx, articleID); err != nil {
		return nil, err
	}
	return s.list(ctx, articleID, ascending)
}

// Replay rebuilds the status sequence from DRAFT and checks every link of the chain.
func (s *HistoryService) Replay(ctx context.Context, articleID string) (*models.HistoryReplay, error) {
	article, err := s.article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	entries, err := s.list(ctx, articleID, true)
	if err != nil {
		return nil, err
	}

	replay := ReplayHistory(entries)
	replay.ArticleID = article.ID
	replay.CurrentStatus = article.Status
	if replay.Replayed != article.Status {
		replay.Problems = append(replay.Problems,
			fmt.Sprintf("replayed status %s differs from current status %s", replay.Replayed, article.Status))
	}
	replay.Consistent = len(replay.Problems) == 0
	if !replay.Consistent {
		s.logger.Warn("audit chain inconsistent", zap.String("article_id", article.ID), zap.Strings("problems", replay.Problems))
	}
	return replay, nil
}

// ReplayHistory folds ascending audit rows starting from DRAFT.
func ReplayHistory(entries []models.ArticleStatusHistory) *models.HistoryReplay {
	current := models.ArticleStatusDraft
	replay := &models.HistoryReplay{Statuses: []models.ArticleStatus{current}}
	for i, entry := range entries {
		if entry.FromStatus != current {
			replay.Problems = append(replay.Problems,
				fmt.Sprintf("entry %d starts at %s but the article was %s", i+1, entry.FromStatus, current))
		}
		if !workflow.ValidateTransition(entry.FromStatus, entry.ToStatus) {
			replay.Problems = append(replay.Problems,
				fmt.Sprintf("entry %d records illegal transition %s -> %s", i+1, entry.FromStatus, entry.ToStatus))
		}
		current = entry.ToStatus
		replay.Statuses = append(replay.Statuses, current)
	}
	replay.Replayed = current
	replay.Consistent = len(replay.Problems) == 0
	return replay
}

// Export renders the audit trail, oldest first, as CSV or PDF.
func (s *HistoryService) Export(ctx context.Context, articleID string, format export.Format) (*models.HistoryExport, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	article, err := s.article(ctx, articleID)
	if err != nil {
		return nil, err
	}
	entries, err := s.list(ctx, articleID, true)
	if err != nil {
		return nil, err
	}
	names, err := s.actorNames(ctx, entries)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Status history: %s", article.DisplayTitle()),
		Headers: historyExportHeaders,
		Rows:    make([]map[string]string, 0, len(entries)),
	}
	for _, entry := range entries {
		actor := "system"
		if entry.ChangedBy != nil {
			actor = names[*entry.ChangedBy]
			if actor == "" {
				actor = *entry.ChangedBy
			}
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Changed At": entry.ChangedAt.UTC().Format(time.RFC3339),
			"From":       string(entry.FromStatus),
			"To":         string(entry.ToStatus),
			"Changed By": actor,
			"Reason":     entry.Reason,
		})
	}

	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, internalErr(err, "failed to render history export")
	}
	return &models.HistoryExport{
		Filename:    fmt.Sprintf("%s-history.%s", article.Slug, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *HistoryService) article(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "article not found", "failed to load article")
	}
	return article, nil
}

func (s *HistoryService) list(ctx context.Context, articleID string, ascending bool) ([]models.ArticleStatusHistory, error) {
	entries, err := s.history.ListByArticle(ctx, articleID, ascending)
	if err != nil {
		return nil, internalErr(err, "failed to load status history")
	}
	return entries, nil
}

func (s *HistoryService) actorNames(ctx context.Context, entries []models.ArticleStatusHistory) (map[string]string, error) {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.ChangedBy != nil {
			ids = append(ids, *entry.ChangedBy)
		}
	}
	ids = uniqueStrings(ids)
	names := make(map[string]string, len(ids))
	if len(ids) == 0 || s.users == nil {
		return names, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internalErr(err, "failed to load users")
	}
	for i := range users {
		names[users[i].ID] = users[i].Username
	}
	return names, nil
}
