package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

// RulesTxRunner runs the activate command in one transaction.
type RulesTxRunner interface {
	WithinRulesTx(ctx context.Context, fn func(RulesWriter) error) error
}

type rulesStore interface {
	Create(ctx context.Context, rules *models.ArticleRules) error
	GetActive(ctx context.Context) (*models.ArticleRules, error)
	List(ctx context.Context) ([]models.ArticleRules, error)
}

// RulesInput carries a new set of writing guidelines.
type RulesInput struct {
	Title    models.LocalizedText
	Content  models.LocalizedText
	Activate bool
}

// RulesService manages the author-facing writing guidelines. At most one set is active.
type RulesService struct {
	runner RulesTxRunner
	repo   rulesStore
	users  userFinder
	logger *zap.Logger
	now    func() time.Time
}

// NewRulesService constructs a RulesService.
func NewRulesService(runner RulesTxRunner, repo rulesStore, users userFinder, logger *zap.Logger) *RulesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RulesService{runner: runner, repo: repo, users: users, logger: logger, now: time.Now}
}

// Create stores a new inactive rules record, activating it when requested.
func (s *RulesService) Create(ctx context.Context, actorID string, in RulesInput) (*models.ArticleRules, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	title, content, err := normaliseLocalized(in.Title, in.Content)
	if err != nil {
		return nil, err
	}
	rules := &models.ArticleRules{Title: title, Content: content, CreatedBy: &actorID}
	if !in.Activate {
		if err := s.repo.Create(ctx, rules); err != nil {
			return nil, internalErr(err, "failed to create rules")
		}
		return rules, nil
	}

	// the new row and the switch of the active flag commit together
	err = s.runner.WithinRulesTx(ctx, func(w RulesWriter) error {
		if err := w.Create(ctx, rules); err != nil {
			return err
		}
		return w.Activate(ctx, rules.ID, s.now().UTC())
	})
	if err != nil {
		return nil, internalErr(err, "failed to create rules")
	}
	rules.IsActive = true
	s.logger.Info("article rules activated", zap.String("rules_id", rules.ID))
	return rules, nil
}

// Active returns the active guidelines.
func (s *RulesService) Active(ctx context.Context) (*models.ArticleRules, error) {
	rules, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, notFoundOr(err, "no active rules", "failed to load rules")
	}
	return rules, nil
}

// List returns every rules record, newest first.
func (s *RulesService) List(ctx context.Context, actorID string) ([]models.ArticleRules, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalErr(err, "failed to list rules")
	}
	return rules, nil
}

// Activate makes id the only active rules record.
func (s *RulesService) Activate(ctx context.Context, actorID, id string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "rules id is required")
	}
	return s.activate(ctx, id)
}

func (s *RulesService) activate(ctx context.Context, id string) error {
	err := s.runner.WithinRulesTx(ctx, func(w RulesWriter) error {
		return w.Activate(ctx, id, s.now().UTC())
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("rules %s not found", id))
		}
		return internalErr(err, "failed to activate rules")
	}
	s.logger.Info("article rules activated", zap.String("rules_id", id))
	return nil
}

func (s *RulesService) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return notFoundOr(err, "user not found", "failed to load user")
	}
	if !workflow.Can(actor, workflow.ActionAdminister, workflow.Resource{}) {
		return appErrors.Clone(appErrors.ErrPermissionDenied, "admin access required")
	}
	return nil
}
