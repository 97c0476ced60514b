package service

import (
	"context"
	"time"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/repository"
)

// ArticleWriter is the transactional subset used when saving drafts. *repository.ArticleRepository satisfies it.
type ArticleWriter interface {
	Create(ctx context.Context, article *models.Article) error
	UpdateContent(ctx context.Context, article *models.Article) error
	GetForUpdate(ctx context.Context, id string) (*models.Article, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
}

// CategoryWriter is the transactional view used when changing a reviewer pool. *repository.Tx satisfies it.
type CategoryWriter interface {
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ReplaceCategoryReviewers(ctx context.Context, categoryID string, userIDs []string) error
	FindUsers(ctx context.Context, ids []string) ([]models.User, error)
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
}

// RulesWriter is the transactional subset used by create-and-activate and the activate command.
type RulesWriter interface {
	Create(ctx context.Context, rules *models.ArticleRules) error
	Activate(ctx context.Context, id string, now time.Time) error
}

// StoreRunner adapts repository.Store transactions to the narrow views each service works with.
type StoreRunner struct {
	store *repository.Store
}

// NewStoreRunner wraps store.
func NewStoreRunner(store *repository.Store) *StoreRunner {
	return &StoreRunner{store: store}
}

// WithinTx implements TxRunner.
func (r *StoreRunner) WithinTx(ctx context.Context, fn func(WorkflowTx) error) error {
	return r.store.WithinTx(ctx, func(tx *repository.Tx) error {
		return fn(tx)
	})
}

// WithinArticleTx runs fn with the article repository bound to one transaction.
func (r *StoreRunner) WithinArticleTx(ctx context.Context, fn func(ArticleWriter) error) error {
	return r.store.WithinTx(ctx, func(tx *repository.Tx) error {
		return fn(tx.Articles)
	})
}

// WithinCategoryTx runs fn with the category view bound to one transaction.
func (r *StoreRunner) WithinCategoryTx(ctx context.Context, fn func(CategoryWriter) error) error {
	return r.store.WithinTx(ctx, func(tx *repository.Tx) error {
		return fn(tx)
	})
}

// WithinRulesTx runs fn with the rules repository bound to one transaction.
func (r *StoreRunner) WithinRulesTx(ctx context.Context, fn func(RulesWriter) error) error {
	return r.store.WithinTx(ctx, func(tx *repository.Tx) error {
		return fn(tx.Rules)
	})
}
