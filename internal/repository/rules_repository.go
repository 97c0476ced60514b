package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
)

const rulesColumns = `id, title, content, is_active, created_by, created_at, updated_at`

// RulesRepository persists author-facing writing rules.
type RulesRepository struct {
	db DBTX
}

// NewRulesRepository constructs the repository.
func NewRulesRepository(db DBTX) *RulesRepository {
	return &RulesRepository{db: db}
}

// Create inserts an inactive rules record.
func (r *RulesRepository) Create(ctx context.Context, rules *models.ArticleRules) error {
	if rules.ID == "" {
		rules.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rules.CreatedAt, rules.UpdatedAt = now, now
	rules.IsActive = false
	const query = `INSERT INTO article_rules (` + rulesColumns + `)
VALUES (:id, :title, :content, :is_active, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rules); err != nil {
		return fmt.Errorf("create article rules: %w", err)
	}
	return nil
}

// GetActive returns the active rules; sql.ErrNoRows when none is active.
func (r *RulesRepository) GetActive(ctx context.Context) (*models.ArticleRules, error) {
	var rules models.ArticleRules
	if err := r.db.GetContext(ctx, &rules, `SELECT `+rulesColumns+` FROM article_rules WHERE is_active = TRUE LIMIT 1`); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get active article rules: %w", err)
	}
	return &rules, nil
}

// List returns every rules record, newest first.
func (r *RulesRepository) List(ctx context.Context) ([]models.ArticleRules, error) {
	rules := []models.ArticleRules{}
	if err := r.db.SelectContext(ctx, &rules, `SELECT `+rulesColumns+` FROM article_rules ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list article rules: %w", err)
	}
	return rules, nil
}

// Activate makes id the only active record. It must run inside a transaction.
func (r *RulesRepository) Activate(ctx context.Context, id string, now time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE article_rules SET is_active = FALSE, updated_at = $2 WHERE is_active = TRUE AND id <> $1`, id, now.UTC()); err != nil {
		return fmt.Errorf("deactivate article rules: %w", err)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE article_rules SET is_active = TRUE, updated_at = $2 WHERE id = $1`, id, now.UTC())
	if err != nil {
		return fmt.Errorf("activate article rules: %w", err)
	}
	return expectAffected(result, "article rules")
}
