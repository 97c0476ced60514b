package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Burkhanovich/article-site/internal/models"
)

const (
	categoryColumns = `id, slug, name, description, is_active, created_at, updated_at`
	policyColumns   = `category_id, min_approvals_to_publish, max_rejections_before_block, min_required_reviews,
	allow_admin_override, review_deadline_hours, require_changes_comment, require_reject_comment, updated_at`
)

// CategoryRepository persists categories, their reviewer pools and policies.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository constructs the repository.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	category.CreatedAt, category.UpdatedAt = now, now
	const query = `INSERT INTO categories (` + categoryColumns + `)
VALUES (:id, :slug, :name, :description, :is_active, :created_at, :updated_at)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
	is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at
RETURNING id`
	rows, err := sqlxNamedQuery(ctx, r.db, query, category)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&category.ID); err != nil {
			return fmt.Errorf("scan category id: %w", err)
		}
	}
	return rows.Err()
}

// GetByID fetches a category with its reviewer pool.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	reviewers, err := r.ReviewerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	category.ReviewerIDs = reviewers
	return &category, nil
}

// ListByIDs returns the categories for ids preserving the order of ids.
func (r *CategoryRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var found []models.Category
	if err := r.db.SelectContext(ctx, &found, `SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list categories by ids: %w", err)
	}
	byID := make(map[string]models.Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	ordered := make([]models.Category, 0, len(found))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		reviewers, err := r.ReviewerIDs(ctx, id)
		if err != nil {
			return nil, err
		}
		c.ReviewerIDs = reviewers
		ordered = append(ordered, c)
	}
	return ordered, nil
}

// List returns categories, optionally only active ones.
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY slug`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListForReviewer returns the active categories whose reviewer pool includes userID.
func (r *CategoryRepository) ListForReviewer(ctx context.Context, userID string) ([]models.Category, error) {
	const query = `SELECT c.id, c.slug, c.name, c.description, c.is_active, c.created_at, c.updated_at
FROM categories c JOIN category_reviewers cr ON cr.category_id = c.id
WHERE cr.user_id = $1 AND c.is_active = TRUE ORDER BY c.slug`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("list reviewer categories: %w", err)
	}
	return categories, nil
}

// ReviewerIDs returns the reviewer pool of a category.
func (r *CategoryRepository) ReviewerIDs(ctx context.Context, categoryID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM category_reviewers WHERE category_id = $1 ORDER BY user_id`, categoryID); err != nil {
		return nil, fmt.Errorf("list category reviewers: %w", err)
	}
	return ids, nil
}

// SetReviewers replaces the reviewer pool of a category.
func (r *CategoryRepository) SetReviewers(ctx context.Context, categoryID string, userIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM category_reviewers WHERE category_id = $1`, categoryID); err != nil {
		return fmt.Errorf("clear category reviewers: %w", err)
	}
	for _, userID := range userIDs {
		const query = `INSERT INTO category_reviewers (category_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := r.db.ExecContext(ctx, query, categoryID, userID); err != nil {
			return fmt.Errorf("add category reviewer: %w", err)
		}
	}
	return nil
}

// GetPolicy returns the stored policy, or nil when the category has none.
func (r *CategoryRepository) GetPolicy(ctx context.Context, categoryID string) (*models.CategoryPolicy, error) {
	var policy models.CategoryPolicy
	if err := r.db.GetContext(ctx, &policy, `SELECT `+policyColumns+` FROM category_policies WHERE category_id = $1`, categoryID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category policy: %w", err)
	}
	return &policy, nil
}

// PoliciesFor returns stored policies keyed by category id; categories without a row are absent.
func (r *CategoryRepository) PoliciesFor(ctx context.Context, categoryIDs []string) (map[string]*models.CategoryPolicy, error) {
	out := make(map[string]*models.CategoryPolicy, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return out, nil
	}
	var policies []models.CategoryPolicy
	if err := r.db.SelectContext(ctx, &policies, `SELECT `+policyColumns+` FROM category_policies WHERE category_id = ANY($1)`, pq.Array(categoryIDs)); err != nil {
		return nil, fmt.Errorf("list category policies: %w", err)
	}
	for i := range policies {
		out[policies[i].CategoryID] = &policies[i]
	}
	return out, nil
}

// UpsertPolicy creates or replaces a category policy.
func (r *CategoryRepository) UpsertPolicy(ctx context.Context, policy *models.CategoryPolicy) error {
	policy.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO category_policies (` + policyColumns + `)
VALUES (:category_id, :min_approvals_to_publish, :max_rejections_before_block, :min_required_reviews,
	:allow_admin_override, :review_deadline_hours, :require_changes_comment, :require_reject_comment, :updated_at)
ON CONFLICT (category_id) DO UPDATE SET
	min_approvals_to_publish = EXCLUDED.min_approvals_to_publish,
	max_rejections_before_block = EXCLUDED.max_rejections_before_block,
	min_required_reviews = EXCLUDED.min_required_reviews,
	allow_admin_override = EXCLUDED.allow_admin_override,
	review_deadline_hours = EXCLUDED.review_deadline_hours,
	require_changes_comment = EXCLUDED.require_changes_comment,
	require_reject_comment = EXCLUDED.require_reject_comment,
	updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, policy); err != nil {
		return fmt.Errorf("upsert category policy: %w", err)
	}
	return nil
}
