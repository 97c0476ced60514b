package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
)

const reviewColumns = `id, article_id, reviewer_id, category_id, decision, comment, created_at, updated_at`

// ReviewRepository persists per-category reviews.
type ReviewRepository struct {
	db DBTX
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert records a decision, replacing any prior decision by the same reviewer for the same article category.
func (r *ReviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now
	const query = `INSERT INTO reviews (` + reviewColumns + `)
VALUES (:id, :article_id, :reviewer_id, :category_id, :decision, :comment, :created_at, :updated_at)
ON CONFLICT (article_id, reviewer_id, category_id) DO UPDATE SET
	decision = EXCLUDED.decision, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
RETURNING id, created_at`
	rows, err := sqlxNamedQuery(ctx, r.db, query, review)
	if err != nil {
		return fmt.Errorf("upsert review: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&review.ID, &review.CreatedAt); err != nil {
			return fmt.Errorf("scan review: %w", err)
		}
	}
	return rows.Err()
}

// ListByArticle returns every review recorded for an article.
func (r *ReviewRepository) ListByArticle(ctx context.Context, articleID string) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE article_id = $1 ORDER BY created_at`
	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, articleID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
