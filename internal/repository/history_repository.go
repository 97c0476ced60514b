package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
)

// HistoryRepository is the append-only audit log of status transitions. It has no update or delete.
type HistoryRepository struct {
	db DBTX
}

// NewHistoryRepository constructs the repository.
func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append writes one audit row.
func (r *HistoryRepository) Append(ctx context.Context, entry *models.ArticleStatusHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `INSERT INTO article_status_history (id, article_id, from_status, to_status, changed_by, reason, changed_at)
VALUES (:id, :article_id, :from_status, :to_status, :changed_by, :reason, :changed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("append status history: %w", err)
	}
	return nil
}

// ListByArticle returns the article's audit rows, newest first unless ascending is set.
func (r *HistoryRepository) ListByArticle(ctx context.Context, articleID string, ascending bool) ([]models.ArticleStatusHistory, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := fmt.Sprintf(`SELECT id, article_id, from_status, to_status, changed_by, reason, changed_at
FROM article_status_history WHERE article_id = $1 ORDER BY changed_at %s, id %s`, order, order)
	entries := []models.ArticleStatusHistory{}
	if err := r.db.SelectContext(ctx, &entries, query, articleID); err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	return entries, nil
}
