package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Burkhanovich/article-site/internal/models"
)

const assignmentColumns = `id, article_id, reviewer_id, assigned_by, status, review_comment, assigned_at, reviewed_at, updated_at`

// AssignmentRepository persists article level reviewer assignments.
type AssignmentRepository struct {
	db DBTX
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// GetOrCreate returns the assignment for (article, reviewer), inserting a pending one when absent.
// created reports whether this call inserted the row.
func (r *AssignmentRepository) GetOrCreate(ctx context.Context, articleID, reviewerID string, assignedBy *string, now time.Time) (*models.ReviewerAssignment, bool, error) {
	const insert = `INSERT INTO reviewer_assignments (id, article_id, reviewer_id, assigned_by, status, assigned_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (article_id, reviewer_id) DO NOTHING`
	result, err := r.db.ExecContext(ctx, insert, uuid.NewString(), articleID, reviewerID, assignedBy, models.AssignmentStatusPending, now.UTC())
	if err != nil {
		return nil, false, fmt.Errorf("insert reviewer assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("check reviewer assignment rows: %w", err)
	}

	var assignment models.ReviewerAssignment
	query := `SELECT ` + assignmentColumns + ` FROM reviewer_assignments WHERE article_id = $1 AND reviewer_id = $2`
	if err := r.db.GetContext(ctx, &assignment, query, articleID, reviewerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("get reviewer assignment: %w", err)
	}
	return &assignment, affected > 0, nil
}

// Update persists status, comment and review timestamp.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.ReviewerAssignment) error {
	const query = `UPDATE reviewer_assignments SET status = :status, review_comment = :review_comment,
	reviewed_at = :reviewed_at, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, assignment)
	if err != nil {
		return fmt.Errorf("update reviewer assignment: %w", err)
	}
	return expectAffected(result, "reviewer assignment")
}

// ListByArticle returns the article's assignments, newest first.
func (r *AssignmentRepository) ListByArticle(ctx context.Context, articleID string) ([]models.ReviewerAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM reviewer_assignments WHERE article_id = $1 ORDER BY assigned_at DESC`
	assignments := []models.ReviewerAssignment{}
	if err := r.db.SelectContext(ctx, &assignments, query, articleID); err != nil {
		return nil, fmt.Errorf("list reviewer assignments: %w", err)
	}
	return assignments, nil
}

// ListByReviewer returns a reviewer's assignments in the given statuses.
func (r *AssignmentRepository) ListByReviewer(ctx context.Context, reviewerID string, status models.AssignmentStatus) ([]models.ReviewerAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM reviewer_assignments WHERE reviewer_id = $1 AND status = $2 ORDER BY assigned_at`
	assignments := []models.ReviewerAssignment{}
	if err := r.db.SelectContext(ctx, &assignments, query, reviewerID, status); err != nil {
		return nil, fmt.Errorf("list reviewer assignments by reviewer: %w", err)
	}
	return assignments, nil
}

// ResetForArticle returns every assignment of the article to PENDING and clears reviewed_at.
func (r *AssignmentRepository) ResetForArticle(ctx context.Context, articleID string, now time.Time) (int64, error) {
	const query = `UPDATE reviewer_assignments SET status = $2, reviewed_at = NULL, updated_at = $3 WHERE article_id = $1`
	result, err := r.db.ExecContext(ctx, query, articleID, models.AssignmentStatusPending, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("reset reviewer assignments: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check reset rows: %w", err)
	}
	return rows, nil
}
