package repository

import (
	"context"
	"time"

	"github.com/Burkhanovich/article-site/internal/models"
)

// LockArticle loads an article with SELECT ... FOR UPDATE.
func (tx *Tx) LockArticle(ctx context.Context, id string) (*models.Article, error) {
	return tx.Articles.GetForUpdate(ctx, id)
}

// SaveArticleStatus writes the new status only if the row still holds expected; a lost race yields sql.ErrNoRows.
func (tx *Tx) SaveArticleStatus(ctx context.Context, article *models.Article, expected models.ArticleStatus) error {
	return tx.Articles.UpdateStatus(ctx, article, expected)
}

// AppendHistory records one accepted transition.
func (tx *Tx) AppendHistory(ctx context.Context, entry *models.ArticleStatusHistory) error {
	return tx.History.Append(ctx, entry)
}

// FindUser returns a user by id.
func (tx *Tx) FindUser(ctx context.Context, id string) (*models.User, error) {
	return tx.Users.FindByID(ctx, id)
}

// FindUsers returns the users matching ids.
func (tx *Tx) FindUsers(ctx context.Context, ids []string) ([]models.User, error) {
	return tx.Users.FindByIDs(ctx, ids)
}

// ListAdmins returns active admins and superusers.
func (tx *Tx) ListAdmins(ctx context.Context) ([]models.User, error) {
	return tx.Users.ListAdmins(ctx)
}

// CategoriesByIDs returns the categories matching ids.
func (tx *Tx) CategoriesByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	return tx.Categories.ListByIDs(ctx, ids)
}

// CategoryPolicy returns the stored policy, or nil when the category uses defaults.
func (tx *Tx) CategoryPolicy(ctx context.Context, categoryID string) (*models.CategoryPolicy, error) {
	return tx.Categories.GetPolicy(ctx, categoryID)
}

// GetOrCreateAssignment returns the reviewer assignment and whether it was just created.
func (tx *Tx) GetOrCreateAssignment(ctx context.Context, articleID, reviewerID string, assignedBy *string, now time.Time) (*models.ReviewerAssignment, bool, error) {
	return tx.Assignments.GetOrCreate(ctx, articleID, reviewerID, assignedBy, now)
}

// SaveAssignment persists an assignment decision.
func (tx *Tx) SaveAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error {
	return tx.Assignments.Update(ctx, assignment)
}

// ListAssignments returns the assignments of an article.
func (tx *Tx) ListAssignments(ctx context.Context, articleID string) ([]models.ReviewerAssignment, error) {
	return tx.Assignments.ListByArticle(ctx, articleID)
}

// ResetAssignments puts every assignment of an article back to PENDING.
func (tx *Tx) ResetAssignments(ctx context.Context, articleID string, now time.Time) (int64, error) {
	return tx.Assignments.ResetForArticle(ctx, articleID, now)
}

// UpsertReview inserts or replaces the review for its (article, reviewer, category).
func (tx *Tx) UpsertReview(ctx context.Context, review *models.Review) error {
	return tx.Reviews.Upsert(ctx, review)
}

// ReviewsForArticle returns every review of an article.
func (tx *Tx) ReviewsForArticle(ctx context.Context, articleID string) ([]models.Review, error) {
	return tx.Reviews.ListByArticle(ctx, articleID)
}

// CreateNotifications inserts in-app notifications in one statement.
func (tx *Tx) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	return tx.Notifications.CreateBatch(ctx, notifications)
}

// GetCategory returns a category by id.
func (tx *Tx) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return tx.Categories.GetByID(ctx, id)
}

// ReplaceCategoryReviewers sets the reviewer pool of a category.
func (tx *Tx) ReplaceCategoryReviewers(ctx context.Context, categoryID string, userIDs []string) error {
	return tx.Categories.SetReviewers(ctx, categoryID, userIDs)
}
