package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

// WorkflowTx is the transactional view the workflow operates on. *repository.Tx satisfies it.
type WorkflowTx interface {
	LockArticle(ctx context.Context, id string) (*models.Article, error)
	SaveArticleStatus(ctx context.Context, article *models.Article, expected models.ArticleStatus) error
	AppendHistory(ctx context.Context, entry *models.ArticleStatusHistory) error
	FindUser(ctx context.Context, id string) (*models.User, error)
	FindUsers(ctx context.Context, ids []string) ([]models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
	CategoriesByIDs(ctx context.Context, ids []string) ([]models.Category, error)
	CategoryPolicy(ctx context.Context, categoryID string) (*models.CategoryPolicy, error)
	GetOrCreateAssignment(ctx context.Context, articleID, reviewerID string, assignedBy *string, now time.Time) (*models.ReviewerAssignment, bool, error)
	SaveAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error
	ListAssignments(ctx context.Context, articleID string) ([]models.ReviewerAssignment, error)
	ResetAssignments(ctx context.Context, articleID string, now time.Time) (int64, error)
	UpsertReview(ctx context.Context, review *models.Review) error
	ReviewsForArticle(ctx context.Context, articleID string) ([]models.Review, error)
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
}

// TxRunner runs fn in one all-or-nothing transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(WorkflowTx) error) error
}

type notificationSender interface {
	Dispatch(ctx context.Context, deliveries []Delivery)
}

type statsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

// errAbort rolls back an operation that ended in a business rule failure.
var errAbort = errors.New("workflow operation aborted")

// CategoryReviewInput carries a reviewer's decision for one category of an article.
type CategoryReviewInput struct {
	ArticleID  string
	ReviewerID string
	CategoryID string
	Decision   models.ReviewDecision
	Comment    string
}

// WorkflowService runs the editorial workflow operations. Each operation locks the article,
// checks permission and status, applies the transition, records history and notifications in
// one transaction, then dispatches email and real-time events after commit.
type WorkflowService struct {
	runner  TxRunner
	sender  notificationSender
	stats   statsInvalidator
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// WorkflowOption customises the workflow service.
type WorkflowOption func(*WorkflowService)

// WithWorkflowClock overrides the time source.
func WithWorkflowClock(now func() time.Time) WorkflowOption {
	return func(s *WorkflowService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithWorkflowMetrics records transition and failure counters.
func WithWorkflowMetrics(metrics *MetricsService) WorkflowOption {
	return func(s *WorkflowService) {
		s.metrics = metrics
	}
}

// WithStatsInvalidator drops cached dashboard stats after every accepted transition.
func WithStatsInvalidator(inv statsInvalidator) WorkflowOption {
	return func(s *WorkflowService) {
		s.stats = inv
	}
}

// NewWorkflowService constructs the workflow service.
func NewWorkflowService(runner TxRunner, sender notificationSender, logger *zap.Logger, opts ...WorkflowOption) *WorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &WorkflowService{
		runner: runner,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type operation struct {
	name    string
	tx      WorkflowTx
	actor   *models.User
	article *models.Article
	author  *models.User
	now     time.Time
	out     *outbox
	moves   []models.ArticleStatusHistory
}

type operationFunc func(ctx context.Context, op *operation) (*workflow.Result, error)

func (s *WorkflowService) execute(ctx context.Context, name, articleID, actorID string, fn operationFunc) (*workflow.Result, error) {
	now := s.now().UTC()
	var (
		result *workflow.Result
		op     *operation
	)
	err := s.runner.WithinTx(ctx, func(tx WorkflowTx) error {
		article, err := tx.LockArticle(ctx, articleID)
		if err != nil {
			return notFoundOr(err, "article not found", "failed to load article")
		}
		actor, err := tx.FindUser(ctx, actorID)
		if err != nil {
			return notFoundOr(err, "user not found", "failed to load user")
		}
		op = &operation{name: name, tx: tx, actor: actor, article: article, now: now, out: newOutbox(now)}

		result, err = fn(ctx, op)
		if err != nil {
			return err
		}
		if !result.OK {
			return errAbort
		}
		if err := op.out.flush(ctx, tx); err != nil {
			return internalErr(err, "failed to store notifications")
		}
		return nil
	})
	if err != nil && !errors.Is(err, errAbort) {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, internalErr(err, "workflow transaction failed")
	}

	if !result.OK {
		s.metrics.RecordOperationFailure(name, result.Code)
		s.logger.Debug("workflow operation refused",
			zap.String("operation", name),
			zap.String("article_id", articleID),
			zap.String("actor_id", actorID),
			zap.String("code", result.Code),
			zap.String("reason", result.Message))
		return result, nil
	}

	for _, move := range op.moves {
		s.metrics.RecordTransition(move.FromStatus, move.ToStatus)
		s.logger.Info("article status changed",
			zap.String("operation", name),
			zap.String("article_id", move.ArticleID),
			zap.String("from", string(move.FromStatus)),
			zap.String("to", string(move.ToStatus)),
			zap.String("actor_id", actorID))
	}
	if len(op.moves) > 0 && s.stats != nil {
		s.stats.InvalidateStats(ctx)
	}
	if s.sender != nil && len(op.out.deliveries) > 0 {
		s.sender.Dispatch(ctx, op.out.deliveries)
	}
	return result, nil
}

// move applies change through the status machine and persists it with a compare-and-swap on the
// previous status. A nil result means the transition was recorded.
func (s *WorkflowService) move(ctx context.Context, op *operation, change workflow.Change) (*workflow.Result, error) {
	from := op.article.Status
	change.ActorID = op.actor.ID
	entry, err := workflow.Apply(op.article, change, op.now)
	if err != nil {
		return workflow.Ineligible(appErrors.FromError(err).Message), nil
	}
	if err := op.tx.SaveArticleStatus(ctx, op.article, from); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return workflow.Failed(appErrors.ErrConflict.Code, "Article was changed by another request. Reload and try again."), nil
		}
		return nil, internalErr(err, "failed to update article status")
	}
	if err := op.tx.AppendHistory(ctx, entry); err != nil {
		return nil, internalErr(err, "failed to record status history")
	}
	op.moves = append(op.moves, *entry)
	return nil, nil
}

// SubmitArticle sends a draft (or an article with requested changes) to the admins.
func (s *WorkflowService) SubmitArticle(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
	return s.execute(ctx, "submit_article", articleID, userID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionSubmitArticle, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only the author can submit this article."), nil
		}
		from := op.article.Status
		if from != models.ArticleStatusDraft && from != models.ArticleStatusChangesRequested {
			return workflow.Ineligible("Article cannot be submitted in its current status."), nil
		}
		if len(op.article.CategoryIDs) == 0 {
			return workflow.Invalid("Article has no categories assigned."), nil
		}

		resubmission := from == models.ArticleStatusChangesRequested
		reason := "Author submitted"
		if resubmission {
			reason = "Author resubmitted"
		}
		if res, err := s.move(ctx, op, workflow.Change{To: models.ArticleStatusPendingAdmin, Reason: reason}); res != nil || err != nil {
			return res, err
		}

		admins, err := op.tx.ListAdmins(ctx)
		if err != nil {
			return nil, internalErr(err, "failed to load admins")
		}
		op.out.articleSubmitted(op.article, op.actor, admins)

		if resubmission {
			reviewers, err := s.assignedReviewers(ctx, op)
			if err != nil {
				return nil, err
			}
			op.out.articleResubmitted(op.article, mergeUsers(reviewers, admins))
			if _, err := op.tx.ResetAssignments(ctx, op.article.ID, op.now); err != nil {
				return nil, internalErr(err, "failed to reset reviewer assignments")
			}
		}
		return workflow.Succeeded(op.article.Status, "Article submitted successfully."), nil
	})
}

// SubmitAndAutoPublish publishes an article straight from CHANGES_REQUESTED when its author resubmits it.
func (s *WorkflowService) SubmitAndAutoPublish(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
	return s.execute(ctx, "submit_and_auto_publish", articleID, userID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionSubmitArticle, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only the author can submit this article."), nil
		}
		if op.article.Status != models.ArticleStatusChangesRequested {
			return workflow.Ineligible("Auto-publish only works when resubmitting after changes requested."), nil
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:     models.ArticleStatusPublished,
			Reason: "Auto-published after author resubmission",
		}); res != nil || err != nil {
			return res, err
		}
		if _, err := op.tx.ResetAssignments(ctx, op.article.ID, op.now); err != nil {
			return nil, internalErr(err, "failed to reset reviewer assignments")
		}
		if err := s.notifyPublished(ctx, op); err != nil {
			return nil, err
		}
		return workflow.Succeeded(op.article.Status, "Article has been published successfully."), nil
	})
}

// SendToReview moves a pending article into review. With explicit reviewers it assigns them;
// otherwise the reviewer pools of the article's categories are notified.
func (s *WorkflowService) SendToReview(ctx context.Context, articleID, adminID string, reviewerIDs []string, note string) (*workflow.Result, error) {
	return s.execute(ctx, "send_to_review", articleID, adminID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionAdminister, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only administrators can send articles to review."), nil
		}
		if op.article.Status != models.ArticleStatusPendingAdmin {
			return workflow.Ineligible("Only pending articles can be sent to review."), nil
		}
		reviewers, res, err := s.loadReviewers(ctx, op, reviewerIDs)
		if res != nil || err != nil {
			return res, err
		}

		reason := strings.TrimSpace(note)
		if reason == "" {
			reason = "Sent to review"
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:     models.ArticleStatusInReview,
			Reason: reason,
			Note:   optionalString(note),
		}); res != nil || err != nil {
			return res, err
		}

		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		assigned := 0
		if len(reviewers) > 0 {
			assigned, err = s.assign(ctx, op, author, reviewers)
			if err != nil {
				return nil, err
			}
		} else if err := s.notifyCategoryReviewers(ctx, op, author); err != nil {
			return nil, err
		}

		result := workflow.Succeeded(op.article.Status, "Article sent to review successfully.")
		result.Assigned = assigned
		return result, nil
	})
}

// AssignReviewers get-or-creates an assignment per reviewer; only new assignees are notified.
func (s *WorkflowService) AssignReviewers(ctx context.Context, articleID, adminID string, reviewerIDs []string) (*workflow.Result, error) {
	return s.execute(ctx, "assign_reviewers", articleID, adminID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionAdminister, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only administrators can assign reviewers."), nil
		}
		status := op.article.Status
		if status != models.ArticleStatusPendingAdmin && status != models.ArticleStatusInReview {
			return workflow.Ineligible("Reviewers can only be assigned to pending or in-review articles."), nil
		}
		reviewers, res, err := s.loadReviewers(ctx, op, reviewerIDs)
		if res != nil || err != nil {
			return res, err
		}
		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		count, err := s.assign(ctx, op, author, reviewers)
		if err != nil {
			return nil, err
		}
		result := workflow.Succeeded(op.article.Status, fmt.Sprintf("%d reviewer(s) assigned.", count))
		result.Assigned = count
		return result, nil
	})
}

// ReviewerApprove records an approval and publishes the article immediately when it is
// IN_REVIEW or PENDING_ADMIN. Category policy thresholds are not consulted here.
func (s *WorkflowService) ReviewerApprove(ctx context.Context, articleID, reviewerID, comment string) (*workflow.Result, error) {
	return s.execute(ctx, "reviewer_approve", articleID, reviewerID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionReview, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only reviewers can review articles."), nil
		}
		note := optionalString(comment)
		if err := s.markAssignment(ctx, op, models.ReviewDecisionApprove, note); err != nil {
			return nil, err
		}
		if err := s.reviewFirstCategory(ctx, op, models.ReviewDecisionApprove, note); err != nil {
			return nil, err
		}

		status := op.article.Status
		if status != models.ArticleStatusInReview && status != models.ArticleStatusPendingAdmin {
			return workflow.Succeeded(status, "Article approved."), nil
		}
		reason := "Approved"
		if note != nil {
			reason = *note
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:     models.ArticleStatusPublished,
			Reason: "Auto-published after reviewer approval: " + reason,
		}); res != nil || err != nil {
			return res, err
		}
		if err := s.notifyPublished(ctx, op); err != nil {
			return nil, err
		}
		return workflow.Succeeded(op.article.Status, "Article approved and published."), nil
	})
}

// ReviewerRequestChanges records a change request; the comment is mandatory.
func (s *WorkflowService) ReviewerRequestChanges(ctx context.Context, articleID, reviewerID, comment string) (*workflow.Result, error) {
	return s.execute(ctx, "reviewer_request_changes", articleID, reviewerID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionReview, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only reviewers can review articles."), nil
		}
		note := optionalString(comment)
		if note == nil {
			return workflow.Invalid("Comment is required when requesting changes."), nil
		}
		if err := s.markAssignment(ctx, op, models.ReviewDecisionChanges, note); err != nil {
			return nil, err
		}
		if op.article.Status == models.ArticleStatusInReview {
			if res, err := s.move(ctx, op, workflow.Change{
				To:     models.ArticleStatusChangesRequested,
				Reason: "Changes requested: " + truncate(*note, 100),
			}); res != nil || err != nil {
				return res, err
			}
		}
		if err := s.reviewFirstCategory(ctx, op, models.ReviewDecisionChanges, note); err != nil {
			return nil, err
		}
		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		op.out.changesRequested(op.article, author, *note)
		return workflow.Succeeded(op.article.Status, "Changes requested from author."), nil
	})
}

// SubmitCategoryReview records a reviewer's decision for one category. It never publishes or
// rejects; an open change request moves an IN_REVIEW article to CHANGES_REQUESTED.
func (s *WorkflowService) SubmitCategoryReview(ctx context.Context, in CategoryReviewInput) (*workflow.Result, error) {
	return s.execute(ctx, "submit_category_review", in.ArticleID, in.ReviewerID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		categories, err := op.tx.CategoriesByIDs(ctx, []string{in.CategoryID})
		if err != nil {
			return nil, internalErr(err, "failed to load category")
		}
		if len(categories) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		category := categories[0]

		if !workflow.Can(op.actor, workflow.ActionReviewCategory, workflow.Resource{Article: op.article, Category: &category}) {
			return workflow.Denied("You are not allowed to review this category."), nil
		}
		if !op.article.HasCategory(category.ID) {
			return workflow.Invalid("Article is not assigned to this category."), nil
		}
		if !op.article.Reviewable() {
			return workflow.Ineligible("Article is not open for review."), nil
		}
		switch in.Decision {
		case models.ReviewDecisionApprove, models.ReviewDecisionChanges, models.ReviewDecisionReject:
		default:
			return workflow.Invalid("Unknown review decision."), nil
		}

		stored, err := op.tx.CategoryPolicy(ctx, category.ID)
		if err != nil {
			return nil, internalErr(err, "failed to load category policy")
		}
		policy := workflow.EffectivePolicy(stored, category.ID)
		note := optionalString(in.Comment)
		if note == nil && workflow.CommentRequired(policy, in.Decision) {
			return workflow.Invalid(fmt.Sprintf("A comment is required when the decision is %s.", in.Decision.Label())), nil
		}

		review := &models.Review{
			ID:         uuid.NewString(),
			ArticleID:  op.article.ID,
			ReviewerID: op.actor.ID,
			CategoryID: category.ID,
			Decision:   in.Decision,
			Comment:    note,
			CreatedAt:  op.now,
			UpdatedAt:  op.now,
		}
		if err := op.tx.UpsertReview(ctx, review); err != nil {
			return nil, internalErr(err, "failed to save review")
		}
		if err := s.markAssignment(ctx, op, in.Decision, note); err != nil {
			return nil, err
		}
		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		op.out.reviewReceived(op.article, author, in.Decision, categoryName(category), note)

		if op.article.Status == models.ArticleStatusInReview {
			reviews, err := op.tx.ReviewsForArticle(ctx, op.article.ID)
			if err != nil {
				return nil, internalErr(err, "failed to load reviews")
			}
			if hasOpenChangeRequest(reviews, op.article.CategoryIDs) {
				reason := "Changes requested by reviewer"
				if note != nil && in.Decision == models.ReviewDecisionChanges {
					reason = "Changes requested: " + truncate(*note, 100)
				}
				if res, err := s.move(ctx, op, workflow.Change{To: models.ArticleStatusChangesRequested, Reason: reason}); res != nil || err != nil {
					return res, err
				}
				feedback := ""
				if note != nil {
					feedback = *note
				}
				op.out.changesRequested(op.article, author, feedback)
			}
		}
		return workflow.Succeeded(op.article.Status, "Review submitted."), nil
	})
}

// PublishArticle is the admin's publish decision.
func (s *WorkflowService) PublishArticle(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error) {
	return s.execute(ctx, "publish_article", articleID, adminID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionAdminister, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only administrators can publish articles."), nil
		}
		if !adminDecidable(op.article.Status) {
			return workflow.Ineligible("Article cannot be published in its current status."), nil
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:            models.ArticleStatusPublished,
			Reason:        orDefault(note, "Published"),
			AdminDecision: true,
			Note:          optionalString(note),
		}); res != nil || err != nil {
			return res, err
		}
		if err := s.notifyPublished(ctx, op); err != nil {
			return nil, err
		}
		return workflow.Succeeded(op.article.Status, "Article published successfully."), nil
	})
}

// RejectArticle is the admin's reject decision.
func (s *WorkflowService) RejectArticle(ctx context.Context, articleID, adminID, reason string) (*workflow.Result, error) {
	return s.execute(ctx, "reject_article", articleID, adminID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionAdminister, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only administrators can reject articles."), nil
		}
		if !adminDecidable(op.article.Status) {
			return workflow.Ineligible("Article cannot be rejected in its current status."), nil
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:            models.ArticleStatusRejected,
			Reason:        orDefault(reason, "Rejected"),
			AdminDecision: true,
			Note:          optionalString(reason),
		}); res != nil || err != nil {
			return res, err
		}
		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		op.out.rejected(op.article, author, strings.TrimSpace(reason))
		return workflow.Succeeded(op.article.Status, "Article rejected."), nil
	})
}

// RequestChangesFromAuthor sends the article back to its author.
func (s *WorkflowService) RequestChangesFromAuthor(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error) {
	return s.execute(ctx, "request_changes_from_author", articleID, adminID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionAdminister, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only administrators can request changes."), nil
		}
		status := op.article.Status
		if status != models.ArticleStatusPendingAdmin && status != models.ArticleStatusInReview {
			return workflow.Ineligible("Cannot request changes for article in its current status."), nil
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:     models.ArticleStatusChangesRequested,
			Reason: orDefault(note, "Changes requested"),
			Note:   optionalString(note),
		}); res != nil || err != nil {
			return res, err
		}
		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		op.out.changesRequested(op.article, author, strings.TrimSpace(note))
		return workflow.Succeeded(op.article.Status, "Changes requested from author."), nil
	})
}

// ResetToDraft lets the author take a rejected, returned or pending article back to DRAFT.
func (s *WorkflowService) ResetToDraft(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
	return s.execute(ctx, "reset_to_draft", articleID, userID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionSubmitArticle, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only the author can reset this article."), nil
		}
		switch op.article.Status {
		case models.ArticleStatusRejected, models.ArticleStatusChangesRequested, models.ArticleStatusPendingAdmin:
		default:
			return workflow.Ineligible("Article cannot be reset to draft in its current status."), nil
		}
		if res, err := s.move(ctx, op, workflow.Change{To: models.ArticleStatusDraft, Reason: "Reset to draft by author"}); res != nil || err != nil {
			return res, err
		}
		return workflow.Succeeded(op.article.Status, "Article moved back to draft."), nil
	})
}

// UnpublishArticle withdraws a published article to DRAFT.
func (s *WorkflowService) UnpublishArticle(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error) {
	return s.execute(ctx, "unpublish_article", articleID, adminID, func(ctx context.Context, op *operation) (*workflow.Result, error) {
		if !workflow.Can(op.actor, workflow.ActionAdminister, workflow.Resource{Article: op.article}) {
			return workflow.Denied("Only administrators can unpublish articles."), nil
		}
		if op.article.Status != models.ArticleStatusPublished {
			return workflow.Ineligible("Only published articles can be unpublished."), nil
		}
		if res, err := s.move(ctx, op, workflow.Change{
			To:            models.ArticleStatusDraft,
			Reason:        orDefault(note, "Unpublished"),
			AdminDecision: true,
			Note:          optionalString(note),
		}); res != nil || err != nil {
			return res, err
		}
		author, err := s.author(ctx, op)
		if err != nil {
			return nil, err
		}
		op.out.statusChanged(op.article, author, models.ArticleStatusPublished, models.ArticleStatusDraft, strings.TrimSpace(note))
		return workflow.Succeeded(op.article.Status, "Article unpublished."), nil
	})
}

func (s *WorkflowService) author(ctx context.Context, op *operation) (*models.User, error) {
	if op.author != nil {
		return op.author, nil
	}
	if op.actor.ID == op.article.AuthorID {
		op.author = op.actor
		return op.author, nil
	}
	author, err := op.tx.FindUser(ctx, op.article.AuthorID)
	if err != nil {
		return nil, notFoundOr(err, "author not found", "failed to load author")
	}
	op.author = author
	return author, nil
}

func (s *WorkflowService) assignedReviewers(ctx context.Context, op *operation) ([]models.User, error) {
	assignments, err := op.tx.ListAssignments(ctx, op.article.ID)
	if err != nil {
		return nil, internalErr(err, "failed to load reviewer assignments")
	}
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ReviewerID)
	}
	users, err := op.tx.FindUsers(ctx, ids)
	if err != nil {
		return nil, internalErr(err, "failed to load reviewers")
	}
	return users, nil
}

// loadReviewers resolves reviewer ids, failing with NotFound for unknown ids and a validation
// result for users who cannot review.
func (s *WorkflowService) loadReviewers(ctx context.Context, op *operation, ids []string) ([]models.User, *workflow.Result, error) {
	unique := uniqueStrings(ids)
	if len(unique) == 0 {
		return nil, nil, nil
	}
	users, err := op.tx.FindUsers(ctx, unique)
	if err != nil {
		return nil, nil, internalErr(err, "failed to load reviewers")
	}
	if len(users) != len(unique) {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "reviewer not found")
	}
	for i := range users {
		if !workflow.Can(&users[i], workflow.ActionReview, workflow.Resource{}) {
			return nil, workflow.Invalid(fmt.Sprintf("User %s cannot review articles.", users[i].Username)), nil
		}
	}
	return users, nil, nil
}

func (s *WorkflowService) assign(ctx context.Context, op *operation, author *models.User, reviewers []models.User) (int, error) {
	assignedBy := op.actor.ID
	created := 0
	for _, reviewer := range reviewers {
		_, isNew, err := op.tx.GetOrCreateAssignment(ctx, op.article.ID, reviewer.ID, &assignedBy, op.now)
		if err != nil {
			return 0, internalErr(err, "failed to assign reviewer")
		}
		if isNew {
			created++
			op.out.articleAssigned(op.article, author, reviewer)
		}
	}
	return created, nil
}

// notifyCategoryReviewers notifies each reviewer in the article's category pools once, listing
// every article category they can review.
func (s *WorkflowService) notifyCategoryReviewers(ctx context.Context, op *operation, author *models.User) error {
	categories, err := op.tx.CategoriesByIDs(ctx, op.article.CategoryIDs)
	if err != nil {
		return internalErr(err, "failed to load categories")
	}
	var order []string
	names := make(map[string][]string)
	for _, category := range categories {
		if !category.IsActive {
			continue
		}
		for _, id := range category.ReviewerIDs {
			if _, ok := names[id]; !ok {
				order = append(order, id)
			}
			names[id] = append(names[id], categoryName(category))
		}
	}
	if len(order) == 0 {
		return nil
	}
	users, err := op.tx.FindUsers(ctx, order)
	if err != nil {
		return internalErr(err, "failed to load category reviewers")
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, id := range order {
		reviewer, ok := byID[id]
		if !ok || reviewer.Role != models.RoleReviewer {
			continue
		}
		op.out.articleForReview(op.article, author, reviewer, names[id])
	}
	return nil
}

func (s *WorkflowService) markAssignment(ctx context.Context, op *operation, decision models.ReviewDecision, comment *string) error {
	assignment, _, err := op.tx.GetOrCreateAssignment(ctx, op.article.ID, op.actor.ID, nil, op.now)
	if err != nil {
		return internalErr(err, "failed to load reviewer assignment")
	}
	switch decision {
	case models.ReviewDecisionApprove:
		assignment.MarkApproved(comment, op.now)
	case models.ReviewDecisionChanges:
		assignment.MarkChangesRequested(comment, op.now)
	case models.ReviewDecisionReject:
		assignment.MarkRejected(comment, op.now)
	}
	if err := op.tx.SaveAssignment(ctx, assignment); err != nil {
		return internalErr(err, "failed to update reviewer assignment")
	}
	return nil
}

// reviewFirstCategory upserts the reviewer's decision on the article's first category and tells
// the author. Articles without categories record no review.
func (s *WorkflowService) reviewFirstCategory(ctx context.Context, op *operation, decision models.ReviewDecision, comment *string) error {
	if len(op.article.CategoryIDs) == 0 {
		return nil
	}
	categoryID := op.article.CategoryIDs[0]
	review := &models.Review{
		ID:         uuid.NewString(),
		ArticleID:  op.article.ID,
		ReviewerID: op.actor.ID,
		CategoryID: categoryID,
		Decision:   decision,
		Comment:    comment,
		CreatedAt:  op.now,
		UpdatedAt:  op.now,
	}
	if err := op.tx.UpsertReview(ctx, review); err != nil {
		return internalErr(err, "failed to save review")
	}

	name := categoryID
	categories, err := op.tx.CategoriesByIDs(ctx, []string{categoryID})
	if err != nil {
		return internalErr(err, "failed to load category")
	}
	if len(categories) > 0 {
		name = categoryName(categories[0])
	}
	author, err := s.author(ctx, op)
	if err != nil {
		return err
	}
	op.out.reviewReceived(op.article, author, decision, name, comment)
	return nil
}

// notifyPublished tells the author, assigned reviewers and admins.
func (s *WorkflowService) notifyPublished(ctx context.Context, op *operation) error {
	author, err := s.author(ctx, op)
	if err != nil {
		return err
	}
	reviewers, err := s.assignedReviewers(ctx, op)
	if err != nil {
		return err
	}
	admins, err := op.tx.ListAdmins(ctx)
	if err != nil {
		return internalErr(err, "failed to load admins")
	}
	op.out.published(op.article, author, mergeUsers(reviewers, admins))
	return nil
}

func hasOpenChangeRequest(reviews []models.Review, categoryIDs []string) bool {
	for _, id := range categoryIDs {
		if workflow.CountReviews(reviews, id).ChangesRequested > 0 {
			return true
		}
	}
	return false
}

func adminDecidable(status models.ArticleStatus) bool {
	return status == models.ArticleStatusPendingAdmin ||
		status == models.ArticleStatusInReview ||
		status == models.ArticleStatusChangesRequested
}

func categoryName(category models.Category) string {
	if name := category.Name.Get(models.DefaultLanguage); name != "" {
		return name
	}
	return category.Slug
}

func notFoundOr(err error, missing, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, missing)
	}
	return internalErr(err, failure)
}

func internalErr(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
