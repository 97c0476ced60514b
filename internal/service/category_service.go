package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

// CategoryTxRunner runs reviewer pool changes in one transaction.
type CategoryTxRunner interface {
	WithinCategoryTx(ctx context.Context, fn func(CategoryWriter) error) error
}

type categoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	GetPolicy(ctx context.Context, categoryID string) (*models.CategoryPolicy, error)
	UpsertPolicy(ctx context.Context, policy *models.CategoryPolicy) error
}

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	Slug        string
	Name        models.LocalizedText
	Description string
	IsActive    bool
}

// PolicyInput carries the thresholds an administrator sets for a category.
type PolicyInput struct {
	MinApprovalsToPublish    int
	MaxRejectionsBeforeBlock int
	MinRequiredReviews       int
	AllowAdminOverride       bool
	ReviewDeadlineHours      *int
	RequireChangesComment    bool
	RequireRejectComment     bool
}

// CategoryPolicyView is the effective policy of a category and whether it was stored or defaulted.
type CategoryPolicyView struct {
	models.CategoryPolicy
	IsDefault bool `json:"is_default"`
}

// CategoryService manages categories, their reviewer pools and review policies.
type CategoryService struct {
	runner CategoryTxRunner
	repo   categoryStore
	users  userFinder
	sender notificationSender
	logger *zap.Logger
	now    func() time.Time
}

// NewCategoryService constructs a CategoryService. sender may be nil.
func NewCategoryService(runner CategoryTxRunner, repo categoryStore, users userFinder, sender notificationSender, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{runner: runner, repo: repo, users: users, sender: sender, logger: logger, now: time.Now}
}

// Create adds a category, or refreshes the one with the same slug.
func (s *CategoryService) Create(ctx context.Context, actorID string, in CategoryInput) (*models.Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	name := models.LocalizedText{}
	for lang, v := range in.Name {
		if !supportedLanguage(lang) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported language %q", lang))
		}
		if v = strings.TrimSpace(v); v != "" {
			name[lang] = v
		}
	}
	if name[models.DefaultLanguage] == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("name in %q is required", models.DefaultLanguage))
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(name.Get(models.LanguageEnglish))
	}
	if slug != Slugify(slug) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug may only contain lower-case letters, digits and hyphens")
	}

	category := &models.Category{
		Slug:        slug,
		Name:        name,
		Description: optionalString(in.Description),
		IsActive:    in.IsActive,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, internalErr(err, "failed to create category")
	}
	s.logger.Info("category saved", zap.String("category_id", category.ID), zap.String("slug", category.Slug))
	return category, nil
}

// List returns categories, optionally only the active ones.
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	categories, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, internalErr(err, "failed to list categories")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Get returns a category with its reviewer pool.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category not found", "failed to load category")
	}
	return category, nil
}

// SetReviewers replaces the reviewer pool. Reviewers new to the pool are notified.
func (s *CategoryService) SetReviewers(ctx context.Context, actorID, categoryID string, userIDs []string) (*models.Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	ids := uniqueStrings(userIDs)
	box := newOutbox(s.now().UTC())

	var category *models.Category
	err := s.runner.WithinCategoryTx(ctx, func(w CategoryWriter) error {
		current, err := w.GetCategory(ctx, categoryID)
		if err != nil {
			return notFoundOr(err, "category not found", "failed to load category")
		}
		users, err := w.FindUsers(ctx, ids)
		if err != nil {
			return internalErr(err, "failed to load reviewers")
		}
		if len(users) != len(ids) {
			return appErrors.Clone(appErrors.ErrNotFound, "one or more reviewers do not exist")
		}
		added := make([]models.User, 0, len(users))
		for i := range users {
			if !users[i].IsReviewer() {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("user %s is not a reviewer", users[i].Username))
			}
			if !current.HasReviewer(users[i].ID) {
				added = append(added, users[i])
			}
		}
		if err := w.ReplaceCategoryReviewers(ctx, categoryID, ids); err != nil {
			return internalErr(err, "failed to update reviewers")
		}
		box.reviewerAssigned(current, added)
		if err := box.flush(ctx, w); err != nil {
			return internalErr(err, "failed to record notifications")
		}
		current.ReviewerIDs = ids
		category = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category reviewers updated",
		zap.String("category_id", categoryID),
		zap.Int("reviewers", len(ids)),
		zap.Int("added", len(box.deliveries)))
	if s.sender != nil && len(box.deliveries) > 0 {
		s.sender.Dispatch(ctx, box.deliveries)
	}
	return category, nil
}

// Policy returns the effective policy, falling back to defaults when none is stored.
func (s *CategoryService) Policy(ctx context.Context, categoryID string) (*CategoryPolicyView, error) {
	if _, err := s.Get(ctx, categoryID); err != nil {
		return nil, err
	}
	stored, err := s.repo.GetPolicy(ctx, categoryID)
	if err != nil {
		return nil, internalErr(err, "failed to load category policy")
	}
	return &CategoryPolicyView{
		CategoryPolicy: workflow.EffectivePolicy(stored, categoryID),
		IsDefault:      stored == nil,
	}, nil
}

// UpsertPolicy stores the thresholds for a category.
func (s *CategoryService) UpsertPolicy(ctx context.Context, actorID, categoryID string, in PolicyInput) (*CategoryPolicyView, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validatePolicy(in); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, categoryID); err != nil {
		return nil, err
	}

	policy := &models.CategoryPolicy{
		CategoryID:               categoryID,
		MinApprovalsToPublish:    in.MinApprovalsToPublish,
		MaxRejectionsBeforeBlock: in.MaxRejectionsBeforeBlock,
		MinRequiredReviews:       in.MinRequiredReviews,
		AllowAdminOverride:       in.AllowAdminOverride,
		ReviewDeadlineHours:      in.ReviewDeadlineHours,
		RequireChangesComment:    in.RequireChangesComment,
		RequireRejectComment:     in.RequireRejectComment,
	}
	if err := s.repo.UpsertPolicy(ctx, policy); err != nil {
		return nil, internalErr(err, "failed to save category policy")
	}
	s.logger.Info("category policy saved",
		zap.String("category_id", categoryID),
		zap.Int("min_approvals", policy.MinApprovalsToPublish),
		zap.Int("max_rejections", policy.MaxRejectionsBeforeBlock),
		zap.Int("min_reviews", policy.MinRequiredReviews))
	return &CategoryPolicyView{CategoryPolicy: *policy}, nil
}

func validatePolicy(in PolicyInput) error {
	switch {
	case in.MinApprovalsToPublish < 0:
		return appErrors.Clone(appErrors.ErrValidation, "min_approvals_to_publish must not be negative")
	case in.MaxRejectionsBeforeBlock < 0:
		return appErrors.Clone(appErrors.ErrValidation, "max_rejections_before_block must not be negative")
	case in.MinRequiredReviews < 0:
		return appErrors.Clone(appErrors.ErrValidation, "min_required_reviews must not be negative")
	case in.ReviewDeadlineHours != nil && *in.ReviewDeadlineHours <= 0:
		return appErrors.Clone(appErrors.ErrValidation, "review_deadline_hours must be positive")
	}
	return nil
}

func (s *CategoryService) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return notFoundOr(err, "user not found", "failed to load user")
	}
	if !workflow.Can(actor, workflow.ActionAdminister, workflow.Resource{}) {
		return appErrors.Clone(appErrors.ErrPermissionDenied, "admin access required")
	}
	return nil
}
