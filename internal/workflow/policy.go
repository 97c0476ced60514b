package workflow

import (
	"fmt"

	"github.com/Burkhanovich/article-site/internal/models"
)

// ReviewCounts partitions the reviews of one (article, category) pair by decision.
type ReviewCounts struct {
	Total            int `json:"total_reviews"`
	Approvals        int `json:"approvals"`
	Rejections       int `json:"rejections"`
	ChangesRequested int `json:"changes_requested"`
}

// Add folds one decision into the counts.
func (c *ReviewCounts) Add(decision models.ReviewDecision) {
	c.Total++
	switch decision {
	case models.ReviewDecisionApprove:
		c.Approvals++
	case models.ReviewDecisionReject:
		c.Rejections++
	case models.ReviewDecisionChanges:
		c.ChangesRequested++
	}
}

// CountReviews tallies the reviews recorded for categoryID.
func CountReviews(reviews []models.Review, categoryID string) ReviewCounts {
	var counts ReviewCounts
	for _, r := range reviews {
		if r.CategoryID == categoryID {
			counts.Add(r.Decision)
		}
	}
	return counts
}

// EffectivePolicy resolves the stored policy for a category, or the defaults when none exists.
func EffectivePolicy(stored *models.CategoryPolicy, categoryID string) models.CategoryPolicy {
	if stored == nil {
		return models.DefaultCategoryPolicy(categoryID)
	}
	return *stored
}

// CommentRequired reports whether the policy demands a comment for decision.
func CommentRequired(policy models.CategoryPolicy, decision models.ReviewDecision) bool {
	switch decision {
	case models.ReviewDecisionChanges:
		return policy.RequireChangesComment
	case models.ReviewDecisionReject:
		return policy.RequireRejectComment
	default:
		return false
	}
}

// CategoryReviewStatus is the policy verdict for one category of an article.
type CategoryReviewStatus struct {
	CategoryID string `json:"category_id"`
	ReviewCounts
	MeetsPolicy        bool   `json:"meets_policy"`
	IsBlocked          bool   `json:"is_blocked"`
	AllowAdminOverride bool   `json:"allow_admin_override"`
	Message            string `json:"message"`
}

// EvaluateCategory computes the policy verdict for one category. It has no side effects.
func EvaluateCategory(categoryID string, counts ReviewCounts, policy models.CategoryPolicy) CategoryReviewStatus {
	blocked := counts.Rejections > policy.MaxRejectionsBeforeBlock
	meets := counts.Total >= policy.MinRequiredReviews &&
		counts.Approvals >= policy.MinApprovalsToPublish &&
		!blocked &&
		counts.ChangesRequested == 0

	var message string
	switch {
	case blocked:
		message = fmt.Sprintf("Blocked: Too many rejections (%d > %d)", counts.Rejections, policy.MaxRejectionsBeforeBlock)
	case counts.ChangesRequested > 0:
		message = fmt.Sprintf("Changes requested by %d reviewer(s)", counts.ChangesRequested)
	case counts.Total < policy.MinRequiredReviews:
		message = fmt.Sprintf("Needs more reviews: %d/%d", counts.Total, policy.MinRequiredReviews)
	case counts.Approvals < policy.MinApprovalsToPublish:
		message = fmt.Sprintf("Needs more approvals: %d/%d", counts.Approvals, policy.MinApprovalsToPublish)
	case meets:
		message = "Ready for publishing"
	default:
		message = "Review in progress"
	}

	return CategoryReviewStatus{
		CategoryID:         categoryID,
		ReviewCounts:       counts,
		MeetsPolicy:        meets,
		IsBlocked:          blocked,
		AllowAdminOverride: policy.AllowAdminOverride,
		Message:            message,
	}
}
