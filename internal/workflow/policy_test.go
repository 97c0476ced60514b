package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Burkhanovich/article-site/internal/models"
)

func policy(minReviews, minApprovals, maxRejections int) models.CategoryPolicy {
	p := models.DefaultCategoryPolicy("c1")
	p.MinRequiredReviews = minReviews
	p.MinApprovalsToPublish = minApprovals
	p.MaxRejectionsBeforeBlock = maxRejections
	return p
}

func TestEvaluateCategoryScenarios(t *testing.T) {
	p := policy(2, 2, 1)

	tests := []struct {
		name    string
		counts  ReviewCounts
		meets   bool
		blocked bool
		message string
	}{
		{
			name:    "one approval needs more reviews",
			counts:  ReviewCounts{Total: 1, Approvals: 1},
			message: "Needs more reviews: 1/2",
		},
		{
			name:    "two approvals and two rejections is blocked",
			counts:  ReviewCounts{Total: 4, Approvals: 2, Rejections: 2},
			blocked: true,
			message: "Blocked: Too many rejections (2 > 1)",
		},
		{
			name:    "two approvals and one rejection meets policy",
			counts:  ReviewCounts{Total: 3, Approvals: 2, Rejections: 1},
			meets:   true,
			message: "Ready for publishing",
		},
		{
			name:    "open change request blocks regardless of approvals",
			counts:  ReviewCounts{Total: 3, Approvals: 2, ChangesRequested: 1},
			message: "Changes requested by 1 reviewer(s)",
		},
		{
			name:    "enough reviews but too few approvals",
			counts:  ReviewCounts{Total: 2, Approvals: 1, Rejections: 1},
			message: "Needs more approvals: 1/2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status := EvaluateCategory("c1", tc.counts, p)
			assert.Equal(t, tc.meets, status.MeetsPolicy)
			assert.Equal(t, tc.blocked, status.IsBlocked)
			assert.Equal(t, tc.message, status.Message)
		})
	}
}

func TestEvaluateCategoryOneApprovalNeedsMoreApprovals(t *testing.T) {
	status := EvaluateCategory("c1", ReviewCounts{Total: 2, Approvals: 1, ChangesRequested: 0, Rejections: 1}, policy(1, 2, 1))
	assert.False(t, status.MeetsPolicy)
	assert.Equal(t, "Needs more approvals: 1/2", status.Message)
}

func TestEvaluateCategorySingleRejectionAtThreshold(t *testing.T) {
	reviews := []models.Review{{CategoryID: "c1", Decision: models.ReviewDecisionReject}}

	status := EvaluateCategory("c1", CountReviews(reviews, "c1"), policy(1, 1, 1))
	assert.False(t, status.IsBlocked)
	assert.False(t, status.MeetsPolicy)
	assert.Equal(t, "Needs more approvals: 0/1", status.Message)
}

func TestCountReviewsScopesByCategory(t *testing.T) {
	reviews := []models.Review{
		{CategoryID: "c1", Decision: models.ReviewDecisionApprove},
		{CategoryID: "c1", Decision: models.ReviewDecisionChanges},
		{CategoryID: "c2", Decision: models.ReviewDecisionReject},
	}
	assert.Equal(t, ReviewCounts{Total: 2, Approvals: 1, ChangesRequested: 1}, CountReviews(reviews, "c1"))
	assert.Equal(t, ReviewCounts{Total: 1, Rejections: 1}, CountReviews(reviews, "c2"))
}

func TestEffectivePolicyDefaults(t *testing.T) {
	p := EffectivePolicy(nil, "c9")
	assert.Equal(t, "c9", p.CategoryID)
	assert.Equal(t, 2, p.MinApprovalsToPublish)
	assert.Equal(t, 1, p.MaxRejectionsBeforeBlock)
	assert.Equal(t, 2, p.MinRequiredReviews)
	assert.True(t, p.AllowAdminOverride)
	assert.True(t, p.RequireChangesComment)
	assert.True(t, p.RequireRejectComment)

	stored := policy(0, 0, 0)
	assert.Equal(t, stored, EffectivePolicy(&stored, "c1"))
}

func TestCommentRequired(t *testing.T) {
	p := models.DefaultCategoryPolicy("c1")
	assert.False(t, CommentRequired(p, models.ReviewDecisionApprove))
	assert.True(t, CommentRequired(p, models.ReviewDecisionChanges))
	assert.True(t, CommentRequired(p, models.ReviewDecisionReject))

	p.RequireRejectComment = false
	assert.False(t, CommentRequired(p, models.ReviewDecisionReject))
}
