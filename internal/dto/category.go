package dto

// CreateCategoryRequest creates a category. The slug defaults to the slugified English name.
type CreateCategoryRequest struct {
	Slug        string            `json:"slug" validate:"omitempty,max=120"`
	Name        map[string]string `json:"name" validate:"required,min=1,dive,keys,oneof=uz ru en,endkeys,max=200"`
	Description string            `json:"description" validate:"max=2000"`
	IsActive    *bool             `json:"is_active"`
}

// SetReviewersRequest replaces a category's reviewer pool.
type SetReviewersRequest struct {
	ReviewerIDs []string `json:"reviewer_ids" validate:"dive,required"`
}

// CategoryPolicyRequest upserts a category policy. Omitted booleans keep the default of true.
type CategoryPolicyRequest struct {
	MinApprovalsToPublish    int   `json:"min_approvals_to_publish" validate:"min=0"`
	MaxRejectionsBeforeBlock int   `json:"max_rejections_before_block" validate:"min=0"`
	MinRequiredReviews       int   `json:"min_required_reviews" validate:"min=0"`
	AllowAdminOverride       *bool `json:"allow_admin_override"`
	ReviewDeadlineHours      *int  `json:"review_deadline_hours" validate:"omitempty,min=1"`
	RequireChangesComment    *bool `json:"require_changes_comment"`
	RequireRejectComment     *bool `json:"require_reject_comment"`
}
