package models

import "time"

// Category is a topical bucket with its own reviewer pool and policy.
type Category struct {
	ID          string        `db:"id" json:"id"`
	Slug        string        `db:"slug" json:"slug"`
	Name        LocalizedText `db:"name" json:"name"`
	Description *string       `db:"description" json:"description,omitempty"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`

	ReviewerIDs []string `db:"-" json:"reviewer_ids"`
}

// HasReviewer reports whether userID belongs to the category reviewer pool.
func (c *Category) HasReviewer(userID string) bool {
	for _, id := range c.ReviewerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CategoryPolicy holds per-category review thresholds.
type CategoryPolicy struct {
	CategoryID               string    `db:"category_id" json:"category_id"`
	MinApprovalsToPublish    int       `db:"min_approvals_to_publish" json:"min_approvals_to_publish"`
	MaxRejectionsBeforeBlock int       `db:"max_rejections_before_block" json:"max_rejections_before_block"`
	MinRequiredReviews       int       `db:"min_required_reviews" json:"min_required_reviews"`
	AllowAdminOverride       bool      `db:"allow_admin_override" json:"allow_admin_override"`
	ReviewDeadlineHours      *int      `db:"review_deadline_hours" json:"review_deadline_hours,omitempty"`
	RequireChangesComment    bool      `db:"require_changes_comment" json:"require_changes_comment"`
	RequireRejectComment     bool      `db:"require_reject_comment" json:"require_reject_comment"`
	UpdatedAt                time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultCategoryPolicy returns the thresholds applied when a category has no stored policy.
func DefaultCategoryPolicy(categoryID string) CategoryPolicy {
	return CategoryPolicy{
		CategoryID:               categoryID,
		MinApprovalsToPublish:    2,
		MaxRejectionsBeforeBlock: 1,
		MinRequiredReviews:       2,
		AllowAdminOverride:       true,
		RequireChangesComment:    true,
		RequireRejectComment:     true,
	}
}
