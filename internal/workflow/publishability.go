package workflow

import (
	"fmt"

	"github.com/Burkhanovich/article-site/internal/models"
)

// CategoryInput carries what the engine needs to evaluate one category of an article.
type CategoryInput struct {
	CategoryID string
	Policy     *models.CategoryPolicy
	Counts     ReviewCounts
}

// Publishability is the aggregate verdict across an article's categories.
type Publishability struct {
	Publishable         bool                   `json:"is_publishable"`
	CanAdminOverride    bool                   `json:"can_admin_override"`
	AnyBlocked          bool                   `json:"any_blocked"`
	HasChangesRequested bool                   `json:"has_changes_requested"`
	Categories          []CategoryReviewStatus `json:"category_statuses"`
	Message             string                 `json:"message"`
	Mode                models.ReviewMode      `json:"review_mode"`
}

// EvaluatePublishability combines per-category verdicts under the review mode.
// An article without categories is never publishable but always overridable.
func EvaluatePublishability(mode models.ReviewMode, inputs []CategoryInput) Publishability {
	if len(inputs) == 0 {
		return Publishability{
			CanAdminOverride: true,
			Categories:       []CategoryReviewStatus{},
			Message:          "Article has no categories assigned",
			Mode:             models.ReviewModeAllCategories,
		}
	}
	if mode != models.ReviewModeAnyCategory {
		mode = models.ReviewModeAllCategories
	}

	out := Publishability{
		CanAdminOverride: true,
		Categories:       make([]CategoryReviewStatus, 0, len(inputs)),
		Mode:             mode,
	}
	allMeet, anyMeet, met := true, false, 0
	for _, in := range inputs {
		policy := EffectivePolicy(in.Policy, in.CategoryID)
		status := EvaluateCategory(in.CategoryID, in.Counts, policy)
		out.Categories = append(out.Categories, status)

		if status.MeetsPolicy {
			anyMeet = true
			met++
		} else {
			allMeet = false
		}
		if status.IsBlocked {
			out.AnyBlocked = true
		}
		if status.ChangesRequested > 0 {
			out.HasChangesRequested = true
		}
		if !policy.AllowAdminOverride {
			out.CanAdminOverride = false
		}
	}

	unobstructed := !out.AnyBlocked && !out.HasChangesRequested
	if mode == models.ReviewModeAllCategories {
		out.Publishable = allMeet && unobstructed
	} else {
		out.Publishable = anyMeet && unobstructed
	}

	switch {
	case out.Publishable:
		out.Message = "Article is ready for publishing"
	case out.AnyBlocked:
		out.Message = "Article is blocked due to rejections in one or more categories"
	case out.HasChangesRequested:
		out.Message = "Changes have been requested - waiting for author revision"
	case mode == models.ReviewModeAllCategories && !allMeet:
		out.Message = fmt.Sprintf("%d of %d categories meet policy requirements", met, len(inputs))
	default:
		out.Message = "Review in progress"
	}
	return out
}
