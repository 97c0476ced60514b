package dto

import "github.com/Burkhanovich/article-site/internal/workflow"

// SendToReviewRequest is the admin's approval of a submission, optionally naming reviewers.
type SendToReviewRequest struct {
	ReviewerIDs []string `json:"reviewer_ids" validate:"omitempty,dive,required"`
	Note        string   `json:"note" validate:"max=2000"`
}

// AssignReviewersRequest adds reviewers to an article already under review.
type AssignReviewersRequest struct {
	ReviewerIDs []string `json:"reviewer_ids" validate:"required,min=1,dive,required"`
}

// ReviewerCommentRequest carries a reviewer's free-form comment.
type ReviewerCommentRequest struct {
	Comment string `json:"comment" validate:"max=5000"`
}

// CategoryReviewRequest records a reviewer's decision for one category of an article.
type CategoryReviewRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Decision   string `json:"decision" validate:"required,oneof=APPROVE CHANGES REJECT"`
	Comment    string `json:"comment" validate:"max=5000"`
}

// AdminNoteRequest carries the admin's note for publish, unpublish and change requests.
type AdminNoteRequest struct {
	Note string `json:"note" validate:"max=2000"`
}

// RejectRequest requires a reason.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// WorkflowResponse wraps a successful workflow result.
type WorkflowResponse struct {
	ArticleID string `json:"article_id"`
	workflow.Result
}
