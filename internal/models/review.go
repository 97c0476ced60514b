package models

import "time"

// ReviewDecision captures a reviewer's verdict for one category.
type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "APPROVE"
	ReviewDecisionChanges ReviewDecision = "CHANGES"
	ReviewDecisionReject  ReviewDecision = "REJECT"
)

// Label returns the human readable decision.
func (d ReviewDecision) Label() string {
	switch d {
	case ReviewDecisionApprove:
		return "Approved"
	case ReviewDecisionChanges:
		return "Changes Requested"
	case ReviewDecisionReject:
		return "Rejected"
	default:
		return string(d)
	}
}

// Review is unique per (article, reviewer, category); re-reviewing replaces the prior decision.
type Review struct {
	ID         string         `db:"id" json:"id"`
	ArticleID  string         `db:"article_id" json:"article_id"`
	ReviewerID string         `db:"reviewer_id" json:"reviewer_id"`
	CategoryID string         `db:"category_id" json:"category_id"`
	Decision   ReviewDecision `db:"decision" json:"decision"`
	Comment    *string        `db:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// AssignmentStatus tracks an assigned reviewer's latest verdict.
type AssignmentStatus string

const (
	AssignmentStatusPending          AssignmentStatus = "PENDING"
	AssignmentStatusApproved         AssignmentStatus = "APPROVED"
	AssignmentStatusChangesRequested AssignmentStatus = "CHANGES_REQUESTED"
	AssignmentStatusRejected         AssignmentStatus = "REJECTED"
)

// ReviewerAssignment records that a reviewer was tasked with an article, independent of category.
type ReviewerAssignment struct {
	ID            string           `db:"id" json:"id"`
	ArticleID     string           `db:"article_id" json:"article_id"`
	ReviewerID    string           `db:"reviewer_id" json:"reviewer_id"`
	AssignedBy    *string          `db:"assigned_by" json:"assigned_by,omitempty"`
	Status        AssignmentStatus `db:"status" json:"status"`
	ReviewComment *string          `db:"review_comment" json:"review_comment,omitempty"`
	AssignedAt    time.Time        `db:"assigned_at" json:"assigned_at"`
	ReviewedAt    *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

func (a *ReviewerAssignment) MarkApproved(comment *string, now time.Time) {
	a.mark(AssignmentStatusApproved, comment, now)
}

func (a *ReviewerAssignment) MarkChangesRequested(comment *string, now time.Time) {
	a.mark(AssignmentStatusChangesRequested, comment, now)
}

func (a *ReviewerAssignment) MarkRejected(comment *string, now time.Time) {
	a.mark(AssignmentStatusRejected, comment, now)
}

// ResetToPending clears the verdict so the reviewer looks at a resubmission again.
func (a *ReviewerAssignment) ResetToPending(now time.Time) {
	a.Status = AssignmentStatusPending
	a.ReviewedAt = nil
	a.UpdatedAt = now
}

func (a *ReviewerAssignment) mark(status AssignmentStatus, comment *string, now time.Time) {
	a.Status = status
	if comment != nil && *comment != "" {
		a.ReviewComment = comment
	}
	reviewed := now
	a.ReviewedAt = &reviewed
	a.UpdatedAt = now
}

// AssignmentStatusFor maps a review decision onto the assignment status it implies.
func AssignmentStatusFor(decision ReviewDecision) AssignmentStatus {
	switch decision {
	case ReviewDecisionApprove:
		return AssignmentStatusApproved
	case ReviewDecisionChanges:
		return AssignmentStatusChangesRequested
	case ReviewDecisionReject:
		return AssignmentStatusRejected
	default:
		return AssignmentStatusPending
	}
}
