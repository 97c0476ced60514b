package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
	"github.com/Burkhanovich/article-site/pkg/response"
)

type workflowService interface {
	SubmitArticle(ctx context.Context, articleID, userID string) (*workflow.Result, error)
	SubmitAndAutoPublish(ctx context.Context, articleID, userID string) (*workflow.Result, error)
	SendToReview(ctx context.Context, articleID, adminID string, reviewerIDs []string, note string) (*workflow.Result, error)
	AssignReviewers(ctx context.Context, articleID, adminID string, reviewerIDs []string) (*workflow.Result, error)
	ReviewerApprove(ctx context.Context, articleID, reviewerID, comment string) (*workflow.Result, error)
	ReviewerRequestChanges(ctx context.Context, articleID, reviewerID, comment string) (*workflow.Result, error)
	SubmitCategoryReview(ctx context.Context, in service.CategoryReviewInput) (*workflow.Result, error)
	PublishArticle(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error)
	RejectArticle(ctx context.Context, articleID, adminID, reason string) (*workflow.Result, error)
	RequestChangesFromAuthor(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error)
	ResetToDraft(ctx context.Context, articleID, userID string) (*workflow.Result, error)
	UnpublishArticle(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error)
}

type publishabilityService interface {
	Evaluate(ctx context.Context, articleID string) (*workflow.Publishability, error)
}

// WorkflowHandler exposes one endpoint per editorial workflow operation. A refused operation
// is rendered as an error envelope with the status of its result code.
type WorkflowHandler struct {
	service        workflowService
	publishability publishabilityService
}

// NewWorkflowHandler constructs the handler.
func NewWorkflowHandler(service workflowService, publishability publishabilityService) *WorkflowHandler {
	return &WorkflowHandler{service: service, publishability: publishability}
}

// Submit godoc
// @Summary Submit an article for admin review
// @Tags Workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /articles/{id}/submit [post]
func (h *WorkflowHandler) Submit(c *gin.Context) {
	h.run(c, nil, func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
		return h.service.SubmitArticle(ctx, articleID, userID)
	})
}

// Resubmit godoc
// @Summary Resubmit with changes and publish immediately
// @Tags Workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/resubmit-publish [post]
func (h *WorkflowHandler) Resubmit(c *gin.Context) {
	h.run(c, nil, func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
		return h.service.SubmitAndAutoPublish(ctx, articleID, userID)
	})
}

// ResetToDraft godoc
// @Summary Move an article back to draft
// @Tags Workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/reset [post]
func (h *WorkflowHandler) ResetToDraft(c *gin.Context) {
	h.run(c, nil, func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
		return h.service.ResetToDraft(ctx, articleID, userID)
	})
}

// SendToReview godoc
// @Summary Send a pending article to reviewers
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.SendToReviewRequest false "Reviewers and note"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/send-to-review [post]
func (h *WorkflowHandler) SendToReview(c *gin.Context) {
	var req dto.SendToReviewRequest
	h.run(c, func() error { return bindOptionalJSON(c, &req, "invalid review request") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.SendToReview(ctx, articleID, userID, req.ReviewerIDs, req.Note)
		})
}

// AssignReviewers godoc
// @Summary Assign additional reviewers
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.AssignReviewersRequest true "Reviewers"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/reviewers [post]
func (h *WorkflowHandler) AssignReviewers(c *gin.Context) {
	var req dto.AssignReviewersRequest
	h.run(c, func() error { return bindJSON(c, &req, "invalid reviewer assignment") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.AssignReviewers(ctx, articleID, userID, req.ReviewerIDs)
		})
}

// Approve godoc
// @Summary Approve an article as an assigned reviewer
// @Description A single approval publishes the article.
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.ReviewerCommentRequest false "Comment"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/approve [post]
func (h *WorkflowHandler) Approve(c *gin.Context) {
	var req dto.ReviewerCommentRequest
	h.run(c, func() error { return bindOptionalJSON(c, &req, "invalid review comment") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.ReviewerApprove(ctx, articleID, userID, req.Comment)
		})
}

// RequestChanges godoc
// @Summary Request changes as an assigned reviewer
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.ReviewerCommentRequest true "Comment"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/request-changes [post]
func (h *WorkflowHandler) RequestChanges(c *gin.Context) {
	var req dto.ReviewerCommentRequest
	h.run(c, func() error { return bindOptionalJSON(c, &req, "invalid review comment") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.ReviewerRequestChanges(ctx, articleID, userID, req.Comment)
		})
}

// ReviewCategory godoc
// @Summary Record a per-category review decision
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.CategoryReviewRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/reviews [post]
func (h *WorkflowHandler) ReviewCategory(c *gin.Context) {
	var req dto.CategoryReviewRequest
	h.run(c, func() error { return bindJSON(c, &req, "invalid review payload") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.SubmitCategoryReview(ctx, service.CategoryReviewInput{
				ArticleID:  articleID,
				ReviewerID: userID,
				CategoryID: req.CategoryID,
				Decision:   models.ReviewDecision(req.Decision),
				Comment:    req.Comment,
			})
		})
}

// Publish godoc
// @Summary Publish an article (admin)
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.AdminNoteRequest false "Note"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/publish [post]
func (h *WorkflowHandler) Publish(c *gin.Context) {
	var req dto.AdminNoteRequest
	h.run(c, func() error { return bindOptionalJSON(c, &req, "invalid note") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.PublishArticle(ctx, articleID, userID, req.Note)
		})
}

// Reject godoc
// @Summary Reject an article (admin)
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.RejectRequest true "Reason"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/reject [post]
func (h *WorkflowHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	h.run(c, func() error { return bindJSON(c, &req, "a rejection reason is required") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.RejectArticle(ctx, articleID, userID, req.Reason)
		})
}

// ReturnToAuthor godoc
// @Summary Send an article back to its author (admin)
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.AdminNoteRequest false "Note"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/return [post]
func (h *WorkflowHandler) ReturnToAuthor(c *gin.Context) {
	var req dto.AdminNoteRequest
	h.run(c, func() error { return bindOptionalJSON(c, &req, "invalid note") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.RequestChangesFromAuthor(ctx, articleID, userID, req.Note)
		})
}

// Unpublish godoc
// @Summary Withdraw a published article to draft (admin)
// @Tags Workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.AdminNoteRequest false "Note"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/unpublish [post]
func (h *WorkflowHandler) Unpublish(c *gin.Context) {
	var req dto.AdminNoteRequest
	h.run(c, func() error { return bindOptionalJSON(c, &req, "invalid note") },
		func(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
			return h.service.UnpublishArticle(ctx, articleID, userID, req.Note)
		})
}

// Publishability godoc
// @Summary Evaluate whether an article meets its category policies
// @Tags Workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/publishability [get]
func (h *WorkflowHandler) Publishability(c *gin.Context) {
	verdict, err := h.publishability.Evaluate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, verdict, nil)
}

type workflowCall func(ctx context.Context, articleID, userID string) (*workflow.Result, error)

func (h *WorkflowHandler) run(c *gin.Context, bind func() error, call workflowCall) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if bind != nil {
		if err := bind(); err != nil {
			response.Error(c, err)
			return
		}
	}
	articleID := c.Param("id")
	result, err := call(c.Request.Context(), articleID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := result.Err(); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.WorkflowResponse{ArticleID: articleID, Result: *result}, nil)
}
