package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

type mockWorkflow struct {
	mock.Mock
}

func (m *mockWorkflow) result(args mock.Arguments) (*workflow.Result, error) {
	res, _ := args.Get(0).(*workflow.Result)
	return res, args.Error(1)
}

func (m *mockWorkflow) SubmitArticle(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, userID))
}

func (m *mockWorkflow) SubmitAndAutoPublish(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, userID))
}

func (m *mockWorkflow) SendToReview(ctx context.Context, articleID, adminID string, reviewerIDs []string, note string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, adminID, reviewerIDs, note))
}

func (m *mockWorkflow) AssignReviewers(ctx context.Context, articleID, adminID string, reviewerIDs []string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, adminID, reviewerIDs))
}

func (m *mockWorkflow) ReviewerApprove(ctx context.Context, articleID, reviewerID, comment string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, reviewerID, comment))
}

func (m *mockWorkflow) ReviewerRequestChanges(ctx context.Context, articleID, reviewerID, comment string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, reviewerID, comment))
}

func (m *mockWorkflow) SubmitCategoryReview(ctx context.Context, in service.CategoryReviewInput) (*workflow.Result, error) {
	return m.result(m.Called(in))
}

func (m *mockWorkflow) PublishArticle(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, adminID, note))
}

func (m *mockWorkflow) RejectArticle(ctx context.Context, articleID, adminID, reason string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, adminID, reason))
}

func (m *mockWorkflow) RequestChangesFromAuthor(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, adminID, note))
}

func (m *mockWorkflow) ResetToDraft(ctx context.Context, articleID, userID string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, userID))
}

func (m *mockWorkflow) UnpublishArticle(ctx context.Context, articleID, adminID, note string) (*workflow.Result, error) {
	return m.result(m.Called(articleID, adminID, note))
}

type publishabilityStub struct {
	verdict *workflow.Publishability
	err     error
}

func (p *publishabilityStub) Evaluate(ctx context.Context, articleID string) (*workflow.Publishability, error) {
	return p.verdict, p.err
}

func TestWorkflowHandlerSubmitSuccess(t *testing.T) {
	svc := &mockWorkflow{}
	svc.On("SubmitArticle", "a1", "author").Return(workflow.Succeeded(models.ArticleStatusPendingAdmin, "Article submitted successfully."), nil)
	handler := NewWorkflowHandler(svc, nil)

	c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/submit", params: idParam("a1"), userID: "author"})
	handler.Submit(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.WorkflowResponse
	decodeData(t, rec, &body)
	assert.Equal(t, "a1", body.ArticleID)
	assert.True(t, body.OK)
	assert.Equal(t, models.ArticleStatusPendingAdmin, body.Status)
	svc.AssertExpectations(t)
}

func TestWorkflowHandlerMapsFailedResults(t *testing.T) {
	cases := []struct {
		name   string
		result *workflow.Result
		status int
		code   string
	}{
		{"denied", workflow.Denied("Only the author can submit this article."), http.StatusForbidden, appErrors.ErrPermissionDenied.Code},
		{"ineligible", workflow.Ineligible("Article cannot be submitted in its current status."), http.StatusConflict, appErrors.ErrInvalidTransition.Code},
		{"invalid", workflow.Invalid("Article has no categories assigned."), http.StatusBadRequest, appErrors.ErrValidation.Code},
		{"lost race", workflow.Failed(appErrors.ErrConflict.Code, "changed"), http.StatusConflict, appErrors.ErrConflict.Code},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockWorkflow{}
			svc.On("SubmitArticle", "a1", "author").Return(tc.result, nil)
			handler := NewWorkflowHandler(svc, nil)

			c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/submit", params: idParam("a1"), userID: "author"})
			handler.Submit(c)

			assert.Equal(t, tc.status, rec.Code)
			envelope := decodeEnvelope(t, rec)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.code, envelope.Error.Code)
			assert.Equal(t, tc.result.Message, envelope.Error.Message)
		})
	}
}

func TestWorkflowHandlerRequiresIdentity(t *testing.T) {
	svc := &mockWorkflow{}
	handler := NewWorkflowHandler(svc, nil)

	c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/publish", params: idParam("a1")})
	handler.Publish(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "PublishArticle", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowHandlerOptionalBodies(t *testing.T) {
	svc := &mockWorkflow{}
	svc.On("PublishArticle", "a1", "admin", "").Return(workflow.Succeeded(models.ArticleStatusPublished, "Article published successfully."), nil)
	svc.On("SendToReview", "a2", "admin", []string{"rev1"}, "please check").Return(workflow.Succeeded(models.ArticleStatusInReview, "sent"), nil)
	handler := NewWorkflowHandler(svc, nil)

	c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/publish", params: idParam("a1"), userID: "admin"})
	handler.Publish(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(t, testRequest{
		method: http.MethodPost, target: "/articles/a2/send-to-review", params: idParam("a2"), userID: "admin",
		body: dto.SendToReviewRequest{ReviewerIDs: []string{"rev1"}, Note: "please check"},
	})
	handler.SendToReview(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestWorkflowHandlerValidatesPayloads(t *testing.T) {
	svc := &mockWorkflow{}
	handler := NewWorkflowHandler(svc, nil)

	c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/reject", params: idParam("a1"), userID: "admin", body: dto.RejectRequest{}})
	handler.Reject(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(t, testRequest{
		method: http.MethodPost, target: "/articles/a1/reviews", params: idParam("a1"), userID: "rev1",
		body: dto.CategoryReviewRequest{CategoryID: "science", Decision: "MAYBE"},
	})
	handler.ReviewCategory(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/reviewers", params: idParam("a1"), userID: "admin", body: "{not json"})
	handler.AssignReviewers(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertNotCalled(t, "RejectArticle", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "SubmitCategoryReview", mock.Anything)
}

func TestWorkflowHandlerCategoryReview(t *testing.T) {
	svc := &mockWorkflow{}
	expected := service.CategoryReviewInput{
		ArticleID: "a1", ReviewerID: "rev1", CategoryID: "science",
		Decision: models.ReviewDecisionChanges, Comment: "cite sources",
	}
	svc.On("SubmitCategoryReview", expected).Return(workflow.Succeeded(models.ArticleStatusChangesRequested, "Review submitted."), nil)
	handler := NewWorkflowHandler(svc, nil)

	c, rec := newTestContext(t, testRequest{
		method: http.MethodPost, target: "/articles/a1/reviews", params: idParam("a1"), userID: "rev1",
		body: dto.CategoryReviewRequest{CategoryID: "science", Decision: "CHANGES", Comment: "cite sources"},
	})
	handler.ReviewCategory(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestWorkflowHandlerPropagatesErrors(t *testing.T) {
	svc := &mockWorkflow{}
	svc.On("ResetToDraft", "missing", "author").Return(nil, appErrors.Clone(appErrors.ErrNotFound, "article not found"))
	svc.On("UnpublishArticle", "a1", "admin", "").Return(nil, errors.New("db down"))
	handler := NewWorkflowHandler(svc, nil)

	c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/missing/reset", params: idParam("missing"), userID: "author"})
	handler.ResetToDraft(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(t, testRequest{method: http.MethodPost, target: "/articles/a1/unpublish", params: idParam("a1"), userID: "admin"})
	handler.Unpublish(c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWorkflowHandlerPublishability(t *testing.T) {
	handler := NewWorkflowHandler(&mockWorkflow{}, &publishabilityStub{verdict: &workflow.Publishability{
		Publishable: true, Mode: models.ReviewModeAnyCategory, CanAdminOverride: true,
	}})

	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/publishability", params: idParam("a1"), userID: "admin"})
	handler.Publishability(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var verdict workflow.Publishability
	decodeData(t, rec, &verdict)
	assert.True(t, verdict.Publishable)
	assert.Equal(t, models.ReviewModeAnyCategory, verdict.Mode)
}
