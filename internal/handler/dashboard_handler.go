package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/middleware"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
	"github.com/Burkhanovich/article-site/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context) (*dto.AdminDashboardResponse, bool, error)
}

type reviewerQueueService interface {
	Queue(ctx context.Context, reviewerID string) (*dto.ReviewerQueueResponse, error)
}

// DashboardHandler wires the admin dashboard and reviewer queue to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
	queue   reviewerQueueService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, queue reviewerQueueService) *DashboardHandler {
	return &DashboardHandler{service: service, queue: queue}
}

// Admin godoc
// @Summary Admin dashboard statistics
// @Description Article counts per status and the articles currently meeting their publish policy.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// ReviewerQueue godoc
// @Summary Reviewer work queue
// @Description Per category, the articles awaiting the caller's review.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/reviewer [get]
func (h *DashboardHandler) ReviewerQueue(c *gin.Context) {
	if h.queue == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	queue, err := h.queue.Queue(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, queue, nil)
}
