package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/pkg/export"
	"github.com/Burkhanovich/article-site/pkg/response"
)

type historyService interface {
	List(ctx context.Context, articleID string, ascending bool) ([]models.ArticleStatusHistory, error)
	Replay(ctx context.Context, articleID string) (*models.HistoryReplay, error)
	Export(ctx context.Context, articleID string, format export.Format) (*models.HistoryExport, error)
}

// HistoryHandler exposes an article's status audit trail.
type HistoryHandler struct {
	service historyService
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List godoc
// @Summary Status history of an article
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param order query string false "asc or desc (default desc)"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	var query dto.HistoryQuery
	if err := bindQuery(c, &query, "invalid history query"); err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.service.List(c.Request.Context(), c.Param("id"), query.Order == "asc")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Replay godoc
// @Summary Reconstruct and verify the status sequence of an article
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/history/replay [get]
func (h *HistoryHandler) Replay(c *gin.Context) {
	replay, err := h.service.Replay(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, replay, nil)
}

// Export godoc
// @Summary Download the status history as CSV or PDF
// @Tags History
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} file
// @Router /articles/{id}/history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	var query dto.HistoryExportQuery
	if err := bindQuery(c, &query, "unsupported export format"); err != nil {
		response.Error(c, err)
		return
	}
	format, err := export.ParseFormat(query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.service.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
