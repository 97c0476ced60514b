package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/pkg/response"
)

type rulesService interface {
	Create(ctx context.Context, actorID string, in service.RulesInput) (*models.ArticleRules, error)
	Active(ctx context.Context) (*models.ArticleRules, error)
	List(ctx context.Context, actorID string) ([]models.ArticleRules, error)
	Activate(ctx context.Context, actorID, id string) error
}

// RulesHandler exposes the author writing guidelines.
type RulesHandler struct {
	service rulesService
}

// NewRulesHandler constructs the handler.
func NewRulesHandler(service rulesService) *RulesHandler {
	return &RulesHandler{service: service}
}

// Active godoc
// @Summary Currently active writing rules
// @Tags Rules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rules/active [get]
func (h *RulesHandler) Active(c *gin.Context) {
	rules, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// List godoc
// @Summary List every rules revision (admin)
// @Tags Rules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /rules [get]
func (h *RulesHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Create writing rules (admin)
// @Tags Rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateRulesRequest true "Rules payload"
// @Success 201 {object} response.Envelope
// @Router /rules [post]
func (h *RulesHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateRulesRequest
	if err := bindJSON(c, &req, "invalid rules payload"); err != nil {
		response.Error(c, err)
		return
	}
	rules, err := h.service.Create(c.Request.Context(), userID, service.RulesInput{
		Title:    models.LocalizedText(req.Title),
		Content:  models.LocalizedText(req.Content),
		Activate: req.Activate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rules)
}

// Activate godoc
// @Summary Make a rules revision the active one (admin)
// @Tags Rules
// @Security BearerAuth
// @Param id path string true "Rules ID"
// @Success 204
// @Router /rules/{id}/activate [post]
func (h *RulesHandler) Activate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.service.Activate(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
