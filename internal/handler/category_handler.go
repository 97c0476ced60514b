package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/pkg/response"
)

type categoryService interface {
	Create(ctx context.Context, actorID string, in service.CategoryInput) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	SetReviewers(ctx context.Context, actorID, categoryID string, userIDs []string) (*models.Category, error)
	Policy(ctx context.Context, categoryID string) (*service.CategoryPolicyView, error)
	UpsertPolicy(ctx context.Context, actorID, categoryID string, in service.PolicyInput) (*service.CategoryPolicyView, error)
}

// CategoryHandler exposes categories, their reviewer pools and review policies.
type CategoryHandler struct {
	service categoryService
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(service categoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param all query bool false "Include inactive categories"
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	items, err := h.service.List(c.Request.Context(), !all)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// Create godoc
// @Summary Create category (admin)
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := bindJSON(c, &req, "invalid category payload"); err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.service.Create(c.Request.Context(), userID, service.CategoryInput{
		Slug:        req.Slug,
		Name:        models.LocalizedText(req.Name),
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// SetReviewers godoc
// @Summary Replace a category's reviewer pool (admin)
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param payload body dto.SetReviewersRequest true "Reviewer IDs"
// @Success 200 {object} response.Envelope
// @Router /categories/{id}/reviewers [put]
func (h *CategoryHandler) SetReviewers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SetReviewersRequest
	if err := bindJSON(c, &req, "invalid reviewer list"); err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.service.SetReviewers(c.Request.Context(), userID, c.Param("id"), req.ReviewerIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// Policy godoc
// @Summary Effective review policy of a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /categories/{id}/policy [get]
func (h *CategoryHandler) Policy(c *gin.Context) {
	policy, err := h.service.Policy(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, policy, nil)
}

// UpsertPolicy godoc
// @Summary Create or replace a category review policy (admin)
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param payload body dto.CategoryPolicyRequest true "Policy payload"
// @Success 200 {object} response.Envelope
// @Router /categories/{id}/policy [put]
func (h *CategoryHandler) UpsertPolicy(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CategoryPolicyRequest
	if err := bindJSON(c, &req, "invalid policy payload"); err != nil {
		response.Error(c, err)
		return
	}
	policy, err := h.service.UpsertPolicy(c.Request.Context(), userID, c.Param("id"), service.PolicyInput{
		MinApprovalsToPublish:    req.MinApprovalsToPublish,
		MaxRejectionsBeforeBlock: req.MaxRejectionsBeforeBlock,
		MinRequiredReviews:       req.MinRequiredReviews,
		AllowAdminOverride:       boolOr(req.AllowAdminOverride, true),
		ReviewDeadlineHours:      req.ReviewDeadlineHours,
		RequireChangesComment:    boolOr(req.RequireChangesComment, true),
		RequireRejectComment:     boolOr(req.RequireRejectComment, true),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, policy, nil)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
