package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/pkg/response"
)

type articleService interface {
	Create(ctx context.Context, authorID string, in service.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, articleID, userID string, in service.ArticleInput) (*models.Article, error)
	Get(ctx context.Context, id, viewerID string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug, viewerID string) (*models.Article, error)
	List(ctx context.Context, actorID string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error)
	ListByAuthor(ctx context.Context, authorID string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error)
	Search(ctx context.Context, query string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error)
}

// ArticleHandler exposes draft management and public article reads.
type ArticleHandler struct {
	service articleService
}

// NewArticleHandler constructs the handler.
func NewArticleHandler(service articleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create godoc
// @Summary Create a draft article
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ArticleRequest true "Article payload"
// @Success 201 {object} response.Envelope
// @Router /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if err := bindJSON(c, &req, "invalid article payload"); err != nil {
		response.Error(c, err)
		return
	}
	article, err := h.service.Create(c.Request.Context(), userID, articleInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, article)
}

// Update godoc
// @Summary Update a draft article
// @Description Only the author may edit, and only while the article is DRAFT or CHANGES_REQUESTED.
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.ArticleRequest true "Article payload"
// @Success 200 {object} response.Envelope
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if err := bindJSON(c, &req, "invalid article payload"); err != nil {
		response.Error(c, err)
		return
	}
	article, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, articleInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// Get godoc
// @Summary Get article by ID
// @Tags Articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.service.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// GetBySlug godoc
// @Summary Read an article by slug
// @Description Counts a view when a published article is read by someone other than its author.
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} response.Envelope
// @Router /articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// List godoc
// @Summary List all articles (admin)
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param category_id query string false "Category ID"
// @Param q query string false "Free text"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	filter, err := articleFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Mine godoc
// @Summary List the caller's own articles
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /articles/mine [get]
func (h *ArticleHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	filter, err := articleFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.ListByAuthor(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Search godoc
// @Summary Search published articles
// @Description Matches title and content in the requested language, keywords and category names.
// @Tags Articles
// @Produce json
// @Param q query string false "Free text"
// @Param lang query string false "Language (uz, ru, en)"
// @Param category_id query string false "Category ID"
// @Param keyword query string false "Keyword"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /articles/search [get]
func (h *ArticleHandler) Search(c *gin.Context) {
	filter, err := articleFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.Search(c.Request.Context(), filter.Query, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

func articleInput(req dto.ArticleRequest) service.ArticleInput {
	return service.ArticleInput{
		Title:       models.LocalizedText(req.Title),
		Content:     models.LocalizedText(req.Content),
		CategoryIDs: req.CategoryIDs,
		Keywords:    req.Keywords,
		ReviewMode:  models.ReviewMode(req.ReviewMode),
	}
}

func articleFilter(c *gin.Context) (models.ArticleFilter, error) {
	var query dto.ArticleListQuery
	if err := bindQuery(c, &query, "invalid query parameters"); err != nil {
		return models.ArticleFilter{}, err
	}
	filter := models.ArticleFilter{
		CategoryID: strings.TrimSpace(query.CategoryID),
		Keyword:    strings.ToLower(strings.TrimSpace(query.Keyword)),
		Query:      strings.TrimSpace(query.Query),
		Language:   query.Language,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  strings.ToUpper(query.SortOrder),
	}
	for _, s := range query.Status {
		filter.Status = append(filter.Status, models.ArticleStatus(s))
	}
	return filter, nil
}
