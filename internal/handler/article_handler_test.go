package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/dto"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

type fakeArticleService struct {
	created  *service.ArticleInput
	authorID string
	viewer   string
	filter   models.ArticleFilter
	query    string
	err      error
}

func (f *fakeArticleService) Create(ctx context.Context, authorID string, in service.ArticleInput) (*models.Article, error) {
	f.authorID = authorID
	f.created = &in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Article{ID: "a1", Slug: "salom", Title: in.Title, Status: models.ArticleStatusDraft, AuthorID: authorID}, nil
}

func (f *fakeArticleService) Update(ctx context.Context, articleID, userID string, in service.ArticleInput) (*models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Article{ID: articleID, Title: in.Title, AuthorID: userID}, nil
}

func (f *fakeArticleService) Get(ctx context.Context, id, viewerID string) (*models.Article, error) {
	f.viewer = viewerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Article{ID: id}, nil
}

func (f *fakeArticleService) GetBySlug(ctx context.Context, slug, viewerID string) (*models.Article, error) {
	f.viewer = viewerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Article{ID: "a1", Slug: slug}, nil
}

func (f *fakeArticleService) List(ctx context.Context, actorID string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	f.filter = filter
	return []models.Article{{ID: "a1"}}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, f.err
}

func (f *fakeArticleService) ListByAuthor(ctx context.Context, authorID string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	f.authorID = authorID
	f.filter = filter
	return nil, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (f *fakeArticleService) Search(ctx context.Context, query string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	f.query = query
	f.filter = filter
	return []models.Article{{ID: "a1"}, {ID: "a2"}}, &models.Pagination{Page: 2, PageSize: 2, TotalCount: 4}, nil
}

func validArticleRequest() dto.ArticleRequest {
	return dto.ArticleRequest{
		Title:       map[string]string{"uz": "Salom", "en": "Hello"},
		Content:     map[string]string{"uz": "Matn"},
		CategoryIDs: []string{"science"},
		Keywords:    "Go, Fan",
		ReviewMode:  "ANY",
	}
}

func TestArticleHandlerCreate(t *testing.T) {
	svc := &fakeArticleService{}
	handler := NewArticleHandler(svc)

	c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles", userID: "author", body: validArticleRequest()})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "author", svc.authorID)
	require.NotNil(t, svc.created)
	assert.Equal(t, models.ReviewModeAnyCategory, svc.created.ReviewMode)
	assert.Equal(t, "Go, Fan", svc.created.Keywords)

	var article models.Article
	decodeData(t, rec, &article)
	assert.Equal(t, "salom", article.Slug)
}

func TestArticleHandlerCreateValidation(t *testing.T) {
	cases := map[string]func(*dto.ArticleRequest){
		"no categories":    func(r *dto.ArticleRequest) { r.CategoryIDs = nil },
		"unknown language": func(r *dto.ArticleRequest) { r.Title["de"] = "Hallo" },
		"bad review mode":  func(r *dto.ArticleRequest) { r.ReviewMode = "SOME" },
		"no content":       func(r *dto.ArticleRequest) { r.Content = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeArticleService{}
			req := validArticleRequest()
			mutate(&req)

			c, rec := newTestContext(t, testRequest{method: http.MethodPost, target: "/articles", userID: "author", body: req})
			NewArticleHandler(svc).Create(c)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.created)
		})
	}
}

func TestArticleHandlerUpdateForbidden(t *testing.T) {
	svc := &fakeArticleService{err: appErrors.Clone(appErrors.ErrPermissionDenied, "only the author can edit this article")}

	c, rec := newTestContext(t, testRequest{method: http.MethodPut, target: "/articles/a1", params: idParam("a1"), userID: "reader", body: validArticleRequest()})
	NewArticleHandler(svc).Update(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestArticleHandlerAnonymousReads(t *testing.T) {
	svc := &fakeArticleService{}
	handler := NewArticleHandler(svc)

	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/slug/salom", params: gin.Params{{Key: "slug", Value: "salom"}}})
	handler.GetBySlug(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.viewer)

	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1", params: idParam("a1"), userID: "author"})
	handler.Get(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "author", svc.viewer)

	svc.err = appErrors.Clone(appErrors.ErrNotFound, "article not found")
	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a9", params: idParam("a9")})
	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticleHandlerSearchParsesQuery(t *testing.T) {
	svc := &fakeArticleService{}

	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/search?q=+tarix+&lang=ru&keyword=GO&page=2&page_size=2&sort_order=asc"})
	NewArticleHandler(svc).Search(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tarix", svc.query)
	assert.Equal(t, "ru", svc.filter.Language)
	assert.Equal(t, "go", svc.filter.Keyword)
	assert.Equal(t, "ASC", svc.filter.SortOrder)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 4, envelope.Pagination.TotalCount)
}

func TestArticleHandlerListStatuses(t *testing.T) {
	svc := &fakeArticleService{}
	handler := NewArticleHandler(svc)

	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles?status=IN_REVIEW&status=PUBLISHED", userID: "admin"})
	handler.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []models.ArticleStatus{models.ArticleStatusInReview, models.ArticleStatusPublished}, svc.filter.Status)

	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles?status=ARCHIVED", userID: "admin"})
	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/mine?page_size=500", userID: "author"})
	handler.Mine(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
