package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/pkg/export"
)

type fakeHistoryService struct {
	ascending bool
	format    export.Format
}

func (f *fakeHistoryService) List(ctx context.Context, articleID string, ascending bool) ([]models.ArticleStatusHistory, error) {
	f.ascending = ascending
	return []models.ArticleStatusHistory{{ID: "h1", ArticleID: articleID, FromStatus: models.ArticleStatusDraft, ToStatus: models.ArticleStatusPendingAdmin}}, nil
}

func (f *fakeHistoryService) Replay(ctx context.Context, articleID string) (*models.HistoryReplay, error) {
	return &models.HistoryReplay{ArticleID: articleID, Consistent: true, Replayed: models.ArticleStatusDraft, CurrentStatus: models.ArticleStatusDraft}, nil
}

func (f *fakeHistoryService) Export(ctx context.Context, articleID string, format export.Format) (*models.HistoryExport, error) {
	f.format = format
	return &models.HistoryExport{Filename: "salom-history.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("Changed At,From,To\n")}, nil
}

func TestHistoryHandlerListOrder(t *testing.T) {
	svc := &fakeHistoryService{}
	handler := NewHistoryHandler(svc)

	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/history?order=asc", params: idParam("a1"), userID: "admin"})
	handler.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.ascending)

	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/history", params: idParam("a1"), userID: "admin"})
	handler.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.ascending)

	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/history?order=sideways", params: idParam("a1"), userID: "admin"})
	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandlerReplay(t *testing.T) {
	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/history/replay", params: idParam("a1"), userID: "admin"})
	NewHistoryHandler(&fakeHistoryService{}).Replay(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var replay models.HistoryReplay
	decodeData(t, rec, &replay)
	assert.True(t, replay.Consistent)
	assert.Equal(t, "a1", replay.ArticleID)
}

func TestHistoryHandlerExport(t *testing.T) {
	svc := &fakeHistoryService{}
	handler := NewHistoryHandler(svc)

	c, rec := newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/history/export", params: idParam("a1"), userID: "admin"})
	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatCSV, svc.format)
	assert.Equal(t, `attachment; filename="salom-history.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "Changed At,From,To\n", rec.Body.String())

	c, rec = newTestContext(t, testRequest{method: http.MethodGet, target: "/articles/a1/history/export?format=xlsx", params: idParam("a1"), userID: "admin"})
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
