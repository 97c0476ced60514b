package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/articles", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/articles/:slug", http.StatusNotFound, 30*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordTransition(models.ArticleStatusPendingAdmin, models.ArticleStatusInReview)
	m.RecordDelivery("email", true)
	m.RecordDelivery("realtime", false)

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.EqualValues(t, 1, snap.CacheHits)
	assert.EqualValues(t, 2, snap.CacheMisses)
	assert.InDelta(t, 1.0/3.0, snap.CacheHitRatio, 0.0001)
	assert.EqualValues(t, 1, snap.TransitionsTotal)
	assert.EqualValues(t, 1, snap.NotificationsSent)
	assert.EqualValues(t, 1, snap.NotificationsFailed)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `article_site_workflow_transitions_total{from="PENDING_ADMIN",to="IN_REVIEW"} 1`)
	assert.Contains(t, w.Body.String(), `article_site_cache_lookups_total{result="miss"} 2`)
}

func TestMetricsServiceHandlerExposesNamespace(t *testing.T) {
	m := NewMetricsService()
	m.RecordOperationFailure("publish", "INVALID_STATE")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `article_site_workflow_operation_failures_total{code="INVALID_STATE",operation="publish"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNilMetricsServiceIsNoop(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	assert.Equal(t, models.SystemMetrics{}, m.Snapshot())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
