package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/service"
)

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics), WithResponseMeta())
	router.GET("/articles/:id", func(c *gin.Context) {
		SetCacheHit(c, false)
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		serve(router, http.MethodGet, "/articles/a1", "")
	}
	serve(router, http.MethodGet, "/missing", "")

	if got := metrics.Snapshot().RequestsTotal; got != 4 {
		t.Fatalf("expected 4 observed requests, got %d", got)
	}
}

func TestMetricsMiddlewareWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if got := serve(router, http.MethodGet, "/", ""); got != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", got)
	}
}

func TestMetricsMiddlewareSkipsScrapes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, http.MethodGet, "/metrics", "")

	if got := metrics.Snapshot().RequestsTotal; got != 0 {
		t.Fatalf("expected scrapes to be ignored, got %d", got)
	}
}
