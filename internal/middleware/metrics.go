package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/service"
)

const (
	unmatchedRoute = "unmatched"
	scrapeRoute    = "/metrics"
)

// Metrics observes every request except Prometheus scrapes. Requests are labelled by their
// route template (/articles/:id) so slugs and ids never reach the label set.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == scrapeRoute {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
