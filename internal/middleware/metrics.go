package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/startupviet/advisor-api/internal/service"
)

// Metrics observes every request's method, route template and status. Routes
// without a template (404s) fall back to the raw path. The metrics endpoint
// itself is excluded so scrapes do not inflate the counters.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
