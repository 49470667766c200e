package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/ams-api/internal/service"
)

// Metrics records request method, route, status and latency. Unmatched
// requests fall back to the raw URL path so 404s still count.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
