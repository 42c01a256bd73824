package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fuckinutkin/greenland/pkg/metrics"
)

// MetricsMiddleware counts requests per route. The registered route pattern is
// used as the path label to keep cardinality bounded; unmatched requests are
// grouped under their raw path's fallback label.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
