package middleware

import (
	"time"

	"anoa.com/magangportal/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request durations labelled by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), start)
	}
}
