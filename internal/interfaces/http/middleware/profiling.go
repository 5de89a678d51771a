package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
)

// ProfilingLabels tags the CPU and heap samples taken while a request is
// handled with its route and method.
func ProfilingLabels(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := map[string]string{"route": route, "method": c.Request.Method}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
