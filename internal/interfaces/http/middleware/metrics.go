package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
)

// Metrics records request count and latency per route. A nil metrics
// records nothing.
func Metrics(metrics *telemetry.ShopMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(),
			c.GetString(StoreCodeKey), time.Since(start))
	}
}
