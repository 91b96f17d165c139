package middleware

import (
	"strconv"
	"time"

	"github.com/wyfcoding/marketplace/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics 请求计数与耗时采集中间件
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.Observe(time.Since(start).Seconds())
	}
}
