package middleware

import (
	"net/http"

	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/ratelimit"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimit 按客户端 IP 限流的中间件
// 限流器自身故障时放行请求，只记录日志
func RateLimit(limiter ratelimit.Limiter, limit ratelimit.Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()
		result, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			logger.Warn(c.Request.Context(), "Rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !result.Allowed {
			response.ErrorWithStatus(c, http.StatusTooManyRequests, "too many requests", gin.H{
				"retry_after_ms": result.RetryAfter.Milliseconds(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
