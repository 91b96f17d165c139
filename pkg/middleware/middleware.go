// Package middleware 提供 Gin 通用中间件（日志、recover、CORS、JWT 鉴权、角色校验）
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RequestIDKey gin context 中 request ID 的键
const RequestIDKey = "request_id"

// UserIDKey gin context 中当前用户 ID 的键
const UserIDKey = "user_id"

// UserRoleKey gin context 中当前用户角色的键
const UserRoleKey = "user_role"

// GinLogging Gin 日志中间件
func GinLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDContextKey, requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info(ctx, "HTTP request completed",
			"method", method,
			"path", path,
			"status_code", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"duration", time.Since(start),
		)
	}
}

// GinRecovery panic 恢复中间件
func GinRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(c.Request.Context(), "HTTP handler panicked",
					"path", c.Request.URL.Path,
					"panic", r,
				)
				response.ErrorWithStatus(c, http.StatusInternalServerError, "internal server error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// CORS 跨域中间件，面向浏览器端店面
func CORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	return cors.New(cfg)
}

// Claims JWT 负载
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth JWT 鉴权中间件；guest 为 true 时允许无令牌的访客会话
func JWTAuth(secret string, guest bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if guest {
				c.Set(UserIDKey, "guest-"+uuid.New().String())
				c.Set(UserRoleKey, "GUEST")
				c.Next()
				return
			}
			response.ErrorWithStatus(c, http.StatusUnauthorized, "authorization header required", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole 角色校验中间件
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.ErrorWithStatus(c, http.StatusForbidden, "insufficient role", nil)
		c.Abort()
	}
}

// CurrentUserID 读取当前会话的用户 ID
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
