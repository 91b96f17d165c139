// Package response 提供 HTTP 层统一的响应封装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Error 失败响应，HTTP 状态码 500
func Error(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusInternalServerError, message, nil)
}

// ErrorWithStatus 指定状态码的失败响应
func ErrorWithStatus(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Body{
		Code:    status,
		Message: message,
		Data:    data,
	})
}
