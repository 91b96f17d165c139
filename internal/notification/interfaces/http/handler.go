// Package http 通知服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wyfcoding/marketplace/internal/notification/application"
	"github.com/wyfcoding/marketplace/internal/notification/domain"
	"github.com/wyfcoding/marketplace/internal/notification/infrastructure/alert"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler HTTP 处理器
type NotificationHandler struct {
	svc   *application.Service
	board *alert.ToastBoard
}

// NewNotificationHandler 创建 HTTP 处理器实例
func NewNotificationHandler(svc *application.Service, board *alert.ToastBoard) *NotificationHandler {
	return &NotificationHandler{svc: svc, board: board}
}

// RegisterRoutes 注册卖家通知路由
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/notifications")
	{
		api.GET("", h.List)
		api.GET("/unread-count", h.UnreadCount)
		api.GET("/toasts", h.Toasts)
		api.POST("/:id/read", h.MarkRead)
	}
}

// List 当前卖家的通知列表
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	list, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list notifications", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, list)
}

// UnreadCount 未读角标数
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to count unread notifications", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"unread": count})
}

// Toasts 当前存活的应用内提示
func (h *NotificationHandler) Toasts(c *gin.Context) {
	response.Success(c, h.board.Active())
}

// MarkRead 标记已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.svc.MarkRead(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotificationNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "notification not found", nil)
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, nil)
}
