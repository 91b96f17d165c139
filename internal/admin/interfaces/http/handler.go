// Package http 管理端的 HTTP 处理器
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/wyfcoding/marketplace/internal/admin/application"
	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler HTTP 处理器，路由须挂在 ADMIN 角色组下
type AdminHandler struct {
	svc *application.Service
}

// NewAdminHandler 创建 HTTP 处理器实例
func NewAdminHandler(svc *application.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// RegisterRoutes 注册管理端路由
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/admin/shops")
	{
		api.GET("", h.ListShops)
		api.GET("/pending", h.PendingShops)
		api.POST("/:id/approve", h.action(h.svc.Approve))
		api.POST("/:id/reject", h.action(h.svc.Reject))
		api.POST("/:id/suspend", h.action(h.svc.Suspend))
		api.POST("/:id/reinstate", h.action(h.svc.Reinstate))
	}
}

// ListShops 按状态浏览店铺
func (h *AdminHandler) ListShops(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	shops, total, err := h.svc.Shops(c.Request.Context(), domain.ShopFilter{
		Status: domain.ShopStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"shops": shops, "total": total})
}

// PendingShops 待审批店铺
func (h *AdminHandler) PendingShops(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	shops, total, err := h.svc.PendingShops(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"shops": shops, "total": total})
}

func (h *AdminHandler) action(fn func(ctx context.Context, shopID string) (*domain.Shop, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, err := fn(c.Request.Context(), c.Param("id"))
		if errors.Is(err, domain.ErrShopNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "shop not found", nil)
			return
		}
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.Success(c, shop)
	}
}
