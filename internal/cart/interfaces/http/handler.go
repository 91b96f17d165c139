// Package http 购物车的 HTTP 处理器
package http

import (
	"net/http"

	"github.com/wyfcoding/marketplace/internal/cart/application"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// CartHandler HTTP 处理器
type CartHandler struct {
	svc *application.Service
}

// NewCartHandler 创建 HTTP 处理器实例
func NewCartHandler(svc *application.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/cart")
	{
		api.GET("", h.GetCart)
		api.POST("/items", h.AddItem)
		api.PATCH("/items/:product_id", h.UpdateQuantity)
		api.DELETE("/items/:product_id", h.RemoveItem)
	}
}

// GetCart 当前会话购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	cart := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c))
	response.Success(c, cart)
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddItem 加入商品
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	cart, err := h.svc.Add(c.Request.Context(), middleware.CurrentUserID(c), req.ProductID)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	response.Success(c, cart)
}

// UpdateQuantityRequest 数量调整请求
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// UpdateQuantity 调整数量
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	cart := h.svc.UpdateQuantity(c.Request.Context(), middleware.CurrentUserID(c), c.Param("product_id"), req.Delta)
	response.Success(c, cart)
}

// RemoveItem 移除商品
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart := h.svc.Remove(c.Request.Context(), middleware.CurrentUserID(c), c.Param("product_id"))
	response.Success(c, cart)
}
