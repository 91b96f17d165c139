// Package http 订单服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	cartapp "github.com/wyfcoding/marketplace/internal/cart/application"
	"github.com/wyfcoding/marketplace/internal/order/application"
	"github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler HTTP 处理器
// 结账入口在此编排：取购物车 -> 拆单落账 -> 清空购物车
type OrderHandler struct {
	svc  *application.Service
	cart *cartapp.Service
}

// NewOrderHandler 创建 HTTP 处理器实例
func NewOrderHandler(svc *application.Service, cart *cartapp.Service) *OrderHandler {
	return &OrderHandler{svc: svc, cart: cart}
}

// RegisterRoutes 注册买家路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.POST("/checkout", h.Checkout)
		api.GET("", h.MyOrders)
		api.GET("/:id", h.GetOrder)
	}
}

// RegisterSellerRoutes 注册卖家仪表盘路由（需要 SELLER 角色）
func (h *OrderHandler) RegisterSellerRoutes(router *gin.RouterGroup) {
	seller := router.Group("/api/v1/seller")
	{
		seller.GET("/orders", h.SellerOrders)
		seller.PATCH("/orders/:id/status", h.UpdateStatus)
		seller.GET("/earnings", h.Earnings)
	}
}

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	Fulfillment   string `json:"fulfillment" binding:"required,oneof=DELIVERY PICKUP"`
	PaymentMethod string `json:"payment_method"`
	BuyerName     string `json:"buyer_name"`
	BuyerMobile   string `json:"buyer_mobile"`
	BuyerAddress  string `json:"buyer_address"`
}

// Checkout 结账：多卖家购物车拆分为每个卖家一张订单
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	sessionID := middleware.CurrentUserID(c)
	role := c.GetString(middleware.UserRoleKey)

	// DELIVERY 订单必须在进入拆单前拦截缺失的联系方式；访客由拆单器补占位值
	if req.Fulfillment == string(domain.FulfillmentDelivery) && role != "GUEST" {
		if req.BuyerName == "" || req.BuyerMobile == "" || req.BuyerAddress == "" {
			response.ErrorWithStatus(c, http.StatusBadRequest, domain.ErrContactRequired.Error(), nil)
			return
		}
	}

	cart := h.cart.Get(c.Request.Context(), sessionID)
	lines := make([]domain.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.Line{
			ProductID: item.ProductID,
			ShopID:    item.ShopID,
			SellerID:  item.SellerID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}

	orders, err := h.svc.Checkout(c.Request.Context(), sessionID, lines, domain.CheckoutContext{
		Fulfillment:   domain.Fulfillment(req.Fulfillment),
		PaymentMethod: req.PaymentMethod,
		BuyerID:       sessionID,
		BuyerName:     req.BuyerName,
		BuyerMobile:   req.BuyerMobile,
		BuyerAddress:  req.BuyerAddress,
	})
	if errors.Is(err, domain.ErrEmptyCart) {
		response.ErrorWithStatus(c, http.StatusBadRequest, "cart is empty", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Checkout failed", "error", err)
		response.Error(c, err.Error())
		return
	}

	// 只有结账完成后才清空购物车
	h.cart.Clear(c.Request.Context(), sessionID)

	response.Success(c, orders)
}

// MyOrders 买家订单列表
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.svc.BuyerOrders(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list buyer orders", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, orders)
}

// GetOrder 订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrOrderNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get order", "order_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, order)
}

// SellerOrders 卖家订单列表
func (h *OrderHandler) SellerOrders(c *gin.Context) {
	orders, err := h.svc.SellerOrders(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list seller orders", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, orders)
}

// UpdateStatusRequest 状态推进请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID SHIPPED COMPLETED CANCELLED"`
}

// UpdateStatus 卖家推进订单状态
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), domain.OrderStatus(req.Status))
	if errors.Is(err, domain.ErrOrderNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found", nil)
		return
	}
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	response.Success(c, order)
}

// Earnings 卖家收入汇总
func (h *OrderHandler) Earnings(c *gin.Context) {
	earnings, err := h.svc.SellerEarnings(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to compute seller earnings", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, earnings)
}

// RegisterAdminRoutes 注册管理端账本路由（需要 ADMIN 角色）
func (h *OrderHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/api/v1/admin/orders", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		orders, err := h.svc.Ledger(c.Request.Context(), limit)
		if err != nil {
			logger.Error(c.Request.Context(), "Failed to read order ledger", "error", err)
			response.Error(c, err.Error())
			return
		}
		response.Success(c, orders)
	})
}
