// Package http 用户服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"

	catalogdomain "github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/internal/user/application"
	"github.com/wyfcoding/marketplace/internal/user/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler HTTP 处理器
type UserHandler struct {
	svc *application.Service
}

// NewUserHandler 创建 HTTP 处理器实例
func NewUserHandler(svc *application.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterPublicRoutes 注册无需鉴权的路由
func (h *UserHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
	}
}

// RegisterRoutes 注册需要登录态的路由
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/api/v1/users")
	{
		users.GET("/me", h.Profile)
		users.PUT("/me", h.UpdateProfile)
		users.GET("/me/saved", h.SavedProducts)
		users.POST("/me/saved/:product_id", h.SaveProduct)
		users.DELETE("/me/saved/:product_id", h.UnsaveProduct)
	}
}

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=BUYER SELLER"`
}

// Signup 注册
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.Signup(c.Request.Context(), application.SignupInput{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Address:  req.Address,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if errors.Is(err, domain.ErrMobileTaken) {
		response.ErrorWithStatus(c, http.StatusConflict, "mobile already registered", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Signup failed", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, result)
}

// SigninRequest 登录请求
type SigninRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signin 登录
func (h *UserHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.Signin(c.Request.Context(), req.Mobile, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid mobile or password", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Signin failed", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, result)
}

// Profile 当前用户资料
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), middleware.CurrentUserID(c))
	if errors.Is(err, domain.ErrUserNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, user)
}

// SavedProducts 收藏的商品列表
func (h *UserHandler) SavedProducts(c *gin.Context) {
	products, err := h.svc.SavedProducts(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list saved products", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, products)
}

// SaveProduct 收藏商品
func (h *UserHandler) SaveProduct(c *gin.Context) {
	err := h.svc.SaveProduct(c.Request.Context(), middleware.CurrentUserID(c), c.Param("product_id"))
	if errors.Is(err, catalogdomain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", nil)
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// UnsaveProduct 取消收藏
func (h *UserHandler) UnsaveProduct(c *gin.Context) {
	if err := h.svc.UnsaveProduct(c.Request.Context(), middleware.CurrentUserID(c), c.Param("product_id")); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// UpdateProfileRequest 资料更新请求
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Tier    string `json:"tier"`
}

// UpdateProfile 更新当前用户资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), application.UpdateProfileInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Tier:    req.Tier,
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, user)
}
