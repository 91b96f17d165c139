// Package http 商品目录的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wyfcoding/marketplace/internal/catalog/application"
	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler HTTP 处理器
// 负责店面目录浏览与卖家商品管理
type CatalogHandler struct {
	svc *application.Service
}

// NewCatalogHandler 创建 HTTP 处理器实例
func NewCatalogHandler(svc *application.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// RegisterPublicRoutes 注册店面浏览路由
func (h *CatalogHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/v1/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
	shops := router.Group("/api/v1/shops")
	{
		shops.GET("", h.ListShops)
		shops.GET("/trending", h.Trending)
		shops.GET("/:id", h.GetShop)
		shops.GET("/:id/products", h.ListShopProducts)
	}
}

// RegisterSellerRoutes 注册卖家管理路由（需要 SELLER 角色）
func (h *CatalogHandler) RegisterSellerRoutes(router *gin.RouterGroup) {
	seller := router.Group("/api/v1/seller")
	{
		seller.POST("/shop", h.CreateShop)
		seller.PUT("/shop", h.UpdateShop)
		seller.GET("/shop", h.MyShop)
		seller.POST("/products", h.CreateProduct)
		seller.PUT("/products/:id", h.UpdateProduct)
		seller.DELETE("/products/:id", h.DeleteProduct)
	}
}

// ListProducts 商品列表，支持过滤与排序
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Keyword:  c.Query("q"),
		Category: c.Query("category"),
		ShopID:   c.Query("shop_id"),
		Tag:      c.Query("tag"),
		Sort:     c.Query("sort"),
	}
	filter.MinPrice, _ = strconv.ParseInt(c.DefaultQuery("min_price", "0"), 10, 64)
	filter.MaxPrice, _ = strconv.ParseInt(c.DefaultQuery("max_price", "0"), 10, 64)
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := h.svc.ListProducts(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"products": products, "total": total})
}

// GetProduct 商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get product", "product_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, product)
}

// ListShops 店铺列表
func (h *CatalogHandler) ListShops(c *gin.Context) {
	filter := domain.ShopFilter{
		Bazaar:   c.Query("bazaar"),
		Category: c.Query("category"),
		Status:   domain.ShopStatusApproved,
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	shops, total, err := h.svc.ListShops(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list shops", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"shops": shops, "total": total})
}

// Trending 热门店铺
func (h *CatalogHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	shops, err := h.svc.Trending(c.Request.Context(), limit)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list trending shops", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, shops)
}

// GetShop 店铺详情
func (h *CatalogHandler) GetShop(c *gin.Context) {
	shop, err := h.svc.GetShop(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrShopNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "shop not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get shop", "shop_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, shop)
}

// ListShopProducts 店铺页的商品列表
func (h *CatalogHandler) ListShopProducts(c *gin.Context) {
	products, _, err := h.svc.ListProducts(c.Request.Context(), domain.ProductFilter{ShopID: c.Param("id")})
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list shop products", "shop_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, products)
}

// ShopRequest 店铺创建/更新请求
type ShopRequest struct {
	Name           string   `json:"name" binding:"required"`
	LogoURL        string   `json:"logo_url"`
	BannerURL      string   `json:"banner_url"`
	Bio            string   `json:"bio"`
	ContactNumbers []string `json:"contact_numbers"`
	Bazaar         string   `json:"bazaar"`
	Category       string   `json:"category"`
	Tier           string   `json:"tier"`
}

// CreateShop 卖家开店
func (h *CatalogHandler) CreateShop(c *gin.Context) {
	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	shop, err := h.svc.CreateShop(c.Request.Context(), middleware.CurrentUserID(c), application.CreateShopInput{
		Name:           req.Name,
		LogoURL:        req.LogoURL,
		BannerURL:      req.BannerURL,
		Bio:            req.Bio,
		ContactNumbers: req.ContactNumbers,
		Bazaar:         req.Bazaar,
		Category:       req.Category,
		Tier:           req.Tier,
	})
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create shop", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, shop)
}

// UpdateShop 卖家更新店铺信息
func (h *CatalogHandler) UpdateShop(c *gin.Context) {
	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	shop, err := h.svc.UpdateShopProfile(c.Request.Context(), middleware.CurrentUserID(c), application.CreateShopInput{
		Name:           req.Name,
		LogoURL:        req.LogoURL,
		BannerURL:      req.BannerURL,
		Bio:            req.Bio,
		ContactNumbers: req.ContactNumbers,
	})
	if errors.Is(err, domain.ErrShopNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "shop not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to update shop", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, shop)
}

// MyShop 卖家自己的店铺
func (h *CatalogHandler) MyShop(c *gin.Context) {
	shop, err := h.svc.GetShopByOwner(c.Request.Context(), middleware.CurrentUserID(c))
	if errors.Is(err, domain.ErrShopNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "shop not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get seller shop", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, shop)
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Price               int64    `json:"price"`
	Category            string   `json:"category"`
	Images              []string `json:"images"`
	VideoURL            *string  `json:"video_url"`
	Tags                []string `json:"tags"`
	Stock               *int     `json:"stock"`
	GenerateDescription bool     `json:"generate_description"`
}

func (r ProductRequest) toInput() application.CreateProductInput {
	return application.CreateProductInput{
		Name:                r.Name,
		Description:         r.Description,
		Price:               r.Price,
		Category:            r.Category,
		Images:              r.Images,
		VideoURL:            r.VideoURL,
		Tags:                r.Tags,
		Stock:               r.Stock,
		GenerateDescription: r.GenerateDescription,
	}
}

// CreateProduct 卖家上架商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), middleware.CurrentUserID(c), req.toInput())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create product", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, product)
}

// UpdateProduct 卖家更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.toInput())
	if errors.Is(err, domain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to update product", "product_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, product)
}

// DeleteProduct 卖家下架商品
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	err := h.svc.DeleteProduct(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if errors.Is(err, domain.ErrProductNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", nil)
		return
	}
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to delete product", "product_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": c.Param("id")})
}
