// Package application 实现商品目录的应用服务
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"

	"github.com/google/uuid"
)

// Copywriter 商品文案生成协作方
// 失败时返回固定回退文案，不返回错误
type Copywriter interface {
	Describe(ctx context.Context, prompt string) string
}

// CatalogMirror 目录快照镜像
// 写失败由镜像层自行记录，不会上抛
type CatalogMirror interface {
	SaveCatalog(ctx context.Context, shops []*domain.Shop, products []*domain.Product)
}

// Service 目录应用服务
type Service struct {
	products domain.ProductRepository
	shops    domain.ShopRepository
	writer   Copywriter
	mirror   CatalogMirror
}

// NewService 创建目录应用服务
func NewService(products domain.ProductRepository, shops domain.ShopRepository, writer Copywriter, mirror CatalogMirror) *Service {
	return &Service{products: products, shops: shops, writer: writer, mirror: mirror}
}

// CreateShopInput 开店请求
type CreateShopInput struct {
	Name           string
	LogoURL        string
	BannerURL      string
	Bio            string
	ContactNumbers []string
	Bazaar         string
	Category       string
	Tier           string
}

// CreateShop 创建店铺，初始状态 PENDING，等待管理员审批
func (s *Service) CreateShop(ctx context.Context, ownerID string, input CreateShopInput) (*domain.Shop, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("shop name is required")
	}

	shop := &domain.Shop{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Name:           input.Name,
		LogoURL:        input.LogoURL,
		BannerURL:      input.BannerURL,
		Bio:            input.Bio,
		ContactNumbers: input.ContactNumbers,
		Bazaar:         input.Bazaar,
		Category:       input.Category,
		Status:         domain.ShopStatusPending,
		Tier:           input.Tier,
	}

	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, fmt.Errorf("save shop: %w", err)
	}

	s.mirrorCatalog(ctx)
	return shop, nil
}

// GetShop 获取店铺
func (s *Service) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	return s.shops.GetByID(ctx, id)
}

// GetShopByOwner 获取卖家自己的店铺
func (s *Service) GetShopByOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	return s.shops.GetByOwner(ctx, ownerID)
}

// ListShops 按条件列出店铺
func (s *Service) ListShops(ctx context.Context, filter domain.ShopFilter) ([]*domain.Shop, int64, error) {
	return s.shops.List(ctx, filter)
}

// Trending 热门店铺：精选优先，其后按人工排序权重降序
func (s *Service) Trending(ctx context.Context, limit int) ([]*domain.Shop, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.shops.ListTrending(ctx, limit)
}

// UpdateShopProfile 卖家更新店铺展示信息
func (s *Service) UpdateShopProfile(ctx context.Context, ownerID string, input CreateShopInput) (*domain.Shop, error) {
	shop, err := s.shops.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		shop.Name = input.Name
	}
	shop.LogoURL = input.LogoURL
	shop.BannerURL = input.BannerURL
	shop.Bio = input.Bio
	if len(input.ContactNumbers) > 0 {
		shop.ContactNumbers = input.ContactNumbers
	}

	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, fmt.Errorf("save shop: %w", err)
	}

	s.mirrorCatalog(ctx)
	return shop, nil
}

// CreateProductInput 商品创建请求
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Images      []string
	VideoURL    *string
	Tags        []string
	Stock       *int
	// 为空描述请求生成文案
	GenerateDescription bool
}

// CreateProduct 卖家上架商品，仅限 APPROVED 店铺的店主
func (s *Service) CreateProduct(ctx context.Context, ownerID string, input CreateProductInput) (*domain.Product, error) {
	shop, err := s.shops.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !shop.IsSellable() {
		return nil, fmt.Errorf("shop %s is not approved for selling", shop.ID)
	}

	description := input.Description
	if description == "" && input.GenerateDescription {
		description = s.writer.Describe(ctx, fmt.Sprintf("Write a short product description for %q in category %q.", input.Name, input.Category))
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		ShopID:      shop.ID,
		Name:        input.Name,
		Description: description,
		Price:       input.Price,
		Category:    input.Category,
		Images:      input.Images,
		VideoURL:    input.VideoURL,
		Tags:        input.Tags,
		Stock:       input.Stock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	s.mirrorCatalog(ctx)
	return product, nil
}

// UpdateProduct 卖家更新商品
func (s *Service) UpdateProduct(ctx context.Context, ownerID, productID string, input CreateProductInput) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if len(input.Images) > 0 {
		product.Images = input.Images
	}
	if input.VideoURL != nil {
		product.VideoURL = input.VideoURL
	}
	if len(input.Tags) > 0 {
		product.Tags = input.Tags
	}
	if input.Stock != nil {
		product.Stock = input.Stock
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	s.mirrorCatalog(ctx)
	return product, nil
}

// DeleteProduct 卖家下架商品
func (s *Service) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	if _, err := s.ownedProduct(ctx, ownerID, productID); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.mirrorCatalog(ctx)
	return nil
}

// GetProduct 获取商品
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts 按条件列出商品
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	return s.products.List(ctx, filter)
}

// ownedProduct 校验商品归属于 ownerID 的店铺
func (s *Service) ownedProduct(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	shop, err := s.shops.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shop.ID {
		return nil, fmt.Errorf("product %s does not belong to shop %s", productID, shop.ID)
	}
	return product, nil
}

// EnsureSeeded 目录为空时写入预置演示店铺与商品
// 快照回灌得到的目录优先于内置种子
func (s *Service) EnsureSeeded(ctx context.Context, shops []*domain.Shop, products []*domain.Product) error {
	existing, _, err := s.shops.List(ctx, domain.ShopFilter{Limit: 1})
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if len(shops) == 0 {
		shops = domain.SeedShops()
	}
	if len(products) == 0 {
		products = domain.SeedProducts()
	}
	for _, shop := range shops {
		if err := s.shops.Save(ctx, shop); err != nil {
			return fmt.Errorf("seed shop %s: %w", shop.ID, err)
		}
	}
	for _, product := range products {
		if err := s.products.Save(ctx, product); err != nil {
			return fmt.Errorf("seed product %s: %w", product.ID, err)
		}
	}
	logger.Info(ctx, "Seeded catalog", "shops", len(shops), "products", len(products))
	s.mirrorCatalog(ctx)
	return nil
}

// mirrorCatalog 将目录全量镜像到快照存储
func (s *Service) mirrorCatalog(ctx context.Context) {
	shops, _, err := s.shops.List(ctx, domain.ShopFilter{})
	if err != nil {
		logger.Warn(ctx, "catalog mirror skipped: list shops failed", "error", err)
		return
	}
	products, _, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		logger.Warn(ctx, "catalog mirror skipped: list products failed", "error", err)
		return
	}
	s.mirror.SaveCatalog(ctx, shops, products)
}
