// Package mysql 商品目录的 GORM 仓储实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"

	"gorm.io/gorm"
)

// ProductRepository 商品仓储
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ShopID != "" {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Tag != "" {
		query = query.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", filter.Tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var products []*domain.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

// ShopRepository 店铺仓储
type ShopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓储
func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) Save(ctx context.Context, shop *domain.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	var shop domain.Shop
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	var shop domain.Shop
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) List(ctx context.Context, filter domain.ShopFilter) ([]*domain.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Shop{})

	if filter.Bazaar != "" {
		query = query.Where("bazaar = ?", filter.Bazaar)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var shops []*domain.Shop
	if err := query.Order("created_at DESC").Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

func (r *ShopRepository) ListTrending(ctx context.Context, limit int) ([]*domain.Shop, error) {
	var shops []*domain.Shop
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.ShopStatusApproved).
		Order("featured DESC").
		Order("sort_priority DESC").
		Limit(limit).
		Find(&shops).Error
	return shops, err
}
