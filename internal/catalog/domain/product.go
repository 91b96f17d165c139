// Package domain 包含商品目录的领域模型
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")

// Product 商品实体
// 下单时商品字段会被快照进订单，之后不可变
type Product struct {
	// 商品 ID
	ID string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	// 所属店铺 ID
	ShopID string `gorm:"column:shop_id;type:varchar(36);index;not null" json:"shop_id"`
	// 商品名称
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// 商品描述
	Description string `gorm:"column:description;type:text" json:"description"`
	// 价格（最小货币单位，必须为正）
	Price int64 `gorm:"column:price;not null" json:"price"`
	// 分类
	Category string `gorm:"column:category;type:varchar(100);index" json:"category"`
	// 图片引用，有序
	Images []string `gorm:"column:images;type:json;serializer:json" json:"images"`
	// 视频引用，可选
	VideoURL *string `gorm:"column:video_url;type:varchar(512)" json:"video_url,omitempty"`
	// 标签集合
	Tags []string `gorm:"column:tags;type:json;serializer:json" json:"tags"`
	// 库存，可选
	Stock *int `gorm:"column:stock" json:"stock,omitempty"`
	// 创建时间
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }

// Validate 校验商品字段
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.ShopID == "" {
		return errors.New("product shop_id is required")
	}
	if p.Price <= 0 {
		return errors.New("product price must be positive")
	}
	return nil
}

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	Keyword  string
	Category string
	ShopID   string
	MinPrice int64
	MaxPrice int64
	Tag      string
	// 排序：newest, price_asc, price_desc
	Sort   string
	Limit  int
	Offset int
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	ListByShop(ctx context.Context, shopID string) ([]*Product, error)
	Delete(ctx context.Context, id string) error
}
