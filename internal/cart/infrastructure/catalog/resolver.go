// Package catalog 把商品目录桥接为购物车的行项目解析器
package catalog

import (
	"context"
	"fmt"

	"github.com/wyfcoding/marketplace/internal/cart/domain"
	catalogapp "github.com/wyfcoding/marketplace/internal/catalog/application"
)

// ErrShopNotSellable 商品所属店铺不可售
var ErrShopNotSellable = fmt.Errorf("shop is not open for selling")

// Resolver 基于商品目录的行项目解析器
type Resolver struct {
	catalog *catalogapp.Service
}

// NewResolver 创建解析器实例
func NewResolver(catalog *catalogapp.Service) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve 将商品 ID 解析为加车时刻的价格与卖家快照
func (r *Resolver) Resolve(ctx context.Context, productID string) (domain.Item, error) {
	product, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Item{}, err
	}
	shop, err := r.catalog.GetShop(ctx, product.ShopID)
	if err != nil {
		return domain.Item{}, err
	}
	if !shop.IsSellable() {
		return domain.Item{}, ErrShopNotSellable
	}

	item := domain.Item{
		ProductID: product.ID,
		ShopID:    shop.ID,
		SellerID:  shop.OwnerID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	return item, nil
}
