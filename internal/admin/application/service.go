// Package application 实现平台管理端的店铺审批
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
)

// Service 管理端应用服务
type Service struct {
	shops domain.ShopRepository
}

// NewService 创建管理端应用服务
func NewService(shops domain.ShopRepository) *Service {
	return &Service{shops: shops}
}

// PendingShops 待审批店铺列表
func (s *Service) PendingShops(ctx context.Context, limit, offset int) ([]*domain.Shop, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.shops.List(ctx, domain.ShopFilter{
		Status: domain.ShopStatusPending,
		Limit:  limit,
		Offset: offset,
	})
}

// Shops 按状态浏览店铺
func (s *Service) Shops(ctx context.Context, filter domain.ShopFilter) ([]*domain.Shop, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.shops.List(ctx, filter)
}

// Approve 批准开店申请
func (s *Service) Approve(ctx context.Context, shopID string) (*domain.Shop, error) {
	return s.transition(ctx, shopID, domain.ShopStatusApproved)
}

// Reject 驳回开店申请
func (s *Service) Reject(ctx context.Context, shopID string) (*domain.Shop, error) {
	return s.transition(ctx, shopID, domain.ShopStatusRejected)
}

// Suspend 暂停已批准的店铺
func (s *Service) Suspend(ctx context.Context, shopID string) (*domain.Shop, error) {
	return s.transition(ctx, shopID, domain.ShopStatusSuspended)
}

// Reinstate 恢复被暂停的店铺
func (s *Service) Reinstate(ctx context.Context, shopID string) (*domain.Shop, error) {
	return s.transition(ctx, shopID, domain.ShopStatusApproved)
}

func (s *Service) transition(ctx context.Context, shopID string, next domain.ShopStatus) (*domain.Shop, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := shop.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, fmt.Errorf("save shop: %w", err)
	}
	logger.Info(ctx, "Shop status changed", "shop_id", shopID, "status", next)
	return shop, nil
}
