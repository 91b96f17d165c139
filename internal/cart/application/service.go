// Package application 实现购物车的应用服务
// 购物车按会话持有于进程内，每次变更后镜像到快照存储
package application

import (
	"context"
	"sync"

	"github.com/wyfcoding/marketplace/internal/cart/domain"
)

// ProductResolver 将商品 ID 解析为购物车行项目快照
type ProductResolver interface {
	Resolve(ctx context.Context, productID string) (domain.Item, error)
}

// StateMirror 状态快照镜像
// SaveState 批量写出购物车/订单/通知；LoadCart 在首次访问时回灌会话购物车
type StateMirror interface {
	SaveState(ctx context.Context, sessionID string)
	LoadCart(ctx context.Context, sessionID string) (domain.Cart, bool)
}

// Service 购物车应用服务
type Service struct {
	mu       sync.RWMutex
	carts    map[string]domain.Cart
	resolver ProductResolver
	mirror   StateMirror
}

// NewService 创建购物车应用服务
func NewService(resolver ProductResolver, mirror StateMirror) *Service {
	return &Service{
		carts:    make(map[string]domain.Cart),
		resolver: resolver,
		mirror:   mirror,
	}
}

// Get 获取会话购物车，进程内缺失时从快照回灌
func (s *Service) Get(ctx context.Context, sessionID string) domain.Cart {
	s.mu.RLock()
	cart, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return cart
	}

	if restored, found := s.mirror.LoadCart(ctx, sessionID); found {
		s.mu.Lock()
		s.carts[sessionID] = restored
		s.mu.Unlock()
		return restored
	}
	return domain.Cart{}
}

// Add 加入商品
func (s *Service) Add(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	line, err := s.resolver.Resolve(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart := domain.Add(s.Get(ctx, sessionID), line)
	s.put(ctx, sessionID, cart)
	return cart, nil
}

// UpdateQuantity 调整数量，下限 1
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) domain.Cart {
	cart := domain.UpdateQuantity(s.Get(ctx, sessionID), productID, delta)
	s.put(ctx, sessionID, cart)
	return cart
}

// Remove 移除商品
func (s *Service) Remove(ctx context.Context, sessionID, productID string) domain.Cart {
	cart := domain.Remove(s.Get(ctx, sessionID), productID)
	s.put(ctx, sessionID, cart)
	return cart
}

// Clear 清空购物车，结账完成后调用
func (s *Service) Clear(ctx context.Context, sessionID string) domain.Cart {
	cart := domain.Clear()
	s.put(ctx, sessionID, cart)
	return cart
}

// CartOf 返回会话当前购物车，供快照镜像批量写出时拉取
func (s *Service) CartOf(ctx context.Context, sessionID string) domain.Cart {
	return s.Get(ctx, sessionID)
}

func (s *Service) put(ctx context.Context, sessionID string, cart domain.Cart) {
	s.mu.Lock()
	s.carts[sessionID] = cart
	s.mu.Unlock()

	s.mirror.SaveState(ctx, sessionID)
}
