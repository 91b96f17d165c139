// Package application 实现订单服务：结账拆单、落账派发与卖家仪表盘查询
package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"
	"github.com/wyfcoding/marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationRouter 通知路由协作方
// 每张落账订单恰好触发一次
type NotificationRouter interface {
	RouteOrderPlaced(ctx context.Context, order *domain.Order, currentUserID string)
}

// StateMirror 状态快照镜像
type StateMirror interface {
	SaveState(ctx context.Context, sessionID string)
}

// Service 订单应用服务
type Service struct {
	repo           domain.OrderRepository
	fees           domain.FeeSchedule
	commissionRate decimal.Decimal
	router         NotificationRouter
	publisher      domain.EventPublisher
	mirror         StateMirror
	metrics        *metrics.Metrics
	orderNo        *utils.SnowflakeID
}

// NewService 创建订单应用服务
func NewService(
	repo domain.OrderRepository,
	fees domain.FeeSchedule,
	commissionRate decimal.Decimal,
	router NotificationRouter,
	publisher domain.EventPublisher,
	mirror StateMirror,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:           repo,
		fees:           fees,
		commissionRate: commissionRate,
		router:         router,
		publisher:      publisher,
		mirror:         mirror,
		metrics:        m,
		orderNo:        utils.NewSnowflakeID(1),
	}
}

// Checkout 结账：拆单 -> 逐单落账并派发通知 -> 批量镜像状态
// 每个环节对同一事件内严格顺序执行；对外部账本为发后即忘
func (s *Service) Checkout(ctx context.Context, sessionID string, lines []domain.Line, checkout domain.CheckoutContext) ([]*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	start := time.Now()

	orders := domain.Split(lines, checkout, s.fees,
		func() string { return uuid.New().String() },
		func() string { return strconv.FormatInt(s.orderNo.Generate(), 10) },
		time.Now(),
	)

	for _, order := range orders {
		if err := s.placeOrder(ctx, order, sessionID); err != nil {
			return nil, err
		}
	}

	s.mirror.SaveState(ctx, sessionID)
	s.metrics.CheckoutDuration.Observe(time.Since(start).Seconds())

	return orders, nil
}

// placeOrder 将订单追加到账本最前端并触发恰好一条通知
// 不做订单 ID 去重：全局唯一 ID 由调用方生成
func (s *Service) placeOrder(ctx context.Context, order *domain.Order, currentUserID string) error {
	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("append order to ledger: %w", err)
	}
	s.metrics.OrdersPlacedTotal.WithLabelValues(string(order.Fulfillment)).Inc()

	// 事件广播为发后即忘：失败只记录，不重试，不上抛
	if err := s.publisher.PublishOrderPlaced(ctx, domain.OrderPlacedEvent{
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		BuyerID:       order.BuyerID,
		SellerID:      order.SellerID,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		PlatformFee:   order.PlatformFee,
		Total:         order.Total,
		Fulfillment:   string(order.Fulfillment),
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
	}); err != nil {
		logger.Warn(ctx, "order event publish failed", "order_id", order.ID, "error", err)
	}

	s.router.RouteOrderPlaced(ctx, order, currentUserID)
	return nil
}

// GetOrder 获取订单
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Ledger 最近优先的订单账本
func (s *Service) Ledger(ctx context.Context, limit int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

// BuyerOrders 买家订单列表
func (s *Service) BuyerOrders(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

// SellerOrders 卖家订单列表
func (s *Service) SellerOrders(ctx context.Context, sellerID string) ([]*domain.Order, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// UpdateStatus 卖家推进订单状态
func (s *Service) UpdateStatus(ctx context.Context, sellerID, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, fmt.Errorf("order %s does not belong to seller %s", orderID, sellerID)
	}
	if err := order.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}

// RecentOrders 供快照镜像批量写出时拉取账本
func (s *Service) RecentOrders(ctx context.Context) []*domain.Order {
	orders, err := s.repo.ListRecent(ctx, 100)
	if err != nil {
		logger.Warn(ctx, "order mirror source failed", "error", err)
		return nil
	}
	return orders
}

// Earnings 卖家仪表盘收入汇总
type Earnings struct {
	// 订单数（不含已取消）
	OrderCount int `json:"order_count"`
	// 商品流水总额
	Gross int64 `json:"gross"`
	// 代收配送费
	DeliveryCollected int64 `json:"delivery_collected"`
	// 已记录的平台费总额
	PlatformFees int64 `json:"platform_fees"`
	// 平台抽佣 = 抽佣比例 × 流水
	Commission string `json:"commission"`
	// 预计净收入 = 流水 - 抽佣
	NetPayout string `json:"net_payout"`
}

// SellerEarnings 汇总卖家的流水、费用与抽佣
func (s *Service) SellerEarnings(ctx context.Context, sellerID string) (*Earnings, error) {
	orders, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	earnings := &Earnings{}
	for _, o := range orders {
		if o.Status == domain.OrderStatusCancelled {
			continue
		}
		earnings.OrderCount++
		earnings.Gross += o.Subtotal
		earnings.DeliveryCollected += o.DeliveryFee
		earnings.PlatformFees += o.PlatformFee
	}

	gross := decimal.NewFromInt(earnings.Gross)
	commission := s.commissionRate.Mul(gross).Round(2)
	earnings.Commission = commission.String()
	earnings.NetPayout = gross.Sub(commission).String()

	return earnings, nil
}
