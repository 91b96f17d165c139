// Package domain 包含订单服务的领域模型
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order not found")

// ErrEmptyCart 空购物车不能结账
var ErrEmptyCart = errors.New("cart is empty")

// ErrContactRequired 配送订单缺少买家联系方式
var ErrContactRequired = errors.New("name, mobile and address are required for delivery orders")

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Fulfillment 履约方式
type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "DELIVERY"
	FulfillmentPickup   Fulfillment = "PICKUP"
)

// OrderItem 订单行项目，商品字段为下单时的快照
type OrderItem struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`
	// 所属订单 ID
	OrderID string `gorm:"column:order_id;type:varchar(36);index;not null" json:"-"`
	// 商品 ID
	ProductID string `gorm:"column:product_id;type:varchar(36);not null" json:"product_id"`
	// 店铺 ID
	ShopID string `gorm:"column:shop_id;type:varchar(36);not null" json:"shop_id"`
	// 商品名称快照
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// 单价快照（最小货币单位）
	Price int64 `gorm:"column:price;not null" json:"price"`
	// 首图快照
	Image string `gorm:"column:image;type:varchar(512)" json:"image"`
	// 数量
	Quantity int `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

// Order 订单实体
// 一张订单只属于一个卖家；多卖家购物车在结账时被拆分
type Order struct {
	// 订单 ID
	ID string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	// 订单号（雪花 ID，对外展示）
	OrderNo string `gorm:"column:order_no;type:varchar(32);uniqueIndex;not null" json:"order_no"`
	// 买家用户 ID
	BuyerID string `gorm:"column:buyer_id;type:varchar(36);index;not null" json:"buyer_id"`
	// 卖家用户 ID，订单内所有行项目共享
	SellerID string `gorm:"column:seller_id;type:varchar(36);index;not null" json:"seller_id"`
	// 行项目
	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
	// 小计 = Σ(单价 × 数量)
	Subtotal int64 `gorm:"column:subtotal;not null" json:"subtotal"`
	// 配送费，每个卖家订单各计一次
	DeliveryFee int64 `gorm:"column:delivery_fee;not null" json:"delivery_fee"`
	// 平台费，仅记录，不计入买家应付总额
	PlatformFee int64 `gorm:"column:platform_fee;not null" json:"platform_fee"`
	// 买家应付总额 = 小计 + 配送费
	Total int64 `gorm:"column:total;not null" json:"total"`
	// 订单状态
	Status OrderStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	// 支付方式标记（仅作参考信息，不做支付处理）
	PaymentMethod string `gorm:"column:payment_method;type:varchar(30)" json:"payment_method"`
	// 履约方式
	Fulfillment Fulfillment `gorm:"column:fulfillment;type:varchar(16)" json:"fulfillment"`
	// 买家联系方式快照
	BuyerName    string `gorm:"column:buyer_name;type:varchar(100)" json:"buyer_name"`
	BuyerMobile  string `gorm:"column:buyer_mobile;type:varchar(30)" json:"buyer_mobile"`
	BuyerAddress string `gorm:"column:buyer_address;type:varchar(512)" json:"buyer_address"`
	// 创建时间
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string { return "orders" }

// CanTransitionTo 校验状态迁移是否合法
// PENDING -> PAID | CANCELLED；PAID -> SHIPPED | CANCELLED；SHIPPED -> COMPLETED
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

// TransitionTo 执行状态迁移
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.CanTransitionTo(next) {
		return fmt.Errorf("invalid order status transition: %s -> %s", o.Status, next)
	}
	o.Status = next
	return nil
}

// ShortRef 订单引用号：ID 末四位大写，用于通知标题
func (o *Order) ShortRef() string {
	id := o.ID
	if len(id) > 4 {
		id = id[len(id)-4:]
	}
	ref := []byte(id)
	for i, b := range ref {
		if 'a' <= b && b <= 'z' {
			ref[i] = b - 'a' + 'A'
		}
	}
	return string(ref)
}

// OrderRepository 订单仓储接口
// 订单账本只追加，读取按最近优先排序
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListRecent 最近优先的订单账本
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
}
