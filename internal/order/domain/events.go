package domain

import (
	"context"
	"time"
)

// OrderPlacedEvent 订单落账事件
type OrderPlacedEvent struct {
	OrderID       string    `json:"order_id"`
	OrderNo       string    `json:"order_no"`
	BuyerID       string    `json:"buyer_id"`
	SellerID      string    `json:"seller_id"`
	Subtotal      int64     `json:"subtotal"`
	DeliveryFee   int64     `json:"delivery_fee"`
	PlatformFee   int64     `json:"platform_fee"`
	Total         int64     `json:"total"`
	Fulfillment   string    `json:"fulfillment"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// EventPublisher 订单事件发布者接口
type EventPublisher interface {
	// PublishOrderPlaced 发布订单落账事件
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}
