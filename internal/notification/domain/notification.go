// Package domain 定义通知实体与路由匹配规则
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotificationNotFound 通知不存在
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationType 通知类型
type NotificationType string

const (
	// TypeOrder 新订单通知
	TypeOrder NotificationType = "ORDER"
	// TypeSystem 系统通知
	TypeSystem NotificationType = "SYSTEM"
)

// Notification 通知实体
// 每张落账订单恰好生成一条，收件人为该订单的卖家
type Notification struct {
	ID             string           `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title          string           `gorm:"type:varchar(128);not null" json:"title"`
	Message        string           `gorm:"type:varchar(512);not null" json:"message"`
	Type           NotificationType `gorm:"type:varchar(16);not null;default:'ORDER'" json:"type"`
	TargetSellerID string           `gorm:"type:varchar(64);not null;index" json:"target_seller_id"`
	Read           bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time        `json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

// MarkRead 置为已读；对已读通知重复调用是可观测的空操作
func (n *Notification) MarkRead() bool {
	if n.Read {
		return false
	}
	n.Read = true
	return true
}

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListBySeller(ctx context.Context, sellerID string, limit int) ([]*Notification, error)
	ListRecent(ctx context.Context, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context, sellerID string) (int64, error)
}
