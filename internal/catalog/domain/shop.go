package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrShopNotFound 店铺不存在
var ErrShopNotFound = errors.New("shop not found")

// ShopStatus 店铺生命周期状态
type ShopStatus string

const (
	ShopStatusPending   ShopStatus = "PENDING"
	ShopStatusApproved  ShopStatus = "APPROVED"
	ShopStatusRejected  ShopStatus = "REJECTED"
	ShopStatusSuspended ShopStatus = "SUSPENDED"
)

// Shop 店铺实体
type Shop struct {
	// 店铺 ID
	ID string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	// 店主用户 ID
	OwnerID string `gorm:"column:owner_id;type:varchar(36);index;not null" json:"owner_id"`
	// 店铺名称
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// Logo 引用
	LogoURL string `gorm:"column:logo_url;type:varchar(512)" json:"logo_url"`
	// 横幅引用
	BannerURL string `gorm:"column:banner_url;type:varchar(512)" json:"banner_url"`
	// 店铺简介
	Bio string `gorm:"column:bio;type:text" json:"bio"`
	// 联系电话
	ContactNumbers []string `gorm:"column:contact_numbers;type:json;serializer:json" json:"contact_numbers"`
	// 所属巴扎（实体市场聚类）
	Bazaar string `gorm:"column:bazaar;type:varchar(100);index" json:"bazaar"`
	// 市场分类
	Category string `gorm:"column:category;type:varchar(100);index" json:"category"`
	// 生命周期状态
	Status ShopStatus `gorm:"column:status;type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	// 订阅档位
	Tier string `gorm:"column:tier;type:varchar(20)" json:"tier"`
	// 热门排序权重，人工指定
	SortPriority int `gorm:"column:sort_priority;not null;default:0" json:"sort_priority"`
	// 是否精选
	Featured bool `gorm:"column:featured;not null;default:false" json:"featured"`
	// 创建时间
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Shop) TableName() string { return "shops" }

// CanTransitionTo 校验生命周期迁移是否合法
// PENDING -> APPROVED | REJECTED；APPROVED <-> SUSPENDED
func (s *Shop) CanTransitionTo(next ShopStatus) bool {
	switch s.Status {
	case ShopStatusPending:
		return next == ShopStatusApproved || next == ShopStatusRejected
	case ShopStatusApproved:
		return next == ShopStatusSuspended
	case ShopStatusSuspended:
		return next == ShopStatusApproved
	default:
		return false
	}
}

// TransitionTo 执行生命周期迁移
func (s *Shop) TransitionTo(next ShopStatus) error {
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("invalid shop status transition: %s -> %s", s.Status, next)
	}
	s.Status = next
	return nil
}

// IsSellable 店铺是否可以上架和售卖商品
func (s *Shop) IsSellable() bool {
	return s.Status == ShopStatusApproved
}

// ShopFilter 店铺列表过滤条件
type ShopFilter struct {
	Bazaar   string
	Category string
	Status   ShopStatus
	Limit    int
	Offset   int
}

// ShopRepository 店铺仓储接口
type ShopRepository interface {
	Save(ctx context.Context, shop *Shop) error
	GetByID(ctx context.Context, id string) (*Shop, error)
	GetByOwner(ctx context.Context, ownerID string) (*Shop, error)
	List(ctx context.Context, filter ShopFilter) ([]*Shop, int64, error)
	// ListTrending 返回热门店铺：精选优先，其后按 SortPriority 降序
	ListTrending(ctx context.Context, limit int) ([]*Shop, error)
}

// SortTrending 对店铺切片执行热门排序：精选优先，其后按 SortPriority 降序
// 仓储实现与种子目录共用同一规则
func SortTrending(shops []*Shop) {
	for i := 1; i < len(shops); i++ {
		for j := i; j > 0 && trendsBefore(shops[j], shops[j-1]); j-- {
			shops[j], shops[j-1] = shops[j-1], shops[j]
		}
	}
}

func trendsBefore(a, b *Shop) bool {
	if a.Featured != b.Featured {
		return a.Featured
	}
	return a.SortPriority > b.SortPriority
}
