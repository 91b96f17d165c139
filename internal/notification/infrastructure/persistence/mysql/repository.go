// Package mysql 通知仓储的 MySQL 实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/marketplace/internal/notification/domain"

	"gorm.io/gorm"
)

// NotificationRepository 通知仓储
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储实例
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Save 保存通知
func (r *NotificationRepository) Save(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// GetByID 按 ID 查询通知
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListBySeller 查询卖家的通知，最近优先
func (r *NotificationRepository) ListBySeller(ctx context.Context, sellerID string, limit int) ([]*domain.Notification, error) {
	var list []*domain.Notification
	err := r.db.WithContext(ctx).
		Where("target_seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListRecent 查询全量通知日志，最近优先
func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Notification, error) {
	var list []*domain.Notification
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// MarkRead 置为已读；已读行再次更新不产生可观测变化
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotificationNotFound
		}
	}
	return nil
}

// UnreadCount 卖家未读通知数
func (r *NotificationRepository) UnreadCount(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("target_seller_id = ? AND `read` = ?", sellerID, false).
		Count(&count).Error
	return count, err
}
