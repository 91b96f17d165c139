// Package mysql 用户仓储的 MySQL 实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/marketplace/internal/user/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 用户仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 按 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByMobile 按手机号查询用户
func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("mobile = ?", mobile).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新用户
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SavedProductRepository 商品收藏仓储
type SavedProductRepository struct {
	db *gorm.DB
}

// NewSavedProductRepository 创建商品收藏仓储实例
func NewSavedProductRepository(db *gorm.DB) *SavedProductRepository {
	return &SavedProductRepository{db: db}
}

// Save 收藏商品，重复收藏不报错
func (r *SavedProductRepository) Save(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.SavedProduct{UserID: userID, ProductID: productID}).Error
}

// Remove 取消收藏
func (r *SavedProductRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.SavedProduct{}).Error
}

// ListByUser 用户收藏的商品 ID，最近收藏优先
func (r *SavedProductRepository) ListByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.SavedProduct{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error
	return ids, err
}
