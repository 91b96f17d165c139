// Package domain 定义用户实体与角色
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrMobileTaken 手机号已注册
	ErrMobileTaken = errors.New("mobile already registered")
	// ErrInvalidCredentials 手机号或密码错误
	ErrInvalidCredentials = errors.New("invalid mobile or password")
)

// Role 用户角色
type Role string

const (
	// RoleAdmin 平台管理员
	RoleAdmin Role = "ADMIN"
	// RoleSeller 卖家
	RoleSeller Role = "SELLER"
	// RoleBuyer 买家
	RoleBuyer Role = "BUYER"
	// RoleGuest 匿名会话
	RoleGuest Role = "GUEST"
)

// Valid 角色是否为可注册角色
func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleBuyer
}

// User 用户实体
type User struct {
	ID           string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(64);not null" json:"name"`
	Mobile       string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"mobile"`
	Address      string    `gorm:"type:varchar(256)" json:"address"`
	City         string    `gorm:"type:varchar(64)" json:"city"`
	Tier         string    `gorm:"type:varchar(32)" json:"tier"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;default:'BUYER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByMobile(ctx context.Context, mobile string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// SavedProduct 用户收藏的商品
type SavedProduct struct {
	UserID    string    `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	ProductID string    `gorm:"type:varchar(64);primaryKey" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (SavedProduct) TableName() string {
	return "saved_products"
}

// SavedProductRepository 商品收藏仓储接口
// Save 重复收藏为空操作
type SavedProductRepository interface {
	Save(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]string, error)
}
