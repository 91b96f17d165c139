// Package application 实现用户注册、登录与资料维护
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogdomain "github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/internal/user/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserMirror 用户记录快照镜像
type UserMirror interface {
	SaveUser(ctx context.Context, sessionID string, user any)
}

// ProductCatalog 展开收藏商品用的目录查询
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error)
}

// Service 用户应用服务
type Service struct {
	repo      domain.UserRepository
	saved     domain.SavedProductRepository
	catalog   ProductCatalog
	mirror    UserMirror
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService 创建用户应用服务
func NewService(
	repo domain.UserRepository,
	saved domain.SavedProductRepository,
	catalog ProductCatalog,
	mirror UserMirror,
	jwtSecret string,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		repo:      repo,
		saved:     saved,
		catalog:   catalog,
		mirror:    mirror,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// SignupInput 注册请求
type SignupInput struct {
	Name     string
	Mobile   string
	Address  string
	Password string
	Role     domain.Role
}

// AuthResult 登录态
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Signup 注册并直接签发登录令牌
func (s *Service) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("unsupported role: %s", input.Role)
	}
	if _, err := s.repo.GetByMobile(ctx, input.Mobile); err == nil {
		return nil, domain.ErrMobileTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check mobile: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Mobile:       input.Mobile,
		Address:      input.Address,
		PasswordHash: string(hash),
		Role:         input.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.mirror.SaveUser(ctx, user.ID, user)

	return s.issue(user)
}

// Signin 登录
func (s *Service) Signin(ctx context.Context, mobile, password string) (*AuthResult, error) {
	user, err := s.repo.GetByMobile(ctx, mobile)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	s.mirror.SaveUser(ctx, user.ID, user)

	return s.issue(user)
}

// Profile 查询资料
func (s *Service) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfileInput 资料更新请求
type UpdateProfileInput struct {
	Name    string
	Address string
	City    string
	Tier    string
}

// UpdateProfile 更新资料
func (s *Service) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.Tier != "" {
		user.Tier = input.Tier
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.mirror.SaveUser(ctx, user.ID, user)
	return user, nil
}

// SaveProduct 收藏商品，重复收藏为空操作
func (s *Service) SaveProduct(ctx context.Context, userID, productID string) error {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.saved.Save(ctx, userID, productID)
}

// UnsaveProduct 取消收藏
func (s *Service) UnsaveProduct(ctx context.Context, userID, productID string) error {
	return s.saved.Remove(ctx, userID, productID)
}

// SavedProducts 用户收藏的商品，已下架的商品跳过
func (s *Service) SavedProducts(ctx context.Context, userID string) ([]*catalogdomain.Product, error) {
	ids, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved products: %w", err)
	}
	products := make([]*catalogdomain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.GetProduct(ctx, id)
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			logger.Warn(ctx, "Failed to expand saved product", "product_id", id, "error", err)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *Service) issue(user *domain.User) (*AuthResult, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
