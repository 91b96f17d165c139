package application

import (
	"context"
	"testing"
	"time"

	catalogdomain "github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/internal/user/domain"
	"github.com/wyfcoding/marketplace/pkg/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[string]*domain.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*domain.User)}
}

func (f *fakeRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetByMobile(_ context.Context, mobile string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Mobile == mobile {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeRepo) Update(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeMirror struct {
	saved int
}

func (f *fakeMirror) SaveUser(context.Context, string, any) { f.saved++ }

type fakeSavedRepo struct {
	saved map[string][]string
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{saved: make(map[string][]string)}
}

func (f *fakeSavedRepo) Save(_ context.Context, userID, productID string) error {
	for _, id := range f.saved[userID] {
		if id == productID {
			return nil
		}
	}
	f.saved[userID] = append(f.saved[userID], productID)
	return nil
}

func (f *fakeSavedRepo) Remove(_ context.Context, userID, productID string) error {
	ids := f.saved[userID]
	for i, id := range ids {
		if id == productID {
			f.saved[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSavedRepo) ListByUser(_ context.Context, userID string) ([]string, error) {
	return f.saved[userID], nil
}

type fakeCatalog struct {
	products map[string]*catalogdomain.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*catalogdomain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, catalogdomain.ErrProductNotFound
	}
	return product, nil
}

func newTestService() (*Service, *fakeRepo, *fakeMirror) {
	repo := newFakeRepo()
	mirror := &fakeMirror{}
	catalog := &fakeCatalog{products: map[string]*catalogdomain.Product{
		"p-1": {ID: "p-1", ShopID: "shop-1", Name: "Pot", Price: 4500},
	}}
	svc := NewService(repo, newFakeSavedRepo(), catalog, mirror, "test-secret", time.Hour)
	return svc, repo, mirror
}

func TestSignupAndSignin(t *testing.T) {
	svc, _, mirror := newTestService()

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Rahim",
		Mobile:   "01700000000",
		Password: "secret123",
		Role:     domain.RoleSeller,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, domain.RoleSeller, result.User.Role)
	require.Equal(t, 1, mirror.saved)

	// 令牌携带用户 ID 与角色
	claims := &middleware.Claims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, result.User.ID, claims.UserID)
	require.Equal(t, "SELLER", claims.Role)

	signin, err := svc.Signin(context.Background(), "01700000000", "secret123")
	require.NoError(t, err)
	require.Equal(t, result.User.ID, signin.User.ID)
}

func TestSignupDuplicateMobile(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), SignupInput{
		Name: "a", Mobile: "017", Password: "x", Role: domain.RoleBuyer,
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupInput{
		Name: "b", Mobile: "017", Password: "y", Role: domain.RoleBuyer,
	})
	require.ErrorIs(t, err, domain.ErrMobileTaken)
}

func TestSignupRejectsPrivilegedRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), SignupInput{
		Name: "a", Mobile: "018", Password: "x", Role: domain.RoleAdmin,
	})
	require.Error(t, err)
}

func TestSigninWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Signup(context.Background(), SignupInput{
		Name: "a", Mobile: "019", Password: "right", Role: domain.RoleBuyer,
	})
	require.NoError(t, err)

	_, err = svc.Signin(context.Background(), "019", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Signin(context.Background(), "unknown", "right")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()
	result, err := svc.Signup(context.Background(), SignupInput{
		Name: "a", Mobile: "020", Password: "x", Role: domain.RoleBuyer,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), result.User.ID, UpdateProfileInput{
		Name:    "Karim",
		Address: "House 12, Road 5",
		City:    "Dhaka",
		Tier:    "GOLD",
	})
	require.NoError(t, err)
	require.Equal(t, "Karim", updated.Name)
	require.Equal(t, "House 12, Road 5", updated.Address)
	require.Equal(t, "Dhaka", updated.City)
	require.Equal(t, "GOLD", updated.Tier)

	// 空字段不覆盖已有值
	kept, err := svc.UpdateProfile(context.Background(), result.User.ID, UpdateProfileInput{Name: "Rahim"})
	require.NoError(t, err)
	require.Equal(t, "Rahim", kept.Name)
	require.Equal(t, "Dhaka", kept.City)
	require.Equal(t, "GOLD", kept.Tier)
}

func TestSaveAndListProducts(t *testing.T) {
	svc, _, _ := newTestService()

	require.NoError(t, svc.SaveProduct(context.Background(), "u-1", "p-1"))
	// 重复收藏为空操作
	require.NoError(t, svc.SaveProduct(context.Background(), "u-1", "p-1"))

	products, err := svc.SavedProducts(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Pot", products[0].Name)

	require.NoError(t, svc.UnsaveProduct(context.Background(), "u-1", "p-1"))
	products, err = svc.SavedProducts(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestSaveUnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.SaveProduct(context.Background(), "u-1", "missing")
	require.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}
