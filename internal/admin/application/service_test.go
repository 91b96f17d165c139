package application

import (
	"context"
	"testing"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"

	"github.com/stretchr/testify/require"
)

type fakeShopRepo struct {
	shops map[string]*domain.Shop
}

func newFakeShopRepo(shops ...*domain.Shop) *fakeShopRepo {
	repo := &fakeShopRepo{shops: make(map[string]*domain.Shop)}
	for _, shop := range shops {
		repo.shops[shop.ID] = shop
	}
	return repo
}

func (f *fakeShopRepo) Save(_ context.Context, shop *domain.Shop) error {
	f.shops[shop.ID] = shop
	return nil
}

func (f *fakeShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	return shop, nil
}

func (f *fakeShopRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Shop, error) {
	for _, shop := range f.shops {
		if shop.OwnerID == ownerID {
			return shop, nil
		}
	}
	return nil, domain.ErrShopNotFound
}

func (f *fakeShopRepo) List(_ context.Context, filter domain.ShopFilter) ([]*domain.Shop, int64, error) {
	var out []*domain.Shop
	for _, shop := range f.shops {
		if filter.Status != "" && shop.Status != filter.Status {
			continue
		}
		out = append(out, shop)
	}
	return out, int64(len(out)), nil
}

func (f *fakeShopRepo) ListTrending(_ context.Context, limit int) ([]*domain.Shop, error) {
	var out []*domain.Shop
	for _, shop := range f.shops {
		out = append(out, shop)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestApproveRejectLifecycle(t *testing.T) {
	repo := newFakeShopRepo(
		&domain.Shop{ID: "shop-1", Status: domain.ShopStatusPending},
		&domain.Shop{ID: "shop-2", Status: domain.ShopStatusPending},
	)
	svc := NewService(repo)

	shop, err := svc.Approve(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Equal(t, domain.ShopStatusApproved, shop.Status)

	shop, err = svc.Reject(context.Background(), "shop-2")
	require.NoError(t, err)
	require.Equal(t, domain.ShopStatusRejected, shop.Status)

	// 已驳回的店铺不可再批准
	_, err = svc.Approve(context.Background(), "shop-2")
	require.Error(t, err)
}

func TestSuspendAndReinstate(t *testing.T) {
	repo := newFakeShopRepo(&domain.Shop{ID: "shop-1", Status: domain.ShopStatusApproved})
	svc := NewService(repo)

	shop, err := svc.Suspend(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Equal(t, domain.ShopStatusSuspended, shop.Status)
	require.False(t, shop.IsSellable())

	shop, err = svc.Reinstate(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Equal(t, domain.ShopStatusApproved, shop.Status)
}

func TestApproveMissingShop(t *testing.T) {
	svc := NewService(newFakeShopRepo())

	_, err := svc.Approve(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrShopNotFound)
}

func TestPendingShops(t *testing.T) {
	repo := newFakeShopRepo(
		&domain.Shop{ID: "shop-1", Status: domain.ShopStatusPending},
		&domain.Shop{ID: "shop-2", Status: domain.ShopStatusApproved},
	)
	svc := NewService(repo)

	shops, total, err := svc.PendingShops(context.Background(), 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "shop-1", shops[0].ID)
}
