package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShopLifecycle(t *testing.T) {
	shop := &Shop{ID: "shop-1", Status: ShopStatusPending}

	require.NoError(t, shop.TransitionTo(ShopStatusApproved))
	require.True(t, shop.IsSellable())

	require.NoError(t, shop.TransitionTo(ShopStatusSuspended))
	require.False(t, shop.IsSellable())

	require.NoError(t, shop.TransitionTo(ShopStatusApproved))
}

func TestShopInvalidTransitions(t *testing.T) {
	rejected := &Shop{Status: ShopStatusRejected}
	require.Error(t, rejected.TransitionTo(ShopStatusApproved))

	pending := &Shop{Status: ShopStatusPending}
	require.Error(t, pending.TransitionTo(ShopStatusSuspended))
}

func TestSortTrendingFeaturedFirst(t *testing.T) {
	shops := []*Shop{
		{ID: "a", SortPriority: 9},
		{ID: "b", Featured: true, SortPriority: 1},
		{ID: "c", Featured: true, SortPriority: 5},
		{ID: "d", SortPriority: 3},
	}

	SortTrending(shops)

	ids := []string{shops[0].ID, shops[1].ID, shops[2].ID, shops[3].ID}
	require.Equal(t, []string{"c", "b", "a", "d"}, ids)
}

func TestProductValidate(t *testing.T) {
	valid := &Product{ID: "p-1", ShopID: "shop-1", Name: "Panjabi", Price: 4500}
	require.NoError(t, valid.Validate())

	free := &Product{ID: "p-2", ShopID: "shop-1", Name: "Panjabi", Price: 0}
	require.Error(t, free.Validate())

	unnamed := &Product{ID: "p-3", ShopID: "shop-1", Price: 100}
	require.Error(t, unnamed.Validate())
}

func TestSeedCatalogConsistent(t *testing.T) {
	shops := SeedShops()
	products := SeedProducts()
	require.NotEmpty(t, shops)
	require.NotEmpty(t, products)

	shopIDs := make(map[string]bool, len(shops))
	for _, shop := range shops {
		shopIDs[shop.ID] = true
		require.True(t, shop.IsSellable(), shop.ID)
	}
	// 每个种子商品都挂在种子店铺下
	for _, product := range products {
		require.True(t, shopIDs[product.ShopID], product.ID)
		require.NoError(t, product.Validate())
	}
}
