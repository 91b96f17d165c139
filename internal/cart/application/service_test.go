package application

import (
	"context"
	"errors"
	"testing"

	"github.com/wyfcoding/marketplace/internal/cart/domain"

	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	items map[string]domain.Item
}

func (f *fakeResolver) Resolve(_ context.Context, productID string) (domain.Item, error) {
	item, ok := f.items[productID]
	if !ok {
		return domain.Item{}, errors.New("product not found")
	}
	return item, nil
}

type fakeMirror struct {
	saved  int
	stored map[string]domain.Cart
}

func (f *fakeMirror) SaveState(_ context.Context, _ string) { f.saved++ }

func (f *fakeMirror) LoadCart(_ context.Context, sessionID string) (domain.Cart, bool) {
	cart, ok := f.stored[sessionID]
	return cart, ok
}

func newTestService() (*Service, *fakeMirror) {
	resolver := &fakeResolver{items: map[string]domain.Item{
		"p1": {ProductID: "p1", ShopID: "shop1", SellerID: "s1", Name: "pot", Price: 4500},
		"p2": {ProductID: "p2", ShopID: "shop2", SellerID: "s2", Name: "kurta", Price: 1000},
	}}
	mirror := &fakeMirror{stored: map[string]domain.Cart{}}
	return NewService(resolver, mirror), mirror
}

func TestService_AddMirrorsEveryMutation(t *testing.T) {
	svc, mirror := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", "p1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess-1", "p1")
	require.NoError(t, err)

	cart := svc.Get(ctx, "sess-1")
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	// 每次变更写一次快照
	require.Equal(t, 2, mirror.saved)
}

func TestService_AddUnknownProduct(t *testing.T) {
	svc, mirror := newTestService()

	_, err := svc.Add(context.Background(), "sess-1", "p-missing")
	require.Error(t, err)
	require.Zero(t, mirror.saved)
}

func TestService_RehydratesFromMirror(t *testing.T) {
	svc, mirror := newTestService()
	mirror.stored["sess-9"] = domain.Cart{Items: []domain.Item{
		{ProductID: "p2", SellerID: "s2", Price: 1000, Quantity: 3},
	}}

	cart := svc.Get(context.Background(), "sess-9")
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)
}

func TestService_ClearAfterCheckout(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", "p1")
	require.NoError(t, err)

	cart := svc.Clear(ctx, "sess-1")
	require.True(t, cart.IsEmpty())
	require.True(t, svc.Get(ctx, "sess-1").IsEmpty())
}
