package snapshot

import (
	"context"
	"errors"
	"testing"

	cartdomain "github.com/wyfcoding/marketplace/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/marketplace/internal/catalog/domain"
	notifdomain "github.com/wyfcoding/marketplace/internal/notification/domain"
	orderdomain "github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/metrics"
	"github.com/wyfcoding/marketplace/pkg/utils"

	"github.com/stretchr/testify/require"
)

type fakeCartSource struct{ cart cartdomain.Cart }

func (f *fakeCartSource) CartOf(context.Context, string) cartdomain.Cart { return f.cart }

type fakeOrderSource struct{ orders []*orderdomain.Order }

func (f *fakeOrderSource) RecentOrders(context.Context) []*orderdomain.Order { return f.orders }

type fakeNotifSource struct{ notifs []*notifdomain.Notification }

func (f *fakeNotifSource) RecentNotifications(context.Context) []*notifdomain.Notification {
	return f.notifs
}

func newTestAdapter(store Store) *Adapter {
	return NewAdapter(store, "test", metrics.New("snapshot_test"))
}

func TestSaveStateWritesBatch(t *testing.T) {
	store := NewMemoryStore()
	adapter := newTestAdapter(store)
	adapter.Bind(
		&fakeCartSource{cart: cartdomain.Cart{Items: []cartdomain.Item{{ProductID: "p-1", Quantity: 2, Price: 500}}}},
		&fakeOrderSource{orders: []*orderdomain.Order{{ID: "o-1", Total: 1000}}},
		&fakeNotifSource{notifs: []*notifdomain.Notification{{ID: "n-1"}}},
	)

	adapter.SaveState(context.Background(), "sess-1")

	for _, key := range []string{"test:cart:sess-1", "test:orders", "test:notifications"} {
		_, err := store.Get(context.Background(), key)
		require.NoError(t, err, key)
	}
}

func TestSaveStateWriteFailureIsSwallowed(t *testing.T) {
	store := NewMemoryStore()
	store.SetErr = errors.New("quota exceeded")
	adapter := newTestAdapter(store)
	adapter.Bind(&fakeCartSource{}, &fakeOrderSource{}, &fakeNotifSource{})

	// 写失败只记录，不 panic 也不上抛
	adapter.SaveState(context.Background(), "sess-1")
}

func TestLoadCartRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	adapter := newTestAdapter(store)
	cart := cartdomain.Cart{Items: []cartdomain.Item{{ProductID: "p-1", SellerID: "s-1", Quantity: 3, Price: 4500}}}
	adapter.Bind(&fakeCartSource{cart: cart}, &fakeOrderSource{}, &fakeNotifSource{})
	adapter.SaveState(context.Background(), "sess-1")

	restored, ok := adapter.LoadCart(context.Background(), "sess-1")
	require.True(t, ok)
	require.Equal(t, cart, restored)

	_, ok = adapter.LoadCart(context.Background(), "sess-other")
	require.False(t, ok)
}

func TestRehydrateIsolatesCorruptKeys(t *testing.T) {
	store := NewMemoryStore()
	adapter := newTestAdapter(store)

	// 订单键损坏，通知键完好，二者互不影响
	require.NoError(t, store.Set(context.Background(), "test:orders", "{not json"))
	require.NoError(t, store.Set(context.Background(), "test:notifications",
		utils.ToJSON([]*notifdomain.Notification{{ID: "n-1", TargetSellerID: "s-1"}})))

	state := adapter.Rehydrate(context.Background())
	require.Empty(t, state.Orders)
	require.Len(t, state.Notifications, 1)
	require.Equal(t, "n-1", state.Notifications[0].ID)
}

func TestRehydrateFallsBackToSeedCatalog(t *testing.T) {
	store := NewMemoryStore()
	adapter := newTestAdapter(store)

	state := adapter.Rehydrate(context.Background())
	require.NotEmpty(t, state.Shops)
	require.NotEmpty(t, state.Products)
	require.Equal(t, catalogdomain.DemoSellerID, state.Shops[0].OwnerID)

	// 损坏的目录快照同样退回种子目录
	require.NoError(t, store.Set(context.Background(), "test:catalog", "<corrupt>"))
	state = adapter.Rehydrate(context.Background())
	require.NotEmpty(t, state.Products)
}

func TestSaveCatalogSkipsEmpty(t *testing.T) {
	store := NewMemoryStore()
	adapter := newTestAdapter(store)

	require.NoError(t, store.Set(context.Background(), "test:catalog",
		utils.ToJSON(catalogSnapshot{Products: []*catalogdomain.Product{{ID: "p-1"}}})))

	// 空目录不得覆盖已有快照
	adapter.SaveCatalog(context.Background(), nil, nil)

	raw, err := store.Get(context.Background(), "test:catalog")
	require.NoError(t, err)
	require.Contains(t, raw, "p-1")
}
