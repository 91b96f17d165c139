package application

import (
	"context"
	"testing"

	"github.com/wyfcoding/marketplace/internal/notification/domain"
	orderdomain "github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/metrics"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	saved []*domain.Notification
}

func (f *fakeRepo) Save(_ context.Context, n *domain.Notification) error {
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range f.saved {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (f *fakeRepo) ListBySeller(_ context.Context, sellerID string, _ int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.saved {
		if n.TargetSellerID == sellerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRecent(_ context.Context, _ int) ([]*domain.Notification, error) {
	return f.saved, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, id string) error {
	n, err := f.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	n.MarkRead()
	return nil
}

func (f *fakeRepo) UnreadCount(_ context.Context, sellerID string) (int64, error) {
	var count int64
	for _, n := range f.saved {
		if n.TargetSellerID == sellerID && !n.Read {
			count++
		}
	}
	return count, nil
}

type fakeToast struct {
	pushed []string
}

func (f *fakeToast) Push(_, title, _ string) { f.pushed = append(f.pushed, title) }

type fakeChime struct {
	played int
}

func (f *fakeChime) Play(context.Context) { f.played++ }

type fakeDesktop struct {
	granted bool
	raised  int
}

func (f *fakeDesktop) Granted() bool                        { return f.granted }
func (f *fakeDesktop) Raise(_ context.Context, _, _ string) { f.raised++ }

type fakeMirror struct {
	saves int
}

func (f *fakeMirror) SaveState(context.Context, string) { f.saves++ }

func newTestService(aliases map[string]string) (*Service, *fakeRepo, *fakeToast, *fakeChime, *fakeDesktop, *fakeMirror) {
	repo := &fakeRepo{}
	toast := &fakeToast{}
	chime := &fakeChime{}
	desktop := &fakeDesktop{granted: true}
	mirror := &fakeMirror{}
	svc := NewService(repo, domain.NewAliasTable(aliases), toast, chime, desktop, mirror, metrics.New("test"))
	return svc, repo, toast, chime, desktop, mirror
}

func placedOrder(sellerID string) *orderdomain.Order {
	return &orderdomain.Order{
		ID:       "7064216899273489ab",
		OrderNo:  "ON0001",
		SellerID: sellerID,
		Total:    4650,
	}
}

func TestRouteOrderPlacedAlertsMatchingSeller(t *testing.T) {
	svc, repo, toast, chime, desktop, mirror := newTestService(nil)

	svc.RouteOrderPlaced(context.Background(), placedOrder("seller-1"), "seller-1")

	require.Len(t, repo.saved, 1)
	n := repo.saved[0]
	require.Equal(t, "New Order #89AB", n.Title)
	require.Contains(t, n.Message, "46.50")
	require.Equal(t, "seller-1", n.TargetSellerID)
	require.False(t, n.Read)

	require.Equal(t, []string{"New Order #89AB"}, toast.pushed)
	require.Equal(t, 1, chime.played)
	require.Equal(t, 1, desktop.raised)
	require.Equal(t, 1, mirror.saves)
}

func TestRouteOrderPlacedSkipsOtherSeller(t *testing.T) {
	svc, repo, toast, chime, desktop, mirror := newTestService(nil)

	svc.RouteOrderPlaced(context.Background(), placedOrder("seller-1"), "buyer-7")

	// 通知照常落库，但不触发任何本地告警
	require.Len(t, repo.saved, 1)
	require.Empty(t, toast.pushed)
	require.Zero(t, chime.played)
	require.Zero(t, desktop.raised)
	require.Equal(t, 1, mirror.saves)
}

func TestRouteOrderPlacedAliasMatch(t *testing.T) {
	svc, _, toast, _, _, _ := newTestService(map[string]string{"seller-demo-001": "seller-demo-001"})

	svc.RouteOrderPlaced(context.Background(), placedOrder("seller-demo-001"), "seller-demo-001")

	require.Len(t, toast.pushed, 1)
}

func TestRouteOrderPlacedDesktopDenied(t *testing.T) {
	svc, _, toast, chime, desktop, _ := newTestService(nil)
	desktop.granted = false

	svc.RouteOrderPlaced(context.Background(), placedOrder("seller-1"), "seller-1")

	// 未授权时不发桌面通知，提示音与应用内提示不受影响
	require.Zero(t, desktop.raised)
	require.Equal(t, 1, chime.played)
	require.Len(t, toast.pushed, 1)
}

func TestMarkReadIdempotent(t *testing.T) {
	svc, repo, _, _, _, _ := newTestService(nil)
	svc.RouteOrderPlaced(context.Background(), placedOrder("seller-1"), "seller-1")
	id := repo.saved[0].ID

	require.NoError(t, svc.MarkRead(context.Background(), id))
	require.NoError(t, svc.MarkRead(context.Background(), id))

	count, err := svc.UnreadCount(context.Background(), "seller-1")
	require.NoError(t, err)
	require.Zero(t, count)
}
