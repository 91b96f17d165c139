package snapshot

import (
	"context"
	"errors"
	"fmt"

	cartdomain "github.com/wyfcoding/marketplace/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/marketplace/internal/catalog/domain"
	notifdomain "github.com/wyfcoding/marketplace/internal/notification/domain"
	orderdomain "github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/cache"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"
	"github.com/wyfcoding/marketplace/pkg/utils"
)

// CartSource 购物车状态来源
type CartSource interface {
	CartOf(ctx context.Context, sessionID string) cartdomain.Cart
}

// OrderSource 订单账本来源
type OrderSource interface {
	RecentOrders(ctx context.Context) []*orderdomain.Order
}

// NotificationSource 通知日志来源
type NotificationSource interface {
	RecentNotifications(ctx context.Context) []*notifdomain.Notification
}

// State 回灌得到的进程状态，损坏或缺失的键对应零值
type State struct {
	Orders        []*orderdomain.Order        `json:"orders"`
	Notifications []*notifdomain.Notification `json:"notifications"`
	Shops         []*catalogdomain.Shop       `json:"shops"`
	Products      []*catalogdomain.Product    `json:"products"`
}

type catalogSnapshot struct {
	Shops    []*catalogdomain.Shop    `json:"shops"`
	Products []*catalogdomain.Product `json:"products"`
}

// Adapter 本地持久化适配器
// 每次状态变更后把购物车、订单账本与通知日志一并写出；
// 启动回灌时每个键独立解析，单键损坏不影响其余键
type Adapter struct {
	store   Store
	prefix  string
	metrics *metrics.Metrics

	carts  CartSource
	orders OrderSource
	notifs NotificationSource
}

// NewAdapter 创建持久化适配器，数据来源随后通过 Bind 注入
func NewAdapter(store Store, keyPrefix string, m *metrics.Metrics) *Adapter {
	return &Adapter{store: store, prefix: keyPrefix, metrics: m}
}

// Bind 注入各上下文的状态来源，须在首次 SaveState 前调用
func (a *Adapter) Bind(carts CartSource, orders OrderSource, notifs NotificationSource) {
	a.carts = carts
	a.orders = orders
	a.notifs = notifs
}

func (a *Adapter) userKey(sessionID string) string {
	return fmt.Sprintf("%s:user:%s", a.prefix, sessionID)
}

func (a *Adapter) cartKey(sessionID string) string {
	return fmt.Sprintf("%s:cart:%s", a.prefix, sessionID)
}

func (a *Adapter) ordersKey() string        { return a.prefix + ":orders" }
func (a *Adapter) notificationsKey() string { return a.prefix + ":notifications" }
func (a *Adapter) catalogKey() string       { return a.prefix + ":catalog" }

// SaveState 批量写出购物车、订单账本与通知日志
// 写失败只记录日志与指标，不向调用方暴露，也不重试
func (a *Adapter) SaveState(ctx context.Context, sessionID string) {
	if a.carts != nil {
		a.write(ctx, a.cartKey(sessionID), utils.ToJSON(a.carts.CartOf(ctx, sessionID)))
	}
	if a.orders != nil {
		a.write(ctx, a.ordersKey(), utils.ToJSON(a.orders.RecentOrders(ctx)))
	}
	if a.notifs != nil {
		a.write(ctx, a.notificationsKey(), utils.ToJSON(a.notifs.RecentNotifications(ctx)))
	}
}

// SaveUser 写出会话的用户记录
func (a *Adapter) SaveUser(ctx context.Context, sessionID string, user any) {
	a.write(ctx, a.userKey(sessionID), utils.ToJSON(user))
}

// SaveCatalog 写出目录快照，空目录不覆盖已有快照
func (a *Adapter) SaveCatalog(ctx context.Context, shops []*catalogdomain.Shop, products []*catalogdomain.Product) {
	if len(shops) == 0 && len(products) == 0 {
		logger.Warn(ctx, "Skipping catalog snapshot: catalog is empty")
		return
	}
	a.write(ctx, a.catalogKey(), utils.ToJSON(catalogSnapshot{Shops: shops, Products: products}))
}

// LoadCart 回灌会话购物车，缺失或损坏时返回 false
func (a *Adapter) LoadCart(ctx context.Context, sessionID string) (cartdomain.Cart, bool) {
	raw, err := a.store.Get(ctx, a.cartKey(sessionID))
	if errors.Is(err, cache.ErrCacheMiss) {
		return cartdomain.Cart{}, false
	}
	if err != nil {
		logger.Warn(ctx, "Failed to read cart snapshot", "session_id", sessionID, "error", err)
		return cartdomain.Cart{}, false
	}
	var cart cartdomain.Cart
	if err := utils.FromJSON(raw, &cart); err != nil {
		logger.Warn(ctx, "Corrupt cart snapshot, starting empty", "session_id", sessionID, "error", err)
		return cartdomain.Cart{}, false
	}
	return cart, true
}

// Rehydrate 启动时回灌订单账本、通知日志与目录快照
// 每个键独立解析：单键缺失或损坏退回零值，目录退回种子数据
func (a *Adapter) Rehydrate(ctx context.Context) *State {
	state := &State{}

	if raw, ok := a.read(ctx, a.ordersKey()); ok {
		var orders []*orderdomain.Order
		if err := utils.FromJSON(raw, &orders); err != nil {
			logger.Warn(ctx, "Corrupt order snapshot, starting empty", "error", err)
		} else {
			state.Orders = orders
		}
	}

	if raw, ok := a.read(ctx, a.notificationsKey()); ok {
		var notifs []*notifdomain.Notification
		if err := utils.FromJSON(raw, &notifs); err != nil {
			logger.Warn(ctx, "Corrupt notification snapshot, starting empty", "error", err)
		} else {
			state.Notifications = notifs
		}
	}

	state.Shops, state.Products = a.loadCatalog(ctx)
	return state
}

func (a *Adapter) loadCatalog(ctx context.Context) ([]*catalogdomain.Shop, []*catalogdomain.Product) {
	raw, ok := a.read(ctx, a.catalogKey())
	if !ok {
		return catalogdomain.SeedShops(), catalogdomain.SeedProducts()
	}
	var snap catalogSnapshot
	if err := utils.FromJSON(raw, &snap); err != nil {
		logger.Warn(ctx, "Corrupt catalog snapshot, falling back to seed catalog", "error", err)
		return catalogdomain.SeedShops(), catalogdomain.SeedProducts()
	}
	if len(snap.Shops) == 0 && len(snap.Products) == 0 {
		return catalogdomain.SeedShops(), catalogdomain.SeedProducts()
	}
	return snap.Shops, snap.Products
}

func (a *Adapter) read(ctx context.Context, key string) (string, bool) {
	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", false
	}
	if err != nil {
		logger.Warn(ctx, "Failed to read snapshot key", "key", key, "error", err)
		return "", false
	}
	return raw, true
}

func (a *Adapter) write(ctx context.Context, key, value string) {
	if err := a.store.Set(ctx, key, value); err != nil {
		a.metrics.SnapshotWriteFailuresTotal.Inc()
		logger.Error(ctx, "Snapshot write failed", "key", key, "error", err)
	}
}
