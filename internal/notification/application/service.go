// Package application 实现通知路由：订单落账后的本地告警与已读管理
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/marketplace/internal/notification/domain"
	orderdomain "github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"

	"github.com/google/uuid"
)

// ChimePlayer 提示音播放
type ChimePlayer interface {
	Play(ctx context.Context)
}

// DesktopRaiser 桌面通知
type DesktopRaiser interface {
	Granted() bool
	Raise(ctx context.Context, title, message string)
}

// Toaster 应用内提示板
type Toaster interface {
	Push(id, title, message string)
}

// StateMirror 状态快照镜像
type StateMirror interface {
	SaveState(ctx context.Context, sessionID string)
}

// Service 通知应用服务
type Service struct {
	repo    domain.NotificationRepository
	aliases *domain.AliasTable
	toast   Toaster
	chime   ChimePlayer
	desktop DesktopRaiser
	mirror  StateMirror
	metrics *metrics.Metrics
}

// NewService 创建通知应用服务
func NewService(
	repo domain.NotificationRepository,
	aliases *domain.AliasTable,
	toast Toaster,
	chime ChimePlayer,
	desktop DesktopRaiser,
	mirror StateMirror,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		aliases: aliases,
		toast:   toast,
		chime:   chime,
		desktop: desktop,
		mirror:  mirror,
		metrics: m,
	}
}

// RouteOrderPlaced 为一张落账订单生成通知并决定本地告警
// 通知无条件落库；仅当目标卖家命中当前会话身份时才触发提示音、
// 应用内提示与桌面通知，三者均为尽力而为
func (s *Service) RouteOrderPlaced(ctx context.Context, order *orderdomain.Order, currentUserID string) {
	title := fmt.Sprintf("New Order #%s", order.ShortRef())
	message := fmt.Sprintf("You have received a new order worth %s.", formatAmount(order.Total))

	n := &domain.Notification{
		ID:             uuid.New().String(),
		Title:          title,
		Message:        message,
		Type:           domain.TypeOrder,
		TargetSellerID: order.SellerID,
	}
	if err := s.repo.Save(ctx, n); err != nil {
		logger.Error(ctx, "Failed to save notification", "order_id", order.ID, "error", err)
	}

	if !s.aliases.Matches(order.SellerID, currentUserID) {
		s.metrics.NotificationsRoutedTotal.WithLabelValues("skipped").Inc()
		s.mirror.SaveState(ctx, currentUserID)
		return
	}

	s.chime.Play(ctx)
	s.toast.Push(n.ID, title, message)
	if s.desktop.Granted() {
		s.desktop.Raise(ctx, title, message)
	}
	s.metrics.NotificationsRoutedTotal.WithLabelValues("alerted").Inc()
	s.mirror.SaveState(ctx, currentUserID)
}

// List 卖家通知列表，最近优先
func (s *Service) List(ctx context.Context, sellerID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListBySeller(ctx, sellerID, limit)
}

// MarkRead 置为已读，重复标记为空操作
func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// UnreadCount 卖家未读数，用于导航角标
func (s *Service) UnreadCount(ctx context.Context, sellerID string) (int64, error) {
	return s.repo.UnreadCount(ctx, sellerID)
}

// RecentNotifications 供快照镜像使用的通知日志
func (s *Service) RecentNotifications(ctx context.Context) []*domain.Notification {
	list, err := s.repo.ListRecent(ctx, 100)
	if err != nil {
		logger.Warn(ctx, "Failed to read notification log for snapshot", "error", err)
		return nil
	}
	return list
}

// formatAmount 将最小货币单位金额格式化为带两位小数的可读金额
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
