// Package metrics 提供 Prometheus helper，包含集市业务的 counter/gauge/histogram
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 下单计数（按配送方式）
	OrdersPlacedTotal *prometheus.CounterVec
	// 结账耗时
	CheckoutDuration prometheus.Histogram
	// 通知路由计数（按结果：alerted, skipped）
	NotificationsRoutedTotal *prometheus.CounterVec
	// 快照写入失败计数
	SnapshotWriteFailuresTotal prometheus.Counter
	// 文案生成回退计数
	CopywriterFallbacksTotal prometheus.Counter

	registry *prometheus.Registry
}

// New 创建指标实例并注册
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		OrdersPlacedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "orders_placed_total",
			Help:      "Orders appended to the ledger",
		}, []string{"fulfillment"}),
		CheckoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "checkout_duration_seconds",
			Help:      "Checkout (split + dispatch + route) duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		NotificationsRoutedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "notifications_routed_total",
			Help:      "Notifications handled by the router",
		}, []string{"outcome"}),
		SnapshotWriteFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "snapshot_write_failures_total",
			Help:      "Failed writes to the key-value snapshot mirror",
		}),
		CopywriterFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "copywriter_fallbacks_total",
			Help:      "Copywriter requests served with the fallback text",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersPlacedTotal,
		m.CheckoutDuration,
		m.NotificationsRoutedTotal,
		m.SnapshotWriteFailuresTotal,
		m.CopywriterFallbacksTotal,
	)

	return m
}

// Handler 返回 /metrics 的 gin 处理函数
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
