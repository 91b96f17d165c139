package alert

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/marketplace/pkg/logger"

	"github.com/go-resty/resty/v2"
)

// Permission 桌面通知权限的三态
type Permission string

const (
	// PermissionDefault 尚未决定
	PermissionDefault Permission = "default"
	// PermissionGranted 已授权
	PermissionGranted Permission = "granted"
	// PermissionDenied 已拒绝
	PermissionDenied Permission = "denied"
)

// Desktop 桌面通知通道
// 权限在进程启动时探测一次，被拒绝后本次会话内不再请求
type Desktop struct {
	mu         sync.RWMutex
	client     *resty.Client
	webhookURL string
	permission Permission
	probed     bool
}

// NewDesktop 创建桌面通知通道
func NewDesktop(webhookURL string, initial Permission) *Desktop {
	if initial != PermissionGranted && initial != PermissionDenied {
		initial = PermissionDefault
	}
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0)
	return &Desktop{client: client, webhookURL: webhookURL, permission: initial}
}

// Probe 启动时探测权限，仅在尚未决定时请求一次
func (d *Desktop) Probe(ctx context.Context) Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.probed || d.permission != PermissionDefault {
		d.probed = true
		return d.permission
	}
	d.probed = true
	if d.webhookURL == "" {
		d.permission = PermissionDenied
		return d.permission
	}

	var result struct {
		Permission string `json:"permission"`
	}
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(d.webhookURL + "/permission")
	if err != nil || resp.IsError() {
		logger.Warn(ctx, "Desktop notification permission probe failed", "error", err)
		d.permission = PermissionDenied
		return d.permission
	}
	switch Permission(result.Permission) {
	case PermissionGranted:
		d.permission = PermissionGranted
	default:
		d.permission = PermissionDenied
	}
	return d.permission
}

// Granted 当前是否已授权
func (d *Desktop) Granted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.permission == PermissionGranted
}

// Raise 发送一条桌面通知，仅在已授权时生效，失败不上抛
func (d *Desktop) Raise(ctx context.Context, title, message string) {
	if !d.Granted() || d.webhookURL == "" {
		return
	}
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"title": title, "message": message}).
		Post(d.webhookURL + "/notify")
	if err != nil {
		logger.Debug(ctx, "Desktop notification failed", "error", err)
		return
	}
	if resp.IsError() {
		logger.Debug(ctx, "Desktop notification endpoint returned error", "status", resp.StatusCode())
	}
}
