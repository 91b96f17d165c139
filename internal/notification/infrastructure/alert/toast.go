// Package alert 通知告警通道：应用内提示、提示音与桌面通知
package alert

import (
	"sync"
	"time"
)

// Toast 一条带过期时间的应用内提示
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToastBoard 会话内提示板，提示在固定时长后自动消失
type ToastBoard struct {
	mu     sync.Mutex
	ttl    time.Duration
	toasts []Toast
	now    func() time.Time
}

// NewToastBoard 创建提示板
func NewToastBoard(ttl time.Duration) *ToastBoard {
	return &ToastBoard{ttl: ttl, now: time.Now}
}

// Push 追加一条提示
func (b *ToastBoard) Push(id, title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.toasts = append(b.toasts, Toast{
		ID:        id,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	})
}

// Active 返回尚未过期的提示，过期项在读取时惰性清理
func (b *ToastBoard) Active() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	alive := b.toasts[:0]
	for _, t := range b.toasts {
		if t.ExpiresAt.After(now) {
			alive = append(alive, t)
		}
	}
	b.toasts = alive
	out := make([]Toast, len(alive))
	copy(out, alive)
	return out
}
