package alert

import (
	"context"
	"time"

	"github.com/wyfcoding/marketplace/pkg/logger"

	"github.com/go-resty/resty/v2"
)

// Chime 提示音通道，尽力而为，失败不得阻塞或上抛
type Chime struct {
	client *resty.Client
	url    string
}

// NewChime 创建提示音通道；url 为空时所有播放请求直接忽略
func NewChime(url string) *Chime {
	client := resty.New().
		SetTimeout(3 * time.Second).
		SetRetryCount(0)
	return &Chime{client: client, url: url}
}

// Play 触发一次提示音
func (c *Chime) Play(ctx context.Context) {
	if c.url == "" {
		return
	}
	resp, err := c.client.R().SetContext(ctx).Post(c.url)
	if err != nil {
		logger.Debug(ctx, "Chime playback failed", "error", err)
		return
	}
	if resp.IsError() {
		logger.Debug(ctx, "Chime endpoint returned error", "status", resp.StatusCode())
	}
}
