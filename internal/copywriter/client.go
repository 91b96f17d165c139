// Package copywriter 调用生成式文本接口为商品生成描述文案
package copywriter

import (
	"context"
	"strings"
	"time"

	"github.com/wyfcoding/marketplace/pkg/config"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"

	"github.com/go-resty/resty/v2"
)

// Client 文案生成客户端
// 凭证缺失、传输失败或非 2xx 响应一律退回固定文案，错误不上抛
type Client struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	fallback string
	metrics  *metrics.Metrics
}

// New 创建文案生成客户端
func New(cfg config.CopywriterConfig, m *metrics.Metrics) *Client {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(0)
	return &Client{
		client:   client,
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		fallback: cfg.Fallback,
		metrics:  m,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Describe 为商品生成一段描述文案
func (c *Client) Describe(ctx context.Context, prompt string) string {
	if c.endpoint == "" || c.apiKey == "" {
		c.metrics.CopywriterFallbacksTotal.Inc()
		return c.fallback
	}

	var result generateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(generateRequest{Prompt: prompt}).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		logger.Warn(ctx, "Copywriter request failed, using fallback", "error", err)
		c.metrics.CopywriterFallbacksTotal.Inc()
		return c.fallback
	}
	if resp.IsError() {
		logger.Warn(ctx, "Copywriter returned error, using fallback", "status", resp.StatusCode())
		c.metrics.CopywriterFallbacksTotal.Inc()
		return c.fallback
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		c.metrics.CopywriterFallbacksTotal.Inc()
		return c.fallback
	}
	return text
}
