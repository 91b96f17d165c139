// Package ratelimit 提供基于 Redis 的请求限流
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// Limit 限流规则
type Limit struct {
	// 周期内允许的请求数
	Rate int
	// 统计周期
	Period time.Duration
	// 突发上限
	Burst int
}

// PerMinute 每分钟 n 次的规则
func PerMinute(n int) Limit {
	return Limit{Rate: n, Period: time.Minute, Burst: n}
}

// Result 一次限流判定的结果
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter 限流器接口
type Limiter interface {
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// RedisLimiter 基于 redis_rate 的 GCRA 限流器
type RedisLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRedisLimiter 创建限流器实例
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{limiter: redis_rate.NewLimiter(client)}
}

// Allow 判定 key 的本次请求是否放行
func (r *RedisLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	res, err := r.limiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		RetryAfter: res.RetryAfter,
	}, nil
}

// NopLimiter 放行一切的限流器，用于 Redis 不可用的本地运行
type NopLimiter struct{}

// Allow 永远放行
func (NopLimiter) Allow(context.Context, string, Limit) (*Result, error) {
	return &Result{Allowed: true, Remaining: 1}, nil
}
