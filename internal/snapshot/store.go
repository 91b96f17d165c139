// Package snapshot 将进程内状态镜像到键值存储，并在启动时回灌
package snapshot

import (
	"context"
	"sync"

	"github.com/wyfcoding/marketplace/pkg/cache"
)

// Store 快照存储的键值契约
// Get 在键不存在时返回 cache.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RedisStore 基于 Redis 的快照存储
type RedisStore struct {
	cache *cache.RedisCache
}

// NewRedisStore 创建 Redis 快照存储
func NewRedisStore(c *cache.RedisCache) *RedisStore {
	return &RedisStore{cache: c}
}

// Get 读取快照键
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	return s.cache.Get(ctx, key)
}

// Set 写入快照键，快照不设过期
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.cache.Set(ctx, key, value, 0)
}

// MemoryStore 进程内快照存储，用于测试与无 Redis 的本地运行
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
	// 非空时 Set 返回该错误，用于模拟配额写失败
	SetErr error
}

// NewMemoryStore 创建内存快照存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get 读取快照键
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

// Set 写入快照键
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
