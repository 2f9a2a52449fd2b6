package auth

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/hotel-management/internal/common/cache"
)

// SessionStore 保存已签发的会话，用于注销与吊销
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// RedisSessionStore 基于 Redis 的会话存储
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionStore 创建 Redis 会话存储
func NewRedisSessionStore(client *redis.Client, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = cache.KeyPrefixSession
	}
	return &RedisSessionStore{client: client, prefix: prefix}
}

func (s *RedisSessionStore) key(sessionID string) string {
	return cache.BuildKey(s.prefix, sessionID)
}

// Save 保存会话
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(sessionID), strconv.FormatInt(userID, 10), ttl).Err()
}

// Exists 会话是否仍有效
func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke 吊销会话
func (s *RedisSessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

// MemorySessionStore 进程内会话存储，未启用 Redis 时使用
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

// NewMemorySessionStore 创建进程内会话存储
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Save 保存会话，同时清理已过期的会话
func (s *MemorySessionStore) Save(_ context.Context, sessionID string, _ int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, expireAt := range s.sessions {
		if !now.Before(expireAt) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sessionID] = now.Add(ttl)
	return nil
}

// Exists 会话是否仍有效，过期的会话顺带清理
func (s *MemorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expireAt, ok := s.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expireAt) {
		delete(s.sessions, sessionID)
		return false, nil
	}
	return true, nil
}

// Revoke 吊销会话
func (s *MemorySessionStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
