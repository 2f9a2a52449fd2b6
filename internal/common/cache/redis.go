// Package cache 提供 Redis 客户端封装
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dumeirei/hotel-management/internal/common/config"
	"github.com/redis/go-redis/v9"
)

// Init 创建 Redis 客户端并检查连通性
func Init(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	return client, nil
}

// IncrWithExpire 自增计数，首次计数时设置过期时间，返回计数与剩余时间
func IncrWithExpire(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
		return count, window, nil
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		// 过期时间丢失时补设，避免计数永不清零
		client.Expire(ctx, key, window)
		ttl = window
	}
	return count, ttl, nil
}

// 常用缓存键前缀
const (
	KeyPrefixSession   = "session:"
	KeyPrefixRateLimit = "ratelimit:"
)

// BuildKey 构建缓存键
func BuildKey(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ":")
}
