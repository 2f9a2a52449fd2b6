package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/hotel-management/internal/common/cache"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	"github.com/dumeirei/hotel-management/internal/common/response"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	RedisClient *redis.Client
	KeyPrefix   string
	Limit       int
	Window      time.Duration
	KeyFunc     func(*gin.Context) string
	Metrics     *metrics.Metrics
}

// RateLimit 固定窗口限流中间件；未配置 Redis 或限额为 0 时放行
func RateLimit(config *RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil || config.Limit <= 0 {
			c.Next()
			return
		}

		key := cache.BuildKey(config.KeyPrefix, c.ClientIP(), c.Request.URL.Path)
		if config.KeyFunc != nil {
			key = config.KeyFunc(c)
		}

		count, ttl, err := cache.IncrWithExpire(c.Request.Context(), config.RedisClient, key, config.Window)
		if err != nil {
			// Redis 故障时放行
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		if int(count) > config.Limit {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			config.Metrics.RecordRateLimited(c.FullPath())

			response.TooManyRequests(c, errors.ErrRateLimitExceed.Message)
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-int(count)))

		c.Next()
	}
}

// IPRateLimit 按客户端 IP 与路径限流（登录、注册、快速预订）
func IPRateLimit(redisClient *redis.Client, m *metrics.Metrics, limit int, window time.Duration) gin.HandlerFunc {
	return RateLimit(&RateLimitConfig{
		RedisClient: redisClient,
		Limit:       limit,
		Window:      window,
		Metrics:     m,
		KeyFunc: func(c *gin.Context) string {
			return cache.BuildKey(cache.KeyPrefixRateLimit, "ip", c.ClientIP(), c.Request.URL.Path)
		},
	})
}
