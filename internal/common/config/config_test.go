// Package config 配置管理单元测试
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== Load 测试 ====================

func TestLoad_WithDefaultValues(t *testing.T) {
	// 不指定配置文件路径，使用默认搜索路径
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// 验证默认值
	assert.Equal(t, "hotel-management", cfg.Server.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "hotel.db", cfg.Database.SQLitePath)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_WithConfigFile(t *testing.T) {
	// 创建临时配置文件
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	configContent := `
server:
  name: "test-hotel"
  mode: "release"
  port: 9000
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// sync.Once 只执行一次，可能返回之前加载的配置，但不应该返回 error
	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

// ==================== Get 测试 ====================

func TestGet_ReturnsSameInstance(t *testing.T) {
	cfg1 := Get()
	cfg2 := Get()

	assert.Same(t, cfg1, cfg2)
}

// ==================== DatabaseConfig 测试 ====================

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name   string
		config DatabaseConfig
		want   string
	}{
		{
			name:   "sqlite 文件",
			config: DatabaseConfig{Driver: "sqlite", SQLitePath: "hotel.db"},
			want:   "hotel.db",
		},
		{
			name:   "未指定驱动按 sqlite 处理",
			config: DatabaseConfig{SQLitePath: ":memory:"},
			want:   ":memory:",
		},
		{
			name: "postgres",
			config: DatabaseConfig{
				Driver:   "postgres",
				Host:     "db.example.com",
				Port:     5433,
				User:     "admin",
				Password: "p@ssw0rd",
				Name:     "hotel",
				SSLMode:  "require",
				Timezone: "UTC",
			},
			want: "host=db.example.com port=5433 user=admin password=p@ssw0rd dbname=hotel sslmode=require TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

// ==================== RedisConfig 测试 ====================

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.example.com", Port: 6380}
	assert.Equal(t, "redis.example.com:6380", cfg.Addr())
}

// ==================== JWTConfig 测试 ====================

func TestJWTConfig_AccessTokenDuration(t *testing.T) {
	tests := []struct {
		name   string
		expire int
		want   time.Duration
	}{
		{"1 小时", 1, time.Hour},
		{"12 小时", 12, 12 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := JWTConfig{AccessTokenExpire: tt.expire}
			assert.Equal(t, tt.want, config.AccessTokenDuration())
		})
	}
}

// ==================== Config 模式测试 ====================

func TestConfig_Mode(t *testing.T) {
	tests := []struct {
		mode    string
		debug   bool
		release bool
	}{
		{"debug", true, false},
		{"release", false, true},
		{"test", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			config := &Config{Server: ServerConfig{Mode: tt.mode}}
			assert.Equal(t, tt.debug, config.IsDebug())
			assert.Equal(t, tt.release, config.IsRelease())
		})
	}
}

// ==================== 默认值测试 ====================

func TestConfig_IntegrationDefaults(t *testing.T) {
	cfg := Get()
	require.NotNil(t, cfg)

	assert.Equal(t, "local", cfg.Upload.Provider)
	assert.Equal(t, "static/uploads", cfg.Upload.LocalDir)
	assert.Equal(t, "mock", cfg.SMS.Provider)
	assert.False(t, cfg.Mail.Enabled)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "hotel/", cfg.MQTT.TopicPrefix)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "@every 1h", cfg.Scheduler.SweepSpec)
	assert.True(t, cfg.Hotel.SeedRooms)
}

func TestConfig_SessionDefaults(t *testing.T) {
	cfg := Get()

	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.Equal(t, "session:", cfg.Session.KeyPrefix)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Equal(t, 12, cfg.JWT.AccessTokenExpire)
}

func TestConfig_AmbientDefaults(t *testing.T) {
	cfg := Get()

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "./logs/hotel.log", cfg.Logger.FilePath)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "*")
	assert.Contains(t, cfg.CORS.AllowedMethods, "POST")
}
