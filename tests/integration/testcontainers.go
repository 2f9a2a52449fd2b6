//go:build integration

// Package integration 在真实的 Postgres 与 Redis 容器上运行酒店业务流程
package integration

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/config"
	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/models"
)

// 镜像可通过环境变量覆盖
const (
	envPostgresImage = "HOTEL_IT_POSTGRES_IMAGE"
	envRedisImage    = "HOTEL_IT_REDIS_IMAGE"

	defaultPostgresImage = "postgres:15-alpine"
	defaultRedisImage    = "redis:7-alpine"
)

// hotelModels Reset 时清空的表，覆盖全部业务模型
var hotelModels = []interface{}{
	&models.Payment{},
	&models.Reservation{},
	&models.Customer{},
	&models.Room{},
	&models.User{},
	&models.OperationLog{},
}

// Env 集成测试环境：已迁移的 hotel 库与一个 Redis
type Env struct {
	DB    *gorm.DB
	Redis *redis.Client

	postgres *tcPostgres.PostgresContainer
	redis    *tcRedis.RedisContainer
}

func image(env, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return fallback
}

// StartEnv 启动容器、执行迁移并连接 Redis；失败时已启动的容器会被回收
func StartEnv(ctx context.Context) (*Env, error) {
	env := &Env{}
	if err := env.startPostgres(ctx); err != nil {
		return nil, stderrors.Join(err, env.Close())
	}
	if err := env.startRedis(ctx); err != nil {
		return nil, stderrors.Join(err, env.Close())
	}
	return env, nil
}

func (e *Env) startPostgres(ctx context.Context) error {
	container, err := tcPostgres.Run(ctx, image(envPostgresImage, defaultPostgresImage),
		tcPostgres.WithDatabase("hotel"),
		tcPostgres.WithUsername("recepcion"),
		tcPostgres.WithPassword("recepcion"),
		tcPostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return fmt.Errorf("start postgres: %w", err)
	}
	e.postgres = container

	host, err := container.Host(ctx)
	if err != nil {
		return fmt.Errorf("postgres host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return fmt.Errorf("postgres port: %w", err)
	}
	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		return fmt.Errorf("postgres port %q: %w", port.Port(), err)
	}

	db, err := database.Init(&config.DatabaseConfig{
		Driver:          "postgres",
		Host:            host,
		Port:            portNum,
		User:            "recepcion",
		Password:        "recepcion",
		Name:            "hotel",
		SSLMode:         "disable",
		Timezone:        "UTC",
		MaxIdleConns:    2,
		MaxOpenConns:    5,
		ConnMaxLifetime: 5,
		SlowThreshold:   500,
	})
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	e.DB = db
	return nil
}

func (e *Env) startRedis(ctx context.Context) error {
	container, err := tcRedis.Run(ctx, image(envRedisImage, defaultRedisImage))
	if err != nil {
		return fmt.Errorf("start redis: %w", err)
	}
	e.redis = container

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("redis uri: %w", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return fmt.Errorf("parse redis uri %q: %w", uri, err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	e.Redis = client
	return nil
}

// Reset 清空业务表与 Redis，并重新写入默认房间，返回写入的房间数
func (e *Env) Reset(ctx context.Context) (int, error) {
	tables := make([]string, 0, len(hotelModels))
	for _, m := range hotelModels {
		stmt := &gorm.Statement{DB: e.DB}
		if err := stmt.Parse(m); err != nil {
			return 0, fmt.Errorf("parse %T: %w", m, err)
		}
		tables = append(tables, stmt.Schema.Table)
	}

	sql := "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY"
	if err := e.DB.WithContext(ctx).Exec(sql).Error; err != nil {
		return 0, fmt.Errorf("truncate: %w", err)
	}
	if err := e.Redis.FlushDB(ctx).Err(); err != nil {
		return 0, fmt.Errorf("flush redis: %w", err)
	}
	return database.SeedRooms(e.DB)
}

// Close 关闭连接并回收容器
func (e *Env) Close() error {
	var errs []error
	if e.Redis != nil {
		errs = append(errs, e.Redis.Close())
	}
	if e.DB != nil {
		if sqlDB, err := e.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if e.postgres != nil {
		errs = append(errs, testcontainers.TerminateContainer(e.postgres))
	}
	if e.redis != nil {
		errs = append(errs, testcontainers.TerminateContainer(e.redis))
	}
	return stderrors.Join(errs...)
}
