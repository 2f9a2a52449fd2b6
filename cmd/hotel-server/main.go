// Package main 是酒店管理服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-management/internal/common/cache"
	"github.com/dumeirei/hotel-management/internal/common/config"
	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/tracing"
)

const version = "1.0.0"

func main() {
	// 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Starting hotel management server",
		zap.String("version", version),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", cfg.Database.Driver),
	)

	tracer, err := tracing.Init(&tracing.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Server.Mode,
		Endpoint:       cfg.Tracing.Endpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		log.Fatal("Failed to init tracing", zap.Error(err))
	}

	// 初始化数据库并建表
	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.Hotel.SeedRooms {
		n, err := database.SeedRooms(db)
		if err != nil {
			log.Fatal("Failed to seed rooms", zap.Error(err))
		}
		if n > 0 {
			log.Info("Default rooms seeded", zap.Int("count", n))
		}
	}
	log.Info("Database ready")

	// Redis 可选，不可用时会话与限流退化为进程内实现
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.Init(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory sessions", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// 设置 Gin 模式
	switch {
	case cfg.IsRelease():
		gin.SetMode(gin.ReleaseMode)
	case cfg.Server.Mode == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	app, err := setupRouter(engine, cfg, log, db, redisClient)
	if err != nil {
		log.Fatal("Failed to set up application", zap.Error(err))
	}
	app.start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	app.stop()

	if err := tracer.Shutdown(ctx); err != nil {
		log.Warn("Tracer shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(); err != nil {
		log.Warn("Database close failed", zap.Error(err))
	}

	log.Info("Server exited")
}
