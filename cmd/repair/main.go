// Package main 一次性执行数据修复并输出结果
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dumeirei/hotel-management/internal/common/config"
	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/service/maintenance"
)

// 退出码：0 一致，1 执行失败，2 修复后仍不一致
func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "配置文件路径")
	timeout := flag.Duration("timeout", 5*time.Minute, "修复超时")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	log := logger.GetLogger()

	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer database.Close()
	if err := database.Migrate(db); err != nil {
		log.Error("Failed to migrate database", zap.Error(err))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := maintenance.NewRepairService(db, nil).Run(ctx)
	if err != nil {
		log.Error("Repair failed", zap.Error(err))
		return 1
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
	if !report.Verificacion.Consistente {
		return 2
	}
	return 0
}
