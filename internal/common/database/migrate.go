package database

import (
	"fmt"

	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/models"
	"gorm.io/gorm"
)

// Migrate 增量迁移：缺表则建表，已有表只补齐缺失的列和索引
// 补列失败只记录日志，不中断启动
func Migrate(gdb *gorm.DB) error {
	m := gdb.Migrator()

	for _, model := range models.All() {
		if !m.HasTable(model) {
			if err := m.CreateTable(model); err != nil {
				return fmt.Errorf("create table for %T: %w", model, err)
			}
			continue
		}

		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse schema for %T: %w", model, err)
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || m.HasColumn(model, field.DBName) {
				continue
			}
			if err := m.AddColumn(model, field.Name); err != nil {
				logger.Warn("添加列失败",
					logger.String("table", stmt.Schema.Table),
					logger.String("column", field.DBName),
					logger.Err(err),
				)
				continue
			}
			logger.Info("已添加列",
				logger.String("table", stmt.Schema.Table),
				logger.String("column", field.DBName),
			)
		}

		for _, idx := range stmt.Schema.ParseIndexes() {
			if m.HasIndex(model, idx.Name) {
				continue
			}
			if err := m.CreateIndex(model, idx.Name); err != nil {
				logger.Warn("创建索引失败",
					logger.String("table", stmt.Schema.Table),
					logger.String("index", idx.Name),
					logger.Err(err),
				)
			}
		}
	}

	return nil
}
