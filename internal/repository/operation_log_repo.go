package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/models"
)

// OperationLogRepository 操作日志仓储
type OperationLogRepository struct {
	db *gorm.DB
}

// NewOperationLogRepository 创建操作日志仓储
func NewOperationLogRepository(db *gorm.DB) *OperationLogRepository {
	return &OperationLogRepository{db: db}
}

// Create 创建操作日志
func (r *OperationLogRepository) Create(ctx context.Context, log *models.OperationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListRecent 获取最近的操作日志
func (r *OperationLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.OperationLog, error) {
	var logs []*models.OperationLog
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
