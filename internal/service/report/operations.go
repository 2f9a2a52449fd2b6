package report

import (
	"context"

	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// RecentOperationsLimit 操作日志列表条数
const RecentOperationsLimit = 100

// RecentOperations 最近的操作日志，按时间倒序
func (s *ReportService) RecentOperations(ctx context.Context) ([]*models.OperationLog, error) {
	logs, err := repository.NewOperationLogRepository(s.db).ListRecent(ctx, RecentOperationsLimit)
	if err != nil {
		return nil, s.fail("operations", err)
	}
	return logs, nil
}
