package scheduler

import (
	"context"

	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/service/maintenance"
)

// TaskSweepData 定时数据清理任务名
const TaskSweepData = "SweepData"

// Sweeper 定时数据清理，完整修复由 cmd/repair 人工执行
type Sweeper interface {
	Sweep(ctx context.Context) (*maintenance.Report, error)
}

// TaskHandler 任务处理器
type TaskHandler struct {
	sweeper Sweeper
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(sweeper Sweeper) *TaskHandler {
	return &TaskHandler{sweeper: sweeper}
}

// SweepData 清理孤立付款并核对预订与付款
func (h *TaskHandler) SweepData(ctx context.Context) error {
	report, err := h.sweeper.Sweep(ctx)
	if err != nil {
		return err
	}
	if !report.Verificacion.Consistente {
		logger.Warn("预订与付款不一致，需执行 cmd/repair",
			logger.Int64("total_reservas", report.Verificacion.TotalReservas),
			logger.Int64("total_pagos", report.Verificacion.TotalPagos),
		)
	}
	return nil
}

// SetupTasks 设置所有任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler, sweepSpec string) error {
	return scheduler.AddTask(TaskSweepData, sweepSpec, handler.SweepData)
}
