// Package scheduler 提供定时任务调度
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dumeirei/hotel-management/internal/common/logger"
)

// DefaultTaskTimeout 单次任务执行超时
const DefaultTaskTimeout = 5 * time.Minute

// Scheduler 定时任务调度器
type Scheduler struct {
	cron    *cron.Cron
	tasks   []*Task
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Task 定时任务
type Task struct {
	Name    string
	Spec    string
	Handler func(ctx context.Context) error
	entryID cron.EntryID
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(),
		tasks:   make([]*Task, 0),
		timeout: DefaultTaskTimeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AddTask 添加任务，spec 为 cron 表达式或 @every 描述
func (s *Scheduler) AddTask(name, spec string, handler func(ctx context.Context) error) error {
	task := &Task{Name: name, Spec: spec, Handler: handler}
	id, err := s.cron.AddFunc(spec, func() { s.executeTask(task) })
	if err != nil {
		return fmt.Errorf("schedule task %s: %w", name, err)
	}
	task.entryID = id
	s.tasks = append(s.tasks, task)
	return nil
}

// Tasks 已注册的任务
func (s *Scheduler) Tasks() []*Task {
	return s.tasks
}

// Start 启动调度器
func (s *Scheduler) Start() {
	logger.Info("定时任务调度器启动", logger.Int("tasks", len(s.tasks)))
	s.cron.Start()
}

// Stop 停止调度器并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	logger.Info("定时任务调度器停止中")
	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
	logger.Info("定时任务调度器已停止")
}

// RunNow 立即执行指定任务
func (s *Scheduler) RunNow(name string) error {
	for _, task := range s.tasks {
		if task.Name == name {
			s.executeTask(task)
			return nil
		}
	}
	return fmt.Errorf("task %s not found", name)
}

// executeTask 执行任务
func (s *Scheduler) executeTask(task *Task) {
	s.wg.Add(1)
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := task.Handler(ctx); err != nil {
		logger.Error("定时任务执行失败", logger.String("task", task.Name), logger.Err(err))
		return
	}
	logger.Info("定时任务执行完成", logger.String("task", task.Name), logger.Latency(time.Since(start)))
}
