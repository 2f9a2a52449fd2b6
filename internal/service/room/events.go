package room

import (
	"context"
	"time"

	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	"github.com/dumeirei/hotel-management/internal/common/tracing"
	"github.com/dumeirei/hotel-management/internal/models"
)

// StatusNotifier 房间状态变更通知
type StatusNotifier interface {
	RoomStatusChanged(ctx context.Context, numero string, estado models.RoomStatus)
}

// RoomPublisher 房间状态事件发布接口，由 pkg/mqtt.RoomPublisher 实现
type RoomPublisher interface {
	PublishRoomStatus(ctx context.Context, numero, estado string) error
}

// defaultPublishTimeout 单次发布超时
const defaultPublishTimeout = 5 * time.Second

// EventNotifier 记录状态变更指标，并在配置了发布器时异步发布事件
type EventNotifier struct {
	metrics   *metrics.Metrics
	publisher RoomPublisher
	timeout   time.Duration
}

// NewEventNotifier 创建通知器，publisher 可为 nil
func NewEventNotifier(m *metrics.Metrics, publisher RoomPublisher) *EventNotifier {
	return &EventNotifier{
		metrics:   m,
		publisher: publisher,
		timeout:   defaultPublishTimeout,
	}
}

// RoomStatusChanged 实现 StatusNotifier
func (n *EventNotifier) RoomStatusChanged(ctx context.Context, numero string, estado models.RoomStatus) {
	n.metrics.RecordRoomStatus(string(estado))
	if n.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	go func() {
		defer cancel()
		spanCtx, span := tracing.Start(pubCtx, "room.PublishStatus",
			tracing.WithRoomNumber(numero),
			tracing.WithRoomStatus(string(estado)),
		)
		defer span.End()
		if err := n.publisher.PublishRoomStatus(spanCtx, numero, string(estado)); err != nil {
			tracing.SetError(spanCtx, err)
			logger.Warn("发布房间状态失败",
				logger.RoomNumber(numero),
				logger.Estado(string(estado)),
				logger.Err(err),
			)
		}
	}()
}

type noopNotifier struct{}

func (noopNotifier) RoomStatusChanged(context.Context, string, models.RoomStatus) {}
