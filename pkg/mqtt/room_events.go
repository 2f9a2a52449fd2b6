package mqtt

import (
	"context"
	"time"
)

// RoomStatusEvent 房间状态变更事件
type RoomStatusEvent struct {
	Numero    string `json:"numero"`
	Estado    string `json:"estado"`
	Timestamp int64  `json:"timestamp"`
}

// RoomStatusTopic 返回 {prefix}rooms/{numero}/status
func RoomStatusTopic(prefix, numero string) string {
	return prefix + "rooms/" + numero + "/status"
}

// publisher 发布能力
type publisher interface {
	PublishWithContext(ctx context.Context, topic string, payload interface{}, retained bool) error
}

// RoomPublisher 房间状态事件发布器
type RoomPublisher struct {
	client publisher
	prefix string
	now    func() time.Time
}

// NewRoomPublisher 创建房间状态发布器
func NewRoomPublisher(client *Client, prefix string) *RoomPublisher {
	return newRoomPublisher(client, prefix)
}

func newRoomPublisher(client publisher, prefix string) *RoomPublisher {
	return &RoomPublisher{client: client, prefix: prefix, now: time.Now}
}

// PublishRoomStatus 发布保留消息，订阅方总能拿到房间最新状态
func (p *RoomPublisher) PublishRoomStatus(ctx context.Context, numero, estado string) error {
	event := RoomStatusEvent{
		Numero:    numero,
		Estado:    estado,
		Timestamp: p.now().Unix(),
	}
	return p.client.PublishWithContext(ctx, RoomStatusTopic(p.prefix, numero), event, true)
}
