package sms

import (
	"context"
	"sync"
	"time"
)

// MockSender 模拟短信发送器（用于开发/测试）
type MockSender struct {
	mu           sync.Mutex
	sentMessages []MockMessage
	err          error
}

// MockMessage 模拟消息
type MockMessage struct {
	Phone   string
	Message Message
	SentAt  time.Time
}

// NewMockSender 创建模拟发送器
func NewMockSender() *MockSender {
	return &MockSender{}
}

// FailWith 之后的发送都返回 err
func (s *MockSender) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Send 模拟发送
func (s *MockSender) Send(ctx context.Context, phone string, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sentMessages = append(s.sentMessages, MockMessage{
		Phone:   phone,
		Message: *msg,
		SentAt:  time.Now(),
	})
	return nil
}

// Messages 已发送消息副本
func (s *MockSender) Messages() []MockMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MockMessage(nil), s.sentMessages...)
}

// GetLastMessage 获取最后发送的消息
func (s *MockSender) GetLastMessage() *MockMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sentMessages) == 0 {
		return nil
	}
	last := s.sentMessages[len(s.sentMessages)-1]
	return &last
}

// Clear 清空消息记录
func (s *MockSender) Clear() {
	s.mu.Lock()
	s.sentMessages = nil
	s.mu.Unlock()
}
