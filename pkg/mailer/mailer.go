// Package mailer 邮件发送
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wneessen/go-mail"
)

// Attachment 邮件附件
type Attachment struct {
	Name string
	Data []byte
}

// Email 待发送邮件
type Email struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Mailer 邮件发送接口
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// SMTPConfig SMTP 配置
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPMailer 基于 go-mail 的 SMTP 发送器
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewSMTPMailer 创建 SMTP 发送器
func NewSMTPMailer(cfg *SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

// Send 发送邮件
func (m *SMTPMailer) Send(ctx context.Context, email *Email) error {
	msg, err := BuildMessage(m.fromName, m.from, email)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	return nil
}

// BuildMessage 组装 MIME 消息
func BuildMessage(fromName, from string, email *Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if fromName != "" {
		if err := msg.FromFormat(fromName, from); err != nil {
			return nil, fmt.Errorf("invalid from address: %w", err)
		}
	} else if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(email.Subject)

	switch {
	case email.Text != "" && email.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
	}

	for _, a := range email.Attachments {
		if err := msg.AttachReader(a.Name, bytes.NewReader(a.Data)); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Name, err)
		}
	}

	return msg, nil
}

// MockMailer 模拟邮件发送器（用于开发/测试）
type MockMailer struct {
	mu   sync.Mutex
	sent []Email
}

// NewMockMailer 创建模拟发送器
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send 记录邮件
func (m *MockMailer) Send(ctx context.Context, email *Email) error {
	m.mu.Lock()
	m.sent = append(m.sent, *email)
	m.mu.Unlock()
	return nil
}

// Sent 已发送邮件副本
func (m *MockMailer) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Email(nil), m.sent...)
}
