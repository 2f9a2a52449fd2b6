// Package sms 短信服务
package sms

import (
	"context"
)

// Message 短信内容
// 模板类服务商使用 TemplateCode 与 Params，文本类服务商使用 Body
type Message struct {
	TemplateCode string
	Params       map[string]string
	Body         string
}

// Sender 短信发送接口
type Sender interface {
	Send(ctx context.Context, phone string, msg *Message) error
}
