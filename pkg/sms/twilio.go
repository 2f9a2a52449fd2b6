package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioConfig Twilio 配置
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// TwilioSender Twilio 短信发送器
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender 创建 Twilio 发送器
func NewTwilioSender(cfg *TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.FromNumber,
	}
}

// Send 发送文本短信
func (s *TwilioSender) Send(ctx context.Context, phone string, msg *Message) error {
	if msg.Body == "" {
		return fmt.Errorf("sms body is empty")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(msg.Body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	if resp.ErrorMessage != nil {
		return fmt.Errorf("sms send failed: %s", *resp.ErrorMessage)
	}

	return nil
}
