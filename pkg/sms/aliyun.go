package sms

import (
	"context"
	"encoding/json"
	"fmt"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v3/client"
	"github.com/alibabacloud-go/tea/tea"
)

// AliyunConfig 阿里云短信配置
type AliyunConfig struct {
	AccessKeyID     string
	AccessKeySecret string
	SignName        string
	Endpoint        string
}

// AliyunSender 阿里云短信发送器
type AliyunSender struct {
	client   *dysmsapi.Client
	signName string
}

// NewAliyunSender 创建阿里云短信发送器
func NewAliyunSender(cfg *AliyunConfig) (*AliyunSender, error) {
	config := &openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
	}

	if cfg.Endpoint != "" {
		config.Endpoint = tea.String(cfg.Endpoint)
	} else {
		config.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	}

	client, err := dysmsapi.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sms client: %w", err)
	}

	return &AliyunSender{
		client:   client,
		signName: cfg.SignName,
	}, nil
}

// Send 发送模板短信
func (s *AliyunSender) Send(ctx context.Context, phone string, msg *Message) error {
	if msg.TemplateCode == "" {
		return fmt.Errorf("sms template code is empty")
	}

	templateParam, err := json.Marshal(msg.Params)
	if err != nil {
		return fmt.Errorf("marshal sms params: %w", err)
	}

	request := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(phone),
		SignName:      tea.String(s.signName),
		TemplateCode:  tea.String(msg.TemplateCode),
		TemplateParam: tea.String(string(templateParam)),
	}

	response, err := s.client.SendSms(request)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	if response.Body == nil || tea.StringValue(response.Body.Code) != "OK" {
		code, message := "", "unknown error"
		if response.Body != nil {
			code = tea.StringValue(response.Body.Code)
			message = tea.StringValue(response.Body.Message)
		}
		return fmt.Errorf("sms send failed: %s - %s", code, message)
	}

	return nil
}
