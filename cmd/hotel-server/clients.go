package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dumeirei/hotel-management/internal/common/config"
	"github.com/dumeirei/hotel-management/pkg/mailer"
	"github.com/dumeirei/hotel-management/pkg/mqtt"
	"github.com/dumeirei/hotel-management/pkg/oss"
	"github.com/dumeirei/hotel-management/pkg/sms"
)

// newUploader 根据配置创建房间图片存储
func newUploader(cfg *config.Config) (oss.Uploader, error) {
	switch cfg.Upload.Provider {
	case "", "local":
		return oss.NewLocalUploader(cfg.Upload.LocalDir, cfg.Upload.URLPrefix)
	case "aliyun":
		return oss.NewAliyunUploader(&oss.AliyunConfig{
			Endpoint:        cfg.OSS.Endpoint,
			AccessKeyID:     cfg.OSS.AccessKeyID,
			AccessKeySecret: cfg.OSS.AccessKeySecret,
			BucketName:      cfg.OSS.Bucket,
			Domain:          cfg.OSS.CustomDomain,
			Prefix:          cfg.OSS.UploadDir,
			PublicRead:      cfg.OSS.PublicRead,
		})
	case "mock":
		return oss.NewMockUploader(), nil
	default:
		return nil, fmt.Errorf("unknown upload provider %q", cfg.Upload.Provider)
	}
}

// newSMSSender 根据配置创建短信发送器，provider 为 none 时不发送
func newSMSSender(cfg *config.SMSConfig) (sms.Sender, error) {
	switch cfg.Provider {
	case "", "mock":
		return sms.NewMockSender(), nil
	case "aliyun":
		return sms.NewAliyunSender(&sms.AliyunConfig{
			AccessKeyID:     cfg.AccessKeyID,
			AccessKeySecret: cfg.AccessKeySecret,
			SignName:        cfg.SignName,
		})
	case "twilio":
		return sms.NewTwilioSender(&sms.TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioFromNumber,
		}), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
}

// newMailer 未启用时返回 nil
func newMailer(cfg *config.MailConfig) (mailer.Mailer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return mailer.NewSMTPMailer(&mailer.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		FromName: cfg.FromName,
	})
}

// newMQTTClient 未启用时返回 nil；连接失败不阻止启动，之后的发布只记录警告
func newMQTTClient(cfg *config.MQTTConfig, log *zap.Logger) *mqtt.Client {
	if !cfg.Enabled {
		return nil
	}
	client := mqtt.NewClient(&mqtt.Config{
		Broker:         cfg.Broker,
		ClientID:       cfg.ClientIDPrefix + "server",
		Username:       cfg.Username,
		Password:       cfg.Password,
		CleanSession:   true,
		QoS:            cfg.QoS,
		KeepAlive:      cfg.KeepAlive,
		AutoReconnect:  cfg.AutoReconnect,
		ConnectTimeout: cfg.ConnectTimeout,
	}, log)
	if err := client.Connect(); err != nil {
		log.Warn("MQTT connect failed, room events will not be published", zap.Error(err))
	}
	return client
}
