package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dumeirei/hotel-management/internal/common/crypto"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	"github.com/dumeirei/hotel-management/internal/common/qrcode"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/pkg/mailer"
	"github.com/dumeirei/hotel-management/pkg/sms"
)

// 通知渠道
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Confirmation 快速预订确认内容
type Confirmation struct {
	Referencia   string
	Nombre       string
	Correo       string
	Telefono     string
	Habitacion   string
	FechaEntrada string
	FechaSalida  string
	QR           *qrcode.Code
}

// Confirmer 发送预订确认，实现不得阻塞调用方
type Confirmer interface {
	Confirm(ctx context.Context, c *Confirmation)
}

// NotifierConfig 确认通知配置
type NotifierConfig struct {
	HotelName   string
	SMSTemplate string
	Timeout     time.Duration
}

// Notifier 通过短信与邮件异步发送确认，失败只记录日志
type Notifier struct {
	sms     sms.Sender
	mail    mailer.Mailer
	metrics *metrics.Metrics
	cfg     NotifierConfig
	wg      sync.WaitGroup
}

// NewNotifier 创建确认通知器，sender 与 mail 均可为 nil
func NewNotifier(sender sms.Sender, mail mailer.Mailer, m *metrics.Metrics, cfg NotifierConfig) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.HotelName == "" {
		cfg.HotelName = "Hotel"
	}
	return &Notifier{sms: sender, mail: mail, metrics: m, cfg: cfg}
}

// Confirm 实现 Confirmer
func (n *Notifier) Confirm(ctx context.Context, c *Confirmation) {
	base := context.WithoutCancel(ctx)
	if n.sms != nil && c.Telefono != "" {
		n.dispatch(base, ChannelSMS, crypto.MaskPhone(c.Telefono), c, n.sendSMS)
	}
	if n.mail != nil && c.Correo != "" {
		n.dispatch(base, ChannelEmail, crypto.MaskEmail(c.Correo), c, n.sendEmail)
	}
}

// Wait 等待已派发的通知完成
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(ctx context.Context, channel, recipient string, c *Confirmation, send func(context.Context, *Confirmation) error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		sendCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
		defer cancel()

		err := send(sendCtx, c)
		n.metrics.RecordNotification(channel, err)
		if err != nil {
			logger.Warn("预订确认发送失败",
				logger.String("channel", channel),
				logger.String("destinatario", recipient),
				logger.String("referencia", c.Referencia),
				logger.Err(err),
			)
		}
	}()
}

func (n *Notifier) sendSMS(ctx context.Context, c *Confirmation) error {
	msg := &sms.Message{
		TemplateCode: n.cfg.SMSTemplate,
		Params: map[string]string{
			"nombre":     c.Nombre,
			"referencia": c.Referencia,
			"habitacion": c.Habitacion,
			"entrada":    c.FechaEntrada,
		},
		Body: fmt.Sprintf("%s: hola %s, recibimos su reserva %s (habitación %s, %s a %s).",
			n.cfg.HotelName, c.Nombre, c.Referencia, c.Habitacion, c.FechaEntrada, c.FechaSalida),
	}
	return n.sms.Send(ctx, utils.CleanPhone(c.Telefono), msg)
}

func (n *Notifier) sendEmail(ctx context.Context, c *Confirmation) error {
	email := &mailer.Email{
		To:      c.Correo,
		Subject: fmt.Sprintf("%s - Reserva %s", n.cfg.HotelName, c.Referencia),
		Text: fmt.Sprintf(
			"Hola %s,\n\nHemos recibido su reserva %s.\nHabitación: %s\nEntrada: %s\nSalida: %s\n\nPronto nos pondremos en contacto.\n",
			c.Nombre, c.Referencia, c.Habitacion, c.FechaEntrada, c.FechaSalida,
		),
	}
	if c.QR != nil {
		email.Attachments = append(email.Attachments, mailer.Attachment{
			Name: c.Referencia + ".png",
			Data: c.QR.PNG,
		})
	}
	return n.mail.Send(ctx, email)
}
