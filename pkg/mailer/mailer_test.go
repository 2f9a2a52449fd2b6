package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	email := &Email{
		To:      "ana@example.com",
		Subject: "Confirmación de reserva RES-3",
		Text:    "Su reserva RES-3 ha sido registrada.",
		HTML:    "<p>Su reserva <b>RES-3</b> ha sido registrada.</p>",
		Attachments: []Attachment{
			{Name: "RES-3.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}},
		},
	}

	msg, err := BuildMessage("Hotel", "reservas@hotel.example", email)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "ana@example.com")
	assert.Contains(t, raw, "reservas@hotel.example")
	assert.Contains(t, raw, "RES-3.png")
	assert.Contains(t, raw, "text/html")
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	_, err := BuildMessage("", "reservas@hotel.example", &Email{To: "no-es-correo", Text: "x"})
	assert.Error(t, err)

	_, err = BuildMessage("", "", &Email{To: "ana@example.com", Text: "x"})
	assert.Error(t, err)
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(&SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "a@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, m)

	_, err = NewSMTPMailer(&SMTPConfig{Port: 587})
	assert.Error(t, err)
}

func TestMockMailer(t *testing.T) {
	m := NewMockMailer()
	require.NoError(t, m.Send(context.Background(), &Email{To: "ana@example.com", Subject: "Hola"}))

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hola", sent[0].Subject)

	var _ Mailer = m
	var _ Mailer = (*SMTPMailer)(nil)
}
