package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturedSend struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingMailer(cfg SMTPConfig, captured *capturedSend) *SMTPMailer {
	m := NewSMTPMailer(cfg)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*captured = capturedSend{addr: addr, from: from, to: to, msg: string(msg)}
		return nil
	}
	return m
}

func TestSMTPMailerFormatsMessage(t *testing.T) {
	t.Parallel()

	var got capturedSend
	m := newCapturingMailer(SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@notekeep.dev",
	}, &got)

	err := m.SendVerificationCode(context.Background(), "a@x.com", "123456")
	require.NoError(t, err)

	require.Equal(t, "smtp.example.com:587", got.addr)
	require.Equal(t, "noreply@notekeep.dev", got.from)
	require.Equal(t, []string{"a@x.com"}, got.to)
	require.Contains(t, got.msg, "Subject: Confirm your email\r\n")
	require.Contains(t, got.msg, "Content-Type: text/html")
	require.Contains(t, got.msg, "Your verification code is: 123456")
}

func TestSMTPMailerResetLink(t *testing.T) {
	t.Parallel()

	var got capturedSend
	m := newCapturingMailer(SMTPConfig{Host: "localhost", Port: 25, From: "noreply@notekeep.dev"}, &got)

	err := m.SendPasswordReset(context.Background(), "a@x.com", "https://app.example/reset-password/tok123")
	require.NoError(t, err)
	require.Contains(t, got.msg, `href="https://app.example/reset-password/tok123"`)
}

func TestSMTPMailerWrapsSendErrors(t *testing.T) {
	t.Parallel()

	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 25, From: "noreply@notekeep.dev"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.SendWelcome(context.Background(), "a@x.com", "A")
	require.Error(t, err)
	require.Contains(t, err.Error(), "a@x.com")
}
