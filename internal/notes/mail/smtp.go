package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig carries the connection settings for the outbound relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends HTML mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg SMTPConfig

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	return m.deliver(to, "Confirm your email",
		fmt.Sprintf("<p>Your verification code is: %s</p>", code))
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.deliver(to, "Welcome",
		fmt.Sprintf("<p>Welcome, %s. Thanks for choosing our company! We are happy to see you on board.</p>", name))
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	return m.deliver(to, "Reset your password",
		fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password.</p>`, resetURL))
}

func (m *SMTPMailer) SendResetSuccess(ctx context.Context, to string) error {
	return m.deliver(to, "Password Reset Successful",
		"<p>We are writing to confirm that your password has been successfully reset.</p>")
}

func (m *SMTPMailer) deliver(to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mail: smtp send to %s: %w", to, err)
	}
	return nil
}
