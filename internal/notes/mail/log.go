package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of delivering them. Used in
// dev when no SMTP relay is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	m.Logger.Info("mail: verification code", "to", to, "code", code)
	return nil
}

func (m *LogMailer) SendWelcome(ctx context.Context, to, name string) error {
	m.Logger.Info("mail: welcome", "to", to, "name", name)
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.Logger.Info("mail: password reset", "to", to, "reset_url", resetURL)
	return nil
}

func (m *LogMailer) SendResetSuccess(ctx context.Context, to string) error {
	m.Logger.Info("mail: reset success", "to", to)
	return nil
}
