// Package mail is the outbound email collaborator. Callers treat delivery
// as fire-and-forget: failures are logged by the caller and never abort the
// operation that triggered the message.
package mail

import "context"

// Mailer dispatches the transactional messages the auth flows produce.
type Mailer interface {
	// SendVerificationCode delivers the 6-digit email verification code.
	SendVerificationCode(ctx context.Context, to, code string) error

	// SendWelcome greets a user after successful email verification.
	SendWelcome(ctx context.Context, to, name string) error

	// SendPasswordReset delivers the reset link containing the opaque token.
	SendPasswordReset(ctx context.Context, to, resetURL string) error

	// SendResetSuccess confirms that a password reset completed.
	SendResetSuccess(ctx context.Context, to string) error
}
