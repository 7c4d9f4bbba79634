package domain

import "time"

// User is an account holder. The verification code and reset token are
// independent single-use credentials: each is cleared on successful use and
// ignored past its expiry.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2id encoded
	IsVerified   bool

	// Email verification (nullable pair, set at registration)
	VerificationCode      *string // 6 decimal digits
	VerificationExpiresAt *time.Time

	// Password reset (nullable pair, set by forgot-password)
	ResetTokenHash *string // sha256 fingerprint of the opaque token
	ResetExpiresAt *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
