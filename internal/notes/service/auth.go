package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
	"github.com/aussiebroadwan/notekeep/internal/notes/mail"
	"github.com/aussiebroadwan/notekeep/internal/notes/store"
	"github.com/aussiebroadwan/notekeep/pkg/cryptox"
	"github.com/aussiebroadwan/notekeep/pkg/idx"
	"github.com/aussiebroadwan/notekeep/pkg/jwtx"
	"github.com/aussiebroadwan/notekeep/pkg/slogx"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidVerification = errors.New("invalid or expired verification code")
	ErrInvalidResetToken   = errors.New("invalid or expired reset password token")
	ErrUserNotFound        = errors.New("user not found")
)

const verificationCodeDigits = 6

// AuthService owns the account lifecycle: registration, login, email
// verification and password reset. Session tokens are stateless, so logout
// has no server-side half.
type AuthService struct {
	Store  store.Store
	Mailer mail.Mailer
	Signer jwtx.Signer

	Issuer    string
	ClientURL string // base URL of the SPA, used to build reset links

	SessionTTL      time.Duration
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

// Register creates an account, issues a session token immediately (the user
// may verify their email later) and dispatches the verification code.
func (s *AuthService) Register(
	ctx context.Context,
	name, email, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if name == "" || email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	// 2. Reject duplicate emails up front for a clean conflict error.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, "", ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 3. Hash the password using Argon2id.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 4. Generate the 6-digit verification code.
	code, err := cryptox.GenerateNumericCode(verificationCodeDigits)
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return domain.User{}, "", err
	}
	codeExpiry := time.Now().UTC().Add(s.VerificationTTL)

	user := domain.User{
		ID:                    idx.New().String(),
		Name:                  name,
		Email:                 email,
		PasswordHash:          passwordHash,
		VerificationCode:      &code,
		VerificationExpiresAt: &codeExpiry,
	}

	// 5. Create the user. The unique index on email closes the race between
	// the check above and this insert.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 6. Re-read so the caller sees the stored timestamps.
	user, err = s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		log.Error("failed to reload created user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 7. Issue a session token immediately, pre-verification.
	token, err := s.issueToken(user.ID)
	if err != nil {
		log.Error("failed to issue session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 8. Dispatch the verification email. Fire-and-forget: a mail failure
	// never rolls back the registration.
	if err := s.Mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		log.Warn("failed to send verification email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and issues a fresh session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	// 2. Look up the account.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 3. Verify the password. Same error as unknown email.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 4. Stamp last login.
	now := time.Now().UTC()
	if err := s.Store.Users().TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Error("failed to update last login", slog.Any("error", err))
		return domain.User{}, "", err
	}
	user.LastLoginAt = &now

	// 5. Issue a fresh session token.
	token, err := s.issueToken(user.ID)
	if err != nil {
		log.Error("failed to issue session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

// VerifyEmail consumes a verification code. Codes are single-use: the code
// pair is cleared on success, so replaying the same code fails.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if code == "" {
		return domain.User{}, ErrMissingFields
	}

	// 1. Consume the code: the lookup and the clearing update share one
	// transaction so two concurrent attempts cannot both redeem it.
	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByVerificationCode(ctx, code, time.Now().UTC())
		if err != nil {
			return err
		}

		// 2. Flip the verified flag and clear the code fields.
		if err := tx.Users().MarkUserVerified(ctx, u.ID); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidVerification
		}
		log.Error("failed to verify email", slog.Any("error", err))
		return domain.User{}, err
	}
	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationExpiresAt = nil

	// 3. Welcome email, fire-and-forget.
	if err := s.Mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		log.Warn("failed to send welcome email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	log.Info("email verified", slog.String("user_id", user.ID))
	return user, nil
}

// ForgotPassword mints a single-use reset token and mails its link. Only
// the token's fingerprint is stored.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	if email == "" {
		return ErrMissingFields
	}

	// 1. Find the account.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	// 2. Generate a high-entropy opaque token.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return err
	}

	// 3. Store the fingerprint with a short expiry.
	expiresAt := time.Now().UTC().Add(s.ResetTTL)
	if err := s.Store.Users().SetResetToken(ctx, user.ID, cryptox.FingerprintToken(token), expiresAt); err != nil {
		log.Error("failed to store reset token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return err
	}

	// 4. Mail the raw token as a link, fire-and-forget.
	resetURL := s.ClientURL + "/reset-password/" + token
	if err := s.Mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		log.Warn("failed to send password reset email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	log.Info("password reset requested", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// The token pair is cleared in the same update, making it single-use.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	if token == "" || newPassword == "" {
		return ErrMissingFields
	}

	// 1. Consume the token: fingerprint lookup and the clearing update
	// share one transaction so two concurrent resets cannot both redeem it.
	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByResetTokenHash(
			ctx, cryptox.FingerprintToken(token), time.Now().UTC())
		if err != nil {
			return err
		}

		// 2. Re-hash and store; this also clears the reset fields.
		passwordHash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, passwordHash); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		log.Error("failed to reset password", slog.Any("error", err))
		return err
	}

	// 3. Confirmation email, fire-and-forget.
	if err := s.Mailer.SendResetSuccess(ctx, user.Email); err != nil {
		log.Warn("failed to send reset confirmation email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	log.Info("password reset completed", slog.String("user_id", user.ID))
	return nil
}

// GetUser fetches the account behind a verified session, for the
// check-auth and get-user endpoints.
func (s *AuthService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	claims := jwtx.NewSessionClaims(userID, s.Issuer, s.SessionTTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}
