package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
	"github.com/aussiebroadwan/notekeep/internal/notes/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, password_hash, is_verified,
	verification_code, verification_expires_at,
	reset_token_hash, reset_expires_at,
	last_login_at, created_at, updated_at`

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                 domain.User
		verificationCode  sql.NullString
		verificationUntil sql.NullTime
		resetHash         sql.NullString
		resetUntil        sql.NullTime
		lastLogin         sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsVerified,
		&verificationCode, &verificationUntil,
		&resetHash, &resetUntil,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.VerificationCode = mapNullStringPtr(verificationCode)
	u.VerificationExpiresAt = mapNullTimePtr(verificationUntil)
	u.ResetTokenHash = mapNullStringPtr(resetHash)
	u.ResetExpiresAt = mapNullTimePtr(resetUntil)
	u.LastLoginAt = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			id, name, email, password_hash, is_verified,
			verification_code, verification_expires_at,
			last_login_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.IsVerified,
		mapOptionalString(u.VerificationCode), mapOptionalTime(u.VerificationExpiresAt),
		mapOptionalTime(u.LastLoginAt), now, now,
	)
	return mapConflict(err)
}

func (r *usersRepo) GetUserByVerificationCode(
	ctx context.Context,
	code string,
	now time.Time,
) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE verification_code = ? AND verification_expires_at >= ?`,
		code, now.UTC())
	return r.scanUser(row)
}

func (r *usersRepo) MarkUserVerified(ctx context.Context, userID string) error {
	return r.exec(ctx,
		`UPDATE users SET
			is_verified = 1,
			verification_code = NULL,
			verification_expires_at = NULL,
			updated_at = ?
		 WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) SetResetToken(
	ctx context.Context,
	userID, tokenHash string,
	expiresAt time.Time,
) error {
	return r.exec(ctx,
		`UPDATE users SET
			reset_token_hash = ?,
			reset_expires_at = ?,
			updated_at = ?
		 WHERE id = ?`,
		tokenHash, expiresAt.UTC(), time.Now().UTC(), userID)
}

func (r *usersRepo) GetUserByResetTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE reset_token_hash = ? AND reset_expires_at >= ?`,
		tokenHash, now.UTC())
	return r.scanUser(row)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.exec(ctx,
		`UPDATE users SET
			password_hash = ?,
			reset_token_hash = NULL,
			reset_expires_at = NULL,
			updated_at = ?
		 WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`,
		at.UTC(), time.Now().UTC(), userID)
}

func (r *usersRepo) DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			verification_code = NULL,
			verification_expires_at = NULL
		 WHERE verification_expires_at IS NOT NULL AND verification_expires_at < ?`,
		now.UTC())
	return err
}

func (r *usersRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			reset_token_hash = NULL,
			reset_expires_at = NULL
		 WHERE reset_expires_at IS NOT NULL AND reset_expires_at < ?`,
		now.UTC())
	return err
}

// exec runs a single-row UPDATE and reports ErrNotFound when no row matched.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
