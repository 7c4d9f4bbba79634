package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-signup checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByVerificationCode returns the user holding an unexpired
	// verification code. Expired or cleared codes report ErrNotFound.
	GetUserByVerificationCode(ctx context.Context, code string, now time.Time) (domain.User, error)

	// MarkUserVerified sets is_verified and clears the code pair.
	MarkUserVerified(ctx context.Context, userID string) error

	// SetResetToken stores the reset token fingerprint and its expiry,
	// replacing any previous one.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// GetUserByResetTokenHash returns the user holding an unexpired reset
	// token fingerprint. Expired or cleared tokens report ErrNotFound.
	GetUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (domain.User, error)

	// UpdatePasswordHash sets a new password hash and clears the reset pair.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// TouchLastLogin stamps last_login_at.
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error

	// DeleteExpiredVerificationCodes clears code pairs past their expiry (housekeeping).
	DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) error

	// DeleteExpiredResetTokens clears reset pairs past their expiry (housekeeping).
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) error
}

type Notes interface {
	// CreateNote inserts a new note (id is ULID, owner set by caller).
	CreateNote(ctx context.Context, n domain.Note) error

	// GetNoteForUser returns the note only when owned by userID.
	GetNoteForUser(ctx context.Context, noteID, userID string) (domain.Note, error)

	// UpdateNote rewrites title, content and tags for an owned note and
	// bumps updated_at. ErrNotFound when not owned.
	UpdateNote(ctx context.Context, n domain.Note) error

	// SetNotePinned overwrites the pinned flag for an owned note.
	SetNotePinned(ctx context.Context, noteID, userID string, pinned bool) error

	// DeleteNote removes an owned note. ErrNotFound when not owned.
	DeleteNote(ctx context.Context, noteID, userID string) error

	// ListNotesForUser returns all notes owned by userID, pinned first,
	// newest first within each group.
	ListNotesForUser(ctx context.Context, userID string) ([]domain.Note, error)

	// SearchNotesForUser returns owned notes whose title or content contains
	// query, case-insensitive.
	SearchNotesForUser(ctx context.Context, userID, query string) ([]domain.Note, error)
}
