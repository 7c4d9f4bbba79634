package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
	"github.com/aussiebroadwan/notekeep/internal/notes/store"
	"github.com/aussiebroadwan/notekeep/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStoreForTest(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "unused",
	}
}

func TestWithTxCommit(t *testing.T) {
	t.Parallel()

	st := newStoreForTest(t)
	ctx := context.Background()
	user := testUser("commit@x.com")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, user)
	})
	require.NoError(t, err)

	// The insert survived the commit.
	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, stored.Email)
}

func TestWithTxRollbackOnError(t *testing.T) {
	t.Parallel()

	st := newStoreForTest(t)
	ctx := context.Background()
	user := testUser("rollback@x.com")
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		// The row is visible inside the transaction.
		if _, err := tx.Users().GetUserByID(ctx, user.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// And gone after the rollback.
	_, err = st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTxExplicitRollback(t *testing.T) {
	t.Parallel()

	st := newStoreForTest(t)
	ctx := context.Background()
	user := testUser("explicit@x.com")

	tx, err := st.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Users().CreateUser(ctx, user))
	require.NoError(t, tx.Rollback())

	_, err = st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTxNestingRejected(t *testing.T) {
	t.Parallel()

	st := newStoreForTest(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.ErrorIs(t, err, sql.ErrTxDone)
}
