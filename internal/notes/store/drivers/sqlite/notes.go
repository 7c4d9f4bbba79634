package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
	"github.com/aussiebroadwan/notekeep/internal/notes/store"
)

type notesRepo struct {
	db dbtx
}

const noteColumns = `id, user_id, title, content, tags, pinned, created_at, updated_at`

func scanNote(scan func(dest ...any) error) (domain.Note, error) {
	var (
		n       domain.Note
		rawTags string
	)

	err := scan(&n.ID, &n.UserID, &n.Title, &n.Content, &rawTags, &n.Pinned,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}

	tags, err := decodeTags(rawTags)
	if err != nil {
		return domain.Note{}, err
	}
	n.Tags = tags
	return n, nil
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	tags, err := encodeTags(n.Tags)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, tags, pinned, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Content, tags, n.Pinned, now, now,
	)
	return mapConflict(err)
}

func (r *notesRepo) GetNoteForUser(ctx context.Context, noteID, userID string) (domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND user_id = ?`,
		noteID, userID)
	return scanNote(row.Scan)
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	tags, err := encodeTags(n.Tags)
	if err != nil {
		return err
	}

	return r.exec(ctx,
		`UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		n.Title, n.Content, tags, time.Now().UTC(), n.ID, n.UserID)
}

func (r *notesRepo) SetNotePinned(ctx context.Context, noteID, userID string, pinned bool) error {
	return r.exec(ctx,
		`UPDATE notes SET pinned = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		pinned, time.Now().UTC(), noteID, userID)
}

func (r *notesRepo) DeleteNote(ctx context.Context, noteID, userID string) error {
	return r.exec(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`,
		noteID, userID)
}

func (r *notesRepo) ListNotesForUser(ctx context.Context, userID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE user_id = ?
		 ORDER BY pinned DESC, created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

func (r *notesRepo) SearchNotesForUser(ctx context.Context, userID, query string) ([]domain.Note, error) {
	// instr() gives literal substring matching, so LIKE wildcards in the
	// query are not special.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE user_id = ?
		   AND (instr(lower(title), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0)
		 ORDER BY pinned DESC, created_at DESC, id DESC`,
		userID, query, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	notes := make([]domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// exec runs a single-row mutation and reports ErrNotFound when no owned row
// matched. Ownership filtering happens in the WHERE clause, so a foreign
// note and a missing note are indistinguishable here.
func (r *notesRepo) exec(ctx context.Context, query string, args ...any) error {
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
