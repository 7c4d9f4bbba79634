package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
	"github.com/aussiebroadwan/notekeep/internal/notes/store"
	"github.com/aussiebroadwan/notekeep/pkg/idx"
	"github.com/aussiebroadwan/notekeep/pkg/slogx"
)

var (
	ErrMissingNoteFields = errors.New("title and content are required")
	ErrNoChanges         = errors.New("no changes provided")
	ErrNoteNotFound      = errors.New("note not found")
	ErrEmptyQuery        = errors.New("search query is required")
)

// NotePatch describes a partial edit. Nil fields keep their prior value,
// and an empty-string Title or Content counts as absent too. An empty tag
// list is a real change: it clears the tags.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// normalize drops empty-string fields so they read as absent.
func (p NotePatch) normalize() NotePatch {
	if p.Title != nil && *p.Title == "" {
		p.Title = nil
	}
	if p.Content != nil && *p.Content == "" {
		p.Content = nil
	}
	return p
}

func (p NotePatch) empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

// NoteService performs all note operations scoped to the authenticated
// owner. Ownership is enforced in every store call: a foreign note is
// indistinguishable from a missing one.
type NoteService struct {
	Store store.Store
}

// Create persists a new note owned by userID. Tags default to an empty
// ordered list.
func (s *NoteService) Create(
	ctx context.Context,
	userID, title, content string,
	tags []string,
) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	if title == "" || content == "" {
		return domain.Note{}, ErrMissingNoteFields
	}
	if tags == nil {
		tags = []string{}
	}

	note := domain.Note{
		ID:      idx.New().String(),
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    tags,
	}

	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		log.Error("failed to create note", slog.Any("error", err))
		return domain.Note{}, err
	}

	// Re-read so the caller sees the stored timestamps.
	created, err := s.Store.Notes().GetNoteForUser(ctx, note.ID, userID)
	if err != nil {
		log.Error("failed to reload created note", slog.Any("error", err))
		return domain.Note{}, err
	}

	log.Debug("note created",
		slog.String("note_id", note.ID),
		slog.String("user_id", userID),
	)
	return created, nil
}

// Edit applies a partial update to an owned note. An empty patch is
// rejected before ownership is even checked, so it fails identically for
// owned, foreign and missing notes.
func (s *NoteService) Edit(
	ctx context.Context,
	userID, noteID string,
	patch NotePatch,
) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	// 1. Treat empty strings as absent, then reject empty patches
	// regardless of ownership.
	patch = patch.normalize()
	if patch.empty() {
		return domain.Note{}, ErrNoChanges
	}

	// 2. Load the note, owner-scoped.
	note, err := s.Store.Notes().GetNoteForUser(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		log.Error("failed to fetch note", slog.Any("error", err))
		return domain.Note{}, err
	}

	// 3. Apply only the supplied fields.
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}

	// 4. Persist, still owner-scoped.
	if err := s.Store.Notes().UpdateNote(ctx, note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		log.Error("failed to update note", slog.Any("error", err))
		return domain.Note{}, err
	}

	updated, err := s.Store.Notes().GetNoteForUser(ctx, noteID, userID)
	if err != nil {
		log.Error("failed to reload updated note", slog.Any("error", err))
		return domain.Note{}, err
	}

	log.Debug("note edited",
		slog.String("note_id", noteID),
		slog.String("user_id", userID),
	)
	return updated, nil
}

// SetPinned overwrites the pinned flag unconditionally.
func (s *NoteService) SetPinned(
	ctx context.Context,
	userID, noteID string,
	pinned bool,
) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Notes().SetNotePinned(ctx, noteID, userID, pinned); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		log.Error("failed to update pinned flag", slog.Any("error", err))
		return domain.Note{}, err
	}

	note, err := s.Store.Notes().GetNoteForUser(ctx, noteID, userID)
	if err != nil {
		log.Error("failed to reload pinned note", slog.Any("error", err))
		return domain.Note{}, err
	}

	log.Debug("note pinned flag set",
		slog.String("note_id", noteID),
		slog.Bool("pinned", pinned),
	)
	return note, nil
}

// Delete removes an owned note.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Notes().DeleteNote(ctx, noteID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoteNotFound
		}
		log.Error("failed to delete note", slog.Any("error", err))
		return err
	}

	log.Debug("note deleted",
		slog.String("note_id", noteID),
		slog.String("user_id", userID),
	)
	return nil
}

// List returns every note owned by userID, pinned first.
func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.Store.Notes().ListNotesForUser(ctx, userID)
}

// Search returns owned notes matching the query as a case-insensitive
// substring of title or content. No ranking.
func (s *NoteService) Search(ctx context.Context, userID, query string) ([]domain.Note, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.Store.Notes().SearchNotesForUser(ctx, userID, query)
}
