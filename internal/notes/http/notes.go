package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/notekeep/internal/notes/service"
	"github.com/aussiebroadwan/notekeep/pkg/httpx"
	"github.com/aussiebroadwan/notekeep/pkg/notesdk"
	"github.com/aussiebroadwan/notekeep/pkg/slogx"
)

// NotesHandler serves the note CRUD endpoints. Every route sits behind the
// session gate, so the owner ID is always present in the context.
//
// Delete and pin report a missing note as 400 while edit reports 404. The
// asymmetry is deliberate: existing clients key off these statuses.
type NotesHandler struct {
	NoteService *service.NoteService
}

// HandleGetNotes lists the owner's notes, pinned first.
func (h *NotesHandler) HandleGetNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	notes, err := h.NoteService.List(ctx, userID)
	if err != nil {
		log.Error("get-notes failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, noteResponses(notes))
}

// HandleAddNote creates a note for the owner.
func (h *NotesHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	var req notesdk.AddNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	note, err := h.NoteService.Create(ctx, userID, req.Title, req.Content, req.Tags)
	switch {
	case errors.Is(err, service.ErrMissingNoteFields):
		notesdk.NewAPIError(http.StatusBadRequest,
			"All fields (title and content) are required.").WriteError(w)
		return
	case err != nil:
		log.Error("add-note failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, noteResponse(note))
}

// HandleEditNote applies a partial update to an owned note.
func (h *NotesHandler) HandleEditNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)
	noteID := r.PathValue("noteId")

	var req notesdk.EditNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	patch := service.NotePatch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}

	note, err := h.NoteService.Edit(ctx, userID, noteID, patch)
	switch {
	case errors.Is(err, service.ErrNoChanges):
		notesdk.NewAPIError(http.StatusBadRequest, "No changes provided.").WriteError(w)
		return
	case errors.Is(err, service.ErrNoteNotFound):
		notesdk.NewAPIError(http.StatusNotFound, "Note not found.").WriteError(w)
		return
	case err != nil:
		log.Error("edit-note failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, noteResponse(note))
}

// HandleUpdatePinned overwrites the pinned flag on an owned note.
func (h *NotesHandler) HandleUpdatePinned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)
	noteID := r.PathValue("noteId")

	var req notesdk.UpdateNotePinnedRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	note, err := h.NoteService.SetPinned(ctx, userID, noteID, req.IsPinned)
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		notesdk.NewAPIError(http.StatusBadRequest, "Note not found.").WriteError(w)
		return
	case err != nil:
		log.Error("update-note-pinned failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, noteResponse(note))
}

// HandleDeleteNote removes an owned note.
func (h *NotesHandler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)
	noteID := r.PathValue("noteId")

	err := h.NoteService.Delete(ctx, userID, noteID)
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		notesdk.NewAPIError(http.StatusBadRequest, "Note not found.").WriteError(w)
		return
	case err != nil:
		log.Error("delete-note failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Message: "Note deleted successfully.",
	})
}

// HandleSearchNotes returns owned notes matching the query string.
func (h *NotesHandler) HandleSearchNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)
	query := r.URL.Query().Get("query")

	notes, err := h.NoteService.Search(ctx, userID, query)
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		notesdk.NewAPIError(http.StatusBadRequest, "Search query is required.").WriteError(w)
		return
	case err != nil:
		log.Error("search-notes failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, noteResponses(notes))
}
