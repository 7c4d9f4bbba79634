package notesdk

import (
	"context"
	"net/http"
	"net/url"
)

// GetNotes lists the session owner's notes, pinned first.
func (c *Client) GetNotes(ctx context.Context) ([]NoteResponse, error) {
	var notes []NoteResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes/get-notes", nil, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}

// AddNote creates a note.
func (c *Client) AddNote(ctx context.Context, req AddNoteRequest) (*NoteResponse, error) {
	var note NoteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes/add-note", req, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// EditNote applies a partial update to an owned note.
func (c *Client) EditNote(ctx context.Context, noteID string, req EditNoteRequest) (*NoteResponse, error) {
	var note NoteResponse
	path := "/api/notes/edit-note/" + url.PathEscape(noteID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNotePinned sets or clears the pinned flag.
func (c *Client) UpdateNotePinned(ctx context.Context, noteID string, pinned bool) (*NoteResponse, error) {
	var note NoteResponse
	path := "/api/notes/update-note-pinned/" + url.PathEscape(noteID)
	req := UpdateNotePinnedRequest{IsPinned: pinned}
	if err := c.doJSON(ctx, http.MethodPut, path, req, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes an owned note.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	path := "/api/notes/delete-note/" + url.PathEscape(noteID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusOK)
}

// SearchNotes returns owned notes whose title or content contains the query.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]NoteResponse, error) {
	var notes []NoteResponse
	path := "/api/notes/search-notes?query=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}
