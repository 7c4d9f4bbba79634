package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/notekeep/internal/notes/domain"
	"github.com/aussiebroadwan/notekeep/pkg/notesdk"
)

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// userResponse maps an account to its public view. The password hash and
// the single-use verification/reset credentials stay server-side.
func userResponse(u domain.User) notesdk.UserResponse {
	return notesdk.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		LastLogin:  u.LastLoginAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func noteResponse(n domain.Note) notesdk.NoteResponse {
	return notesdk.NoteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		IsPinned:  n.Pinned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func noteResponses(notes []domain.Note) []notesdk.NoteResponse {
	out := make([]notesdk.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteResponse(n))
	}
	return out
}
