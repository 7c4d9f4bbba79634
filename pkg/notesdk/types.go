package notesdk

import "time"

// ============================================================================
// Request types
// ============================================================================

// SignUpRequest creates a new account.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailRequest submits the 6-digit code mailed at sign-up.
type VerifyEmailRequest struct {
	Code string `json:"code"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the reset flow. The token travels in the
// URL path, only the new password is in the body.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// AddNoteRequest creates a note. Tags may be omitted.
type AddNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// EditNoteRequest is a partial update. Omitted fields keep their value;
// at least one field must be present.
type EditNoteRequest struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// UpdateNotePinnedRequest overwrites the pinned flag.
type UpdateNotePinnedRequest struct {
	IsPinned bool `json:"isPinned"`
}

// ============================================================================
// Response types
// ============================================================================

// UserResponse is the public view of an account. The password hash and the
// single-use credentials never leave the server.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NoteResponse is a single note as returned by every note endpoint.
type NoteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageResponse carries a human-readable confirmation for endpoints with
// no entity to return (logout, delete, forgot-password, reset-password).
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error envelope every non-2xx response uses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness, only present on readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
