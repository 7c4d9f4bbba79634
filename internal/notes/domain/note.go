package domain

import "time"

// Note belongs to exactly one owner. Every store operation on notes filters
// by UserID so a note is never visible to or mutable by a non-owner.
type Note struct {
	ID      string
	UserID  string
	Title   string
	Content string
	Tags    []string // ordered, may be empty, never nil once persisted
	Pinned  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
