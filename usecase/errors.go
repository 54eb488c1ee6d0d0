package usecase

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("note not found")
	ErrInvalidNote     = errors.New("invalid note data")
	ErrNoteIDRequired  = errors.New("note ID is required")
	ErrEmailRequired   = errors.New("email is required")
)
