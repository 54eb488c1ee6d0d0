package utils

import (
	"github.com/google/uuid"
)

// NewID returns a random opaque identifier for users and notes.
func NewID() string {
	return uuid.New().String()
}
