package usecase

import (
	"context"
	"time"

	"quicknotes/model"
	"quicknotes/repository"
)

// UserStore is the persistence the user service needs. *repository.UsersRepo satisfies it.
type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, userID string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// NoteStore is satisfied by *repository.NotesRepo. Every method is scoped by owner.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	FindNotes(ctx context.Context, userID string, filter repository.NoteFilter) ([]*model.Note, error)
	GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error)
	UpdateNote(ctx context.Context, noteID string, userID string, patch model.NotePatch, updatedAt time.Time) (*model.Note, error)
	DeleteNote(ctx context.Context, noteID string, userID string) error
}

// UserCache fronts UserStore lookups by id. Users are never modified after
// creation, so entries only expire.
type UserCache interface {
	GetUser(ctx context.Context, userID string) (*model.User, error) // nil, nil on miss
	SetUser(ctx context.Context, user *model.User) error
}
