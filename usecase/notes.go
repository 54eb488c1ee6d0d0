package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/utils"
)

type NotesService struct {
	NotesRepo NoteStore
	Now       func() time.Time
}

func NewNotesService(notesRepo NoteStore) *NotesService {
	return &NotesService{NotesRepo: notesRepo, Now: time.Now}
}

// Searching/Filtering options for notes
type NoteSearchOptions struct {
	UserID string
	Query  string   // case-sensitive substring of title or content
	Tags   []string // note must carry every tag
}

func (svc *NotesService) CreateNote(ctx context.Context, userID, title, content string, tags []string) (*model.Note, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	now := svc.now()
	note := &model.Note{
		ID:        utils.NewID(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateNote(note); err != nil {
		return nil, err
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("create")
	return note, nil
}

func (svc *NotesService) SearchNotes(ctx context.Context, opts NoteSearchOptions) ([]*model.Note, error) {
	if opts.UserID == "" {
		return nil, ErrUnauthenticated
	}

	notes, err := svc.NotesRepo.FindNotes(ctx, opts.UserID, repository.NoteFilter{
		Query: opts.Query,
		Tags:  opts.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	utils.TrackNoteOperation("list")
	return notes, nil
}

// UpdateNote applies only the fields present in patch. Ownership is checked
// before the supplied fields are validated.
func (svc *NotesService) UpdateNote(ctx context.Context, userID, noteID string, patch model.NotePatch) (*model.Note, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if noteID == "" {
		return nil, ErrNoteIDRequired
	}

	if _, err := svc.getOwnedNote(ctx, noteID, userID); err != nil {
		return nil, err
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := svc.NotesRepo.UpdateNote(ctx, noteID, userID, patch, svc.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	utils.TrackNoteOperation("update")
	return updated, nil
}

// DeleteNote removes the note permanently.
func (svc *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if noteID == "" {
		return ErrNoteIDRequired
	}

	if _, err := svc.getOwnedNote(ctx, noteID, userID); err != nil {
		return err
	}

	// A concurrent delete between lookup and here surfaces as not found.
	if err := svc.NotesRepo.DeleteNote(ctx, noteID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	utils.TrackNoteOperation("delete")
	return nil
}

func (svc *NotesService) getOwnedNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

// Mongo keeps millisecond precision; truncating keeps the returned record
// identical to what a later read yields.
func (svc *NotesService) now() time.Time {
	now := time.Now
	if svc.Now != nil {
		now = svc.Now
	}
	return now().UTC().Truncate(time.Millisecond)
}
