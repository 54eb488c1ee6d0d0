package client

import (
	"context"
	"strings"
	"sync"

	"quicknotes/dto"
	"quicknotes/model"
)

const (
	DefaultNoteTitle   = "Untitled Note"
	DefaultNoteContent = "New note..."
)

// Store is the local cache of the signed-in user and their notes. Every
// mutation calls the API first and reconciles from the returned record.
// Failures are kept in Err and leave the loaded notes in place.
type Store struct {
	api API

	mu         sync.Mutex
	user       *model.User
	notes      []model.Note
	selectedID string
	err        string
	loading    bool
}

func NewStore(api API) *Store {
	return &Store{api: api, notes: make([]model.Note, 0)}
}

// RestoreSession asks the server who the cookie belongs to.
func (s *Store) RestoreSession(ctx context.Context) (*model.User, error) {
	s.clearError()
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

func (s *Store) Login(ctx context.Context, email, name string) (*model.User, error) {
	s.clearError()
	user, err := s.api.Login(ctx, email, name)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

func (s *Store) Logout(ctx context.Context) error {
	s.clearError()
	if err := s.api.Logout(ctx); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.notes = make([]model.Note, 0)
	s.selectedID = ""
	s.mu.Unlock()
	return nil
}

// LoadNotes replaces the list and selects the first note.
func (s *Store) LoadNotes(ctx context.Context, query string, tags []string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	notes, err := s.api.FetchNotes(ctx, query, tags)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.notes = notes
	s.selectedID = ""
	if len(notes) > 0 {
		s.selectedID = notes[0].ID
	}
	return nil
}

// CreateNote creates a note with default content and prepends it.
func (s *Store) CreateNote(ctx context.Context) (*model.Note, error) {
	s.clearError()
	note, err := s.api.CreateNote(ctx, dto.CreateNoteRequest{
		Title:   DefaultNoteTitle,
		Content: DefaultNoteContent,
		Tags:    []string{},
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.notes = append([]model.Note{*note}, s.notes...)
	s.selectedID = note.ID
	s.mu.Unlock()
	return note, nil
}

// UpdateNote saves note and replaces the local copy with the server's.
func (s *Store) UpdateNote(ctx context.Context, note model.Note) (*model.Note, error) {
	s.clearError()
	updated, err := s.api.UpdateNote(ctx, note)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == updated.ID {
			s.notes[i] = *updated
		}
	}
	s.selectedID = updated.ID
	s.mu.Unlock()
	return updated, nil
}

// DeleteNote removes the note locally once the server confirms, then selects
// the first remaining note.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.clearError()
	if err := s.api.DeleteNote(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	remaining := make([]model.Note, 0, len(s.notes))
	for _, note := range s.notes {
		if note.ID != id {
			remaining = append(remaining, note)
		}
	}
	s.notes = remaining
	s.selectedID = ""
	if len(remaining) > 0 {
		s.selectedID = remaining[0].ID
	}
	s.mu.Unlock()
	return nil
}

// Select marks a loaded note as the current one.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, note := range s.notes {
		if note.ID == id {
			s.selectedID = id
			return true
		}
	}
	return false
}

func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Notes returns a copy of the cached list.
func (s *Store) Notes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// FilterNotes narrows the loaded list without a server call. The match is
// case-insensitive against title, content and each tag; an empty query
// returns every loaded note.
func (s *Store) FilterNotes(query string) []model.Note {
	needle := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, 0, len(s.notes))
	for _, note := range s.notes {
		if noteMatches(note, needle) {
			out = append(out, note)
		}
	}
	return out
}

func noteMatches(note model.Note, needle string) bool {
	if strings.Contains(strings.ToLower(note.Title), needle) ||
		strings.Contains(strings.ToLower(note.Content), needle) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// AddTags appends each tag not already present, keeping order.
func AddTags(tags []string, add ...string) []string {
	out := make([]string, 0, len(tags)+len(add))
	seen := make(map[string]struct{}, len(tags)+len(add))
	for _, tag := range append(append([]string{}, tags...), add...) {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *Store) Selected() *model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, note := range s.notes {
		if note.ID == s.selectedID {
			n := note
			return &n
		}
	}
	return nil
}

// Err is the banner text of the last failed action, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) clearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
}
