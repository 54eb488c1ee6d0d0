package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"quicknotes/model"
	"quicknotes/repository"
)

// MemoryUsers is an in-process stand-in for repository.UsersRepo.
type MemoryUsers struct {
	mu      sync.Mutex
	byID    map[string]model.User
	FindErr error // returned by every lookup when set
	Adds    int
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byID: make(map[string]model.User)}
}

func (m *MemoryUsers) AddUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.byID[user.UserID] = *user
	m.Adds++
	return nil
}

func (m *MemoryUsers) FindUser(ctx context.Context, userID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	user, ok := m.byID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (m *MemoryUsers) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, user := range m.byID {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemoryUsers) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// MemoryNotes mirrors repository.NotesRepo semantics in memory.
type MemoryNotes struct {
	mu      sync.Mutex
	byID    map[string]model.Note
	FindErr error // returned by FindNotes when set
}

func NewMemoryNotes() *MemoryNotes {
	return &MemoryNotes{byID: make(map[string]model.Note)}
}

func (m *MemoryNotes) CreateNote(ctx context.Context, note *model.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[note.ID] = cloneNote(*note)
	return nil
}

func (m *MemoryNotes) FindNotes(ctx context.Context, userID string, filter repository.NoteFilter) ([]*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	notes := make([]*model.Note, 0)
	for _, note := range m.byID {
		if note.UserID != userID {
			continue
		}
		if filter.Query != "" &&
			!strings.Contains(note.Title, filter.Query) &&
			!strings.Contains(note.Content, filter.Query) {
			continue
		}
		if !hasAllTags(note.Tags, filter.Tags) {
			continue
		}
		n := cloneNote(note)
		notes = append(notes, &n)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (m *MemoryNotes) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.byID[noteID]
	if !ok || note.UserID != userID {
		return nil, repository.ErrNotFound
	}
	n := cloneNote(note)
	return &n, nil
}

func (m *MemoryNotes) UpdateNote(ctx context.Context, noteID string, userID string, patch model.NotePatch, updatedAt time.Time) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.byID[noteID]
	if !ok || note.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = append([]string{}, (*patch.Tags)...)
	}
	note.UpdatedAt = updatedAt
	m.byID[noteID] = note
	n := cloneNote(note)
	return &n, nil
}

func (m *MemoryNotes) DeleteNote(ctx context.Context, noteID string, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.byID[noteID]
	if !ok || note.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.byID, noteID)
	return nil
}

func (m *MemoryNotes) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func cloneNote(note model.Note) model.Note {
	if note.Tags != nil {
		note.Tags = append([]string{}, note.Tags...)
	}
	return note
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
