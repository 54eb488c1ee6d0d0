package repository_test

import (
	"context"
	"testing"
	"time"

	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (*repository.UsersRepo, *repository.NotesRepo) {
	t.Helper()
	db := testutils.SetupTestDB(t)

	users := repository.GetUsersRepo(db, "users")
	notes := repository.GetNotesRepo(db, "notes")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, repository.SetupIndexes(ctx, users.MongoCollection, notes.MongoCollection))
	return users, notes
}

func TestUsersRepo(t *testing.T) {
	users, _ := setupRepos(t)
	ctx := context.Background()

	user := &model.User{UserID: "u1", Email: "a@x.com", Name: "a", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.AddUser(ctx, user))

	dup := &model.User{UserID: "u2", Email: "a@x.com", Name: "dup"}
	assert.ErrorIs(t, users.AddUser(ctx, dup), repository.ErrDuplicateEmail)

	byEmail, err := users.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.UserID)

	byID, err := users.FindUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = users.FindUser(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Error(t, users.AddUser(ctx, &model.User{UserID: "u3"}))
}

func newNote(id, userID, title, content string, tags []string, created time.Time) *model.Note {
	return &model.Note{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNotesRepoFind(t *testing.T) {
	_, notes := setupRepos(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, n := range []*model.Note{
		newNote("n1", "u1", "Milk", "buy (2) cartons", []string{"home", "errands"}, base),
		newNote("n2", "u1", "Work", "Milk for office", []string{"work"}, base.Add(time.Minute)),
		newNote("n3", "u1", "Bread", "bake", []string{"home"}, base.Add(2*time.Minute)),
		newNote("n4", "u2", "Milk", "other user", []string{"home"}, base.Add(3*time.Minute)),
	} {
		require.NoError(t, notes.CreateNote(ctx, n))
	}

	tests := []struct {
		name   string
		filter repository.NoteFilter
		want   []string
	}{
		{name: "All newest first", want: []string{"n3", "n2", "n1"}},
		{name: "Substring", filter: repository.NoteFilter{Query: "Milk"}, want: []string{"n2", "n1"}},
		{name: "Case sensitive", filter: repository.NoteFilter{Query: "milk"}, want: []string{}},
		{name: "Regex metacharacters are literal", filter: repository.NoteFilter{Query: "(2)"}, want: []string{"n1"}},
		{name: "All tags", filter: repository.NoteFilter{Tags: []string{"home", "errands"}}, want: []string{"n1"}},
		{name: "Query and tag", filter: repository.NoteFilter{Query: "Milk", Tags: []string{"work"}}, want: []string{"n2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := notes.FindNotes(ctx, "u1", tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(found))
			for _, n := range found {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestNotesRepoUpdateAndDelete(t *testing.T) {
	_, notes := setupRepos(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, notes.CreateNote(ctx, newNote("n1", "u1", "T", "c", []string{"a"}, created)))

	tags := []string{"b"}
	later := created.Add(time.Hour)
	updated, err := notes.UpdateNote(ctx, "n1", "u1", model.NotePatch{Tags: &tags}, later)
	require.NoError(t, err)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, []string{"b"}, updated.Tags)
	assert.True(t, later.Equal(updated.UpdatedAt))
	assert.True(t, created.Equal(updated.CreatedAt))

	title := "stolen"
	_, err = notes.UpdateNote(ctx, "n1", "u2", model.NotePatch{Title: &title}, later)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = notes.GetNote(ctx, "n1", "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, notes.DeleteNote(ctx, "n1", "u2"), repository.ErrNotFound)
	require.NoError(t, notes.DeleteNote(ctx, "n1", "u1"))
	assert.ErrorIs(t, notes.DeleteNote(ctx, "n1", "u1"), repository.ErrNotFound)
}
