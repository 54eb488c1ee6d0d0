package dto

import (
	"encoding/json"
	"testing"

	"quicknotes/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNoteRequestPresence(t *testing.T) {
	tests := []struct {
		name      string
		inputJSON string
		check     func(*testing.T, model.NotePatch)
	}{
		{
			name:      "Only tags",
			inputJSON: `{"id":"n1","tags":["a"]}`,
			check: func(t *testing.T, p model.NotePatch) {
				assert.Nil(t, p.Title)
				assert.Nil(t, p.Content)
				require.NotNil(t, p.Tags)
				assert.Equal(t, []string{"a"}, *p.Tags)
			},
		},
		{
			name:      "Empty string is present",
			inputJSON: `{"id":"n1","title":""}`,
			check: func(t *testing.T, p model.NotePatch) {
				require.NotNil(t, p.Title)
				assert.Equal(t, "", *p.Title)
			},
		},
		{
			name:      "Null tags are present and nil",
			inputJSON: `{"id":"n1","tags":null}`,
			check: func(t *testing.T, p model.NotePatch) {
				require.NotNil(t, p.Tags)
				assert.Nil(t, *p.Tags)
			},
		},
		{
			name:      "Nothing supplied",
			inputJSON: `{"id":"n1"}`,
			check: func(t *testing.T, p model.NotePatch) {
				assert.True(t, p.IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateNoteRequest
			require.NoError(t, json.Unmarshal([]byte(tt.inputJSON), &req))
			assert.Equal(t, "n1", req.ID)
			tt.check(t, req.ToPatch())
		})
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req UpdateNoteRequest
	assert.Error(t, json.Unmarshal([]byte(`{"id":"n1","tags":"a,b"}`), &req))
}

func TestListNotesQueryTagList(t *testing.T) {
	tests := []struct {
		tags string
		want []string
	}{
		{tags: "", want: []string{}},
		{tags: "work", want: []string{"work"}},
		{tags: "work,home", want: []string{"work", "home"}},
		{tags: "work,,home,", want: []string{"work", "home"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ListNotesQuery{Tags: tt.tags}.TagList(), tt.tags)
	}
}

func TestToNoteResponseTagsNeverNull(t *testing.T) {
	out, err := json.Marshal(ToNoteResponse(&model.Note{ID: "n1"}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tags":[]`)
}
