package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"quicknotes/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleNotes() []model.Note {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return []model.Note{
		{ID: "n2", Title: "Work", Content: "<p>standup</p>", Tags: []string{"work", "daily"}, CreatedAt: at, UpdatedAt: at},
		{ID: "n1", Title: "Milk", Content: "<p>buy</p>", Tags: []string{}, CreatedAt: at, UpdatedAt: at},
	}
}

func TestRenderNotesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderNotes(&buf, "table", sampleNotes()))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "work,daily")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("n2")), bytes.Index(buf.Bytes(), []byte("n1")))
}

func TestRenderNotesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderNotes(&buf, "json", sampleNotes()))

	var decoded []model.Note
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleNotes(), decoded)
}

func TestRenderNotesYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderNotes(&buf, "yaml", sampleNotes()))

	var decoded []noteView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Work", decoded[0].Title)
	assert.Equal(t, []string{"work", "daily"}, decoded[0].Tags)
	assert.True(t, decoded[0].Updated.Equal(sampleNotes()[0].UpdatedAt))
}

func TestRenderNotesUnknownFormat(t *testing.T) {
	assert.Error(t, renderNotes(&bytes.Buffer{}, "xml", nil))
}
