package dto

import (
	"strings"

	"quicknotes/model"
)

type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest is the PATCH body. Only fields present in the JSON are applied.
type UpdateNoteRequest struct {
	ID      string             `json:"id"`
	Title   Optional[string]   `json:"title"`
	Content Optional[string]   `json:"content"`
	Tags    Optional[[]string] `json:"tags"`
}

type DeleteNoteRequest struct {
	ID string `json:"id" binding:"required"`
}

type ListNotesQuery struct {
	Q    string `form:"q"`
	Tags string `form:"tags"`
}

// TagList splits the comma separated tags parameter, dropping empty entries.
func (q ListNotesQuery) TagList() []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(q.Tags, ",") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ToPatch converts the request into the presence-tracked patch the service applies.
func (r UpdateNoteRequest) ToPatch() model.NotePatch {
	return model.NotePatch{
		Title:   r.Title.Ptr(),
		Content: r.Content.Ptr(),
		Tags:    r.Tags.Ptr(),
	}
}

// Ensure tags always serialize as an array.
func ToNoteResponse(note *model.Note) *model.Note {
	if note.Tags == nil {
		note.Tags = []string{}
	}
	return note
}

func ToNoteResponses(notes []*model.Note) []*model.Note {
	responses := make([]*model.Note, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
