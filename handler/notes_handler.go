package handler

import (
	"log"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	notesService *usecase.NotesService
	dev          bool
}

func NewNoteHandler(notesService *usecase.NotesService, dev bool) *NoteHandler {
	return &NoteHandler{notesService: notesService, dev: dev}
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, publicMessage(h.dev, err, "Invalid note data"))
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), c.GetString(middleware.ContextUserIDKey), req.Title, req.Content, req.Tags)
	if err != nil {
		respondNoteError(c, h.dev, err, "Invalid note data")
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) SearchNotes(c *gin.Context) {
	var query dto.ListNotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, publicMessage(h.dev, err, "Invalid query"))
		return
	}

	notes, err := h.notesService.SearchNotes(c.Request.Context(), usecase.NoteSearchOptions{
		UserID: c.GetString(middleware.ContextUserIDKey),
		Query:  query.Q,
		Tags:   query.TagList(),
	})
	if err != nil {
		respondNoteError(c, h.dev, err, "Failed to fetch notes")
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, publicMessage(h.dev, err, "Failed to update note"))
		return
	}
	if req.ID == "" {
		utils.BadRequest(c, "Note ID is required")
		return
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		log.Printf("[%s] PATCH for note %s carries no fields; only updatedAt changes", c.GetString(middleware.ContextRequestIDKey), req.ID)
	}

	note, err := h.notesService.UpdateNote(c.Request.Context(), c.GetString(middleware.ContextUserIDKey), req.ID, patch)
	if err != nil {
		respondNoteError(c, h.dev, err, "Failed to update note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	var req dto.DeleteNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, publicMessage(h.dev, err, "Invalid note ID"))
		return
	}

	if err := h.notesService.DeleteNote(c.Request.Context(), c.GetString(middleware.ContextUserIDKey), req.ID); err != nil {
		respondNoteError(c, h.dev, err, "Invalid note ID")
		return
	}

	utils.NoContent(c)
}
