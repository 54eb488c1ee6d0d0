package handler

import (
	"errors"
	"log"

	"quicknotes/middleware"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

// publicMessage exposes err only in development mode.
func publicMessage(dev bool, err error, fallback string) string {
	if dev && err != nil {
		return err.Error()
	}
	return fallback
}

// respondNoteError maps service errors onto status codes. Not-found covers
// notes owned by other users as well.
func respondNoteError(c *gin.Context, dev bool, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.Unauthorized(c, "Authentication required")
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, usecase.ErrNoteIDRequired):
		utils.BadRequest(c, "Note ID is required")
	case errors.Is(err, usecase.ErrInvalidNote):
		utils.BadRequest(c, publicMessage(dev, err, fallback))
	default:
		log.Printf("[%s] %s %s failed: %v", c.GetString(middleware.ContextRequestIDKey), c.Request.Method, c.Request.URL.Path, err)
		utils.TrackError("notes", "internal")
		utils.InternalError(c, publicMessage(dev, err, fallback))
	}
}
