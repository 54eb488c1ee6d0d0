package handler

import (
	"errors"
	"log"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	sessions *services.SessionStore
	dev      bool
}

func NewAuthHandler(sessions *services.SessionStore, dev bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, dev: dev}
}

// Login handles POST /api/auth: find-or-create by email, then set the cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	_, _, device := utils.ParseUserAgent(c.Request.UserAgent())

	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", device)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.BadRequest(c, "Email is required")
			return
		}
		utils.BadRequest(c, publicMessage(h.dev, err, "Invalid request body"))
		return
	}

	user, err := h.sessions.Authenticate(c, req.Email, req.Name)
	if err != nil {
		utils.TrackAuthAttempt("failure", device)
		if errors.Is(err, usecase.ErrEmailRequired) {
			utils.BadRequest(c, "Email is required")
			return
		}
		log.Printf("[%s] Auth error: %v", c.GetString(middleware.ContextRequestIDKey), err)
		utils.TrackError("auth", "authenticate_failed")
		utils.InternalError(c, publicMessage(h.dev, err, "Authentication failed"))
		return
	}

	utils.TrackAuthAttempt("success", device)
	log.Printf("User %s signed in from %s", user.UserID, utils.DescribeClient(c.Request.UserAgent()))
	utils.Success(c, dto.AuthResponse{User: user})
}

// Current handles GET /api/auth. It never fails: any problem yields a null user.
func (h *AuthHandler) Current(c *gin.Context) {
	utils.Success(c, dto.AuthResponse{User: middleware.CurrentUser(c)})
}

// Logout handles DELETE /api/auth.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.EndSession(c)
	utils.Success(c, dto.LogoutResponse{Success: true})
}
