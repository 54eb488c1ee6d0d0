package dto

import (
	"quicknotes/model"
)

type AuthRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	User *model.User `json:"user"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}
