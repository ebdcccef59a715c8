package handlers

import (
	"github.com/consultly-app/consultly/internal/middleware"
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login issues a bearer token for valid credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.auth.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "login successful")
}

// ForgotPassword emails a short-lived password-reset link.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.auth.ForgotPassword(&req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "password reset email sent")
}

// ResetPassword sets a new password for a valid reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.auth.ResetPassword(&req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "password updated")
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "ok")
}
