// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	authResponse, err := h.authService.Register(&req, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, authResponse)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, authResponse)
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := utils.GetCaller(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUserByID(caller.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(&req, c.ClientIP()); err != nil {
		handleServiceError(c, err)
		return
	}

	// Same body whether or not the address exists.
	utils.SuccessResponse(c, gin.H{
		"message": "Si el correo está registrado, recibirá instrucciones para restablecer su contraseña",
	})
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "La contraseña se actualizó correctamente",
	})
}
