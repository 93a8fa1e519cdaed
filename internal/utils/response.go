// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/models"
)

// APIError is the portal's wire shape for every 4xx/5xx body. Field is only
// present when the failure maps to one form field.
type APIError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Caller is the authenticated identity the auth middleware attaches to the
// request. SolicitanteID is zero until the applicant profile row exists.
type Caller struct {
	UserID        uint
	Email         string
	Role          models.Role
	SolicitanteID uint
}

const callerKey = "caller"

func SetCaller(c *gin.Context, caller Caller) {
	c.Set(callerKey, caller)
}

func GetCaller(c *gin.Context) (Caller, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIError{Message: message})
}

func FieldErrorResponse(c *gin.Context, statusCode int, message, field string) {
	c.JSON(statusCode, APIError{Message: message, Field: field})
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Solicitud inválida"
	}
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "No autorizado"
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Acceso denegado"
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Recurso no encontrado"
	}
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "Ocurrió un error interno, intente más tarde")
}

func ValidationErrorResponse(c *gin.Context, ve *ValidationError) {
	FieldErrorResponse(c, http.StatusBadRequest, ve.Message, ve.Field)
}
