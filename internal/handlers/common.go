// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

// bindAndValidate decodes the JSON body into req and runs the struct rules,
// writing the 400 response itself on failure.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "El cuerpo de la solicitud no es válido")
		return false
	}

	if err := utils.ValidateStruct(req); err != nil {
		if ve := utils.FirstValidationError(err); ve != nil {
			utils.ValidationErrorResponse(c, ve)
		} else {
			utils.BadRequestResponse(c, "")
		}
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "El identificador no es válido")
		return 0, false
	}
	return uint(id), true
}

// handleServiceError translates the service layer's sentinel errors into the
// portal's status codes. Anything unrecognized is logged and hidden behind a
// generic 500.
func handleServiceError(c *gin.Context, err error) {
	var fieldErr *services.FieldError
	if errors.As(err, &fieldErr) {
		utils.FieldErrorResponse(c, http.StatusBadRequest, fieldErr.Message, fieldErr.Field)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrCaptchaFailed):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrMasterPassword),
		errors.Is(err, services.ErrSuperadminProtected):
		utils.ForbiddenResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c)
	}
}
