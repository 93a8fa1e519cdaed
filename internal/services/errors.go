// internal/services/errors.go
package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/conapesca/repa-backend/internal/utils"
)

var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrForbidden          = errors.New("no tiene permiso para modificar este recurso")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrInvalidToken       = errors.New("el enlace de recuperación es inválido o ya expiró")
	ErrCaptchaFailed      = errors.New("no fue posible verificar el captcha")
)

// FieldError carries a user-facing message tied to one form field. Handlers
// translate it into a 400 {message, field} body.
type FieldError struct {
	Message string
	Field   string
}

func (e *FieldError) Error() string {
	return e.Message
}

func logError(msg string, err error) {
	logrus.WithError(err).Error(msg)
}

// mapWriteError decodes database "value too long" failures into the original
// form field name using the per-entity column table; anything else passes
// through for generic 500 handling.
func mapWriteError(err error, fieldByColumn map[string]string) error {
	if err == nil {
		return nil
	}
	column, tooLong := utils.TooLongColumn(err)
	if !tooLong {
		return err
	}
	return &FieldError{
		Message: "El valor capturado excede la longitud permitida",
		Field:   fieldByColumn[column],
	}
}
