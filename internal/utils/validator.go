// internal/utils/validator.go
package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	curpPattern         = regexp.MustCompile(`^[A-Z][AEIOUX][A-Z]{2}\d{6}[HM][A-Z]{5}[A-Z0-9]\d$`)
	rfcPattern          = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3}$`)
	telefonoPattern     = regexp.MustCompile(`^\d{10}$`)
	codigoPostalPattern = regexp.MustCompile(`^\d{5}$`)
)

func init() {
	validate = validator.New()
	// Error fields must name the key the client sent, not the Go field.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("curp", validateCurp)
	validate.RegisterValidation("rfc", validateRfc)
	validate.RegisterValidation("telefono", validateTelefono)
	validate.RegisterValidation("codigo_postal", validateCodigoPostal)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCurp(fl validator.FieldLevel) bool {
	curp := fl.Field().String()
	return len(curp) == 18 && curpPattern.MatchString(curp)
}

func validateRfc(fl validator.FieldLevel) bool {
	rfc := fl.Field().String()
	if len(rfc) != 12 && len(rfc) != 13 {
		return false
	}
	return rfcPattern.MatchString(rfc)
}

func validateTelefono(fl validator.FieldLevel) bool {
	return telefonoPattern.MatchString(fl.Field().String())
}

func validateCodigoPostal(fl validator.FieldLevel) bool {
	return codigoPostalPattern.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FirstValidationError extracts the first failing rule so handlers can return
// the portal's single {message, field} error body.
func FirstValidationError(err error) *ValidationError {
	errs := GetValidationErrors(err)
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return "El campo " + field + " es obligatorio"
	case "email":
		return "El correo electrónico no tiene un formato válido"
	case "min":
		return "El campo " + field + " debe tener al menos " + e.Param() + " caracteres"
	case "max":
		return "El campo " + field + " debe tener a lo más " + e.Param() + " caracteres"
	case "curp":
		return "La CURP debe tener 18 caracteres con el formato oficial"
	case "rfc":
		return "El RFC debe tener 12 o 13 caracteres con el formato oficial"
	case "telefono":
		return "El teléfono debe tener 10 dígitos"
	case "codigo_postal":
		return "El código postal debe tener 5 dígitos"
	case "oneof":
		return "El campo " + field + " tiene un valor no permitido"
	case "gte", "gt":
		return "El campo " + field + " debe ser un número positivo"
	default:
		return "El campo " + field + " no es válido"
	}
}
