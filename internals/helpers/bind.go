package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/helpers/apperrors"
)

var defaultValidator = NewValidator()

// NewValidator: validator yang melaporkan nama field sesuai tag json.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// BindAndValidate: parse body JSON lalu validasi tag `validate`.
// Error validasi dikembalikan sebagai *apperrors.ValidationError (per field, nama json).
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	return Validate(v, dst)
}

func Validate(v *validator.Validate, dst any) error {
	if v == nil {
		v = defaultValidator
	}
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	fields := make([]apperrors.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, apperrors.FieldError{
			Field: jsonPath(fe.Namespace()),
			Error: fe.Tag(),
		})
	}
	return apperrors.NewValidationError(errors.New("validation failed"), fields...)
}

// "BulkScoreDTO.scores[1].score" → "scores[1].score"
func jsonPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
