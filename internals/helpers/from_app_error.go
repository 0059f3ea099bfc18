package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/helpers/apperrors"
	"raportku_backend/internals/services/errlog"
)

// FromAppError memetakan error domain (apperrors) ke envelope JSON standar.
// *fiber.Error diteruskan apa adanya; selain itu 500.
func FromAppError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := apperrors.IsValidation(err); ok {
		return JsonValidationError(c, ve.Error(), ve.FieldMap())
	}
	if le, ok := apperrors.IsLocked(err); ok {
		return JsonErrorCode(c, fiber.StatusConflict, CodeReportCardLocked, le.Error())
	}

	var fe *fiber.Error
	switch {
	case errors.Is(err, apperrors.ErrEmptyCohort):
		return JsonErrorCode(c, fiber.StatusUnprocessableEntity, CodeEmptyCohort, err.Error())
	case errors.Is(err, apperrors.ErrNoActiveTerm):
		return JsonErrorCode(c, fiber.StatusNotFound, CodeNoActiveTerm, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	}

	errlog.Error(c.Method()+" "+c.OriginalURL(), err, map[string]interface{}{
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
	var te *apperrors.TransactionError
	if errors.As(err, &te) {
		return JsonError(c, fiber.StatusInternalServerError, te.Error())
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
