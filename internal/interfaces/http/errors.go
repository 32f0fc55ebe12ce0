package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
)

// statusFor mapea errores de dominio a código HTTP y código de API.
// Centralizado para que todos los handlers respondan igual ante el mismo error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientCredit):
		return fiber.StatusConflict, "INSUFFICIENT_CREDIT"
	case errors.Is(err, domain.ErrAlreadyVoid):
		return fiber.StatusConflict, "ALREADY_VOID"
	case errors.Is(err, domain.ErrAlreadySettled):
		return fiber.StatusConflict, "ALREADY_SETTLED"
	case errors.Is(err, domain.ErrExcessPayment):
		return fiber.StatusConflict, "EXCESS_PAYMENT"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// respondError responde el error con su código HTTP y la lista completa de
// reglas violadas (si el error las trae).
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Details: domain.DetailsOf(err),
	})
}

// badRequest respuesta 400 directa para errores de parseo del body.
func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
