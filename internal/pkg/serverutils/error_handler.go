package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"smart-receipt-be/internal/service"
)

// ErrorHandlerMiddleware converts errors escaping the handlers into the
// shared response envelope. Stage-tagged pipeline failures keep their stage
// and kind; everything else collapses into a generic error.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if se, ok := service.AsStageError(err); ok {
			code := fiber.StatusBadGateway
			if se.Kind == service.KindValidation {
				code = fiber.StatusUnprocessableEntity
			}
			return ctx.Status(code).JSON(StageErrorResponse(code, se.Error(), se.Stage, string(se.Kind)))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
