package serverutils

import (
	"errors"

	"ollama-chat-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy onto HTTP status codes.
// Every surfaced error carries enough detail to name the failed precondition
// (missing session id, both model names, upstream cause) without leaking
// anything else.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			notFound      *apperrors.NotFoundError
			modelMismatch *apperrors.ModelMismatchError
			validation    *apperrors.ValidationError
			upstream      *apperrors.UpstreamError
			inference     *apperrors.InferenceError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &notFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(notFound.Error()))
		case errors.As(err, &modelMismatch):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(modelMismatch.Error()))
		case errors.As(err, &validation):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(validation.Error()))
		case errors.As(err, &upstream):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(upstream.Error()))
		case errors.As(err, &inference):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(inference.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
		}
	}
}
