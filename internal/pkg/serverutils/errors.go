package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status code alongside a user-readable message.
// Services return it for client input errors; the middleware maps it.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func BadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message)
}

func NotFound(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, message)
}

// ErrorHandlerMiddleware converts errors bubbled out of controllers into a
// JSON envelope. Unknown errors are masked as 500 to avoid leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(FailResponse(appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(FailResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(FailResponse("Internal server error"))
	}
}
