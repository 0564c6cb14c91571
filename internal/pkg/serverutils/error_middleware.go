package serverutils

import (
	"context"
	"errors"

	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/redact"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts any error bubbling out of a handler
// into the {status, message, kind} envelope. Messages are sanitized
// before they cross the process boundary so a leaking backend client
// cannot exfiltrate a credential through its own error text.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Status:  "error",
				Message: redact.Sanitize(fiberErr.Message),
				Kind:    string(apperror.KindInternal),
			})
		}

		kind := apperror.KindOf(err)
		if errors.Is(err, context.DeadlineExceeded) {
			kind = apperror.KindBackendTimeout
		}

		return ctx.Status(apperror.StatusOf(kind)).JSON(ErrorBody{
			Status:  "error",
			Message: redact.Error(err),
			Kind:    string(kind),
		})
	}
}
