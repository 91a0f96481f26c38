package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/pkg/logger"
	"github.com/usdm-network/ledger-node/pkg/logger/slogx"
)

// statusFromKind maps internal error kinds to HTTP status codes.
// Unmapped kinds fall through to 500 without exposing the error text.
func statusFromKind(err error) (int, bool) {
	switch {
	case errors.Is(err, errs.NotFound):
		return http.StatusNotFound, true
	case errors.Is(err, errs.InvalidArgument),
		errors.Is(err, errs.ArgumentRequired),
		errors.Is(err, errs.Unsupported),
		errors.Is(err, errs.OverflowUint128):
		return http.StatusBadRequest, true
	case errors.Is(err, errs.Unauthorized):
		return http.StatusForbidden, true
	case errors.Is(err, errs.ConflictSetting):
		return http.StatusConflict, true
	case errors.Is(err, errs.InsufficientFunds):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, errs.Timeout):
		return http.StatusGatewayTimeout, true
	}
	return 0, false
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			status := http.StatusBadRequest
			if s, ok := statusFromKind(err); ok {
				status = s
			}
			return errors.WithStack(ctx.Status(status).JSON(map[string]any{
				"error": e.Message(),
			}))
		}
		if status, ok := statusFromKind(err); ok {
			return errors.WithStack(ctx.Status(status).JSON(map[string]any{
				"error": err.Error(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).SendString(e.Error()))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
