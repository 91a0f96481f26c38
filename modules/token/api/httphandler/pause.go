package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type pauseRequest struct {
	Caller string `json:"caller"`

	caller ledger.Address
}

func (r *pauseRequest) Validate() error {
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}
	return nil
}

type pauseResult struct {
	Paused bool `json:"paused"`
}

type pauseResponse = HttpResponse[pauseResult]

func (h *HttpHandler) Pause(ctx *fiber.Ctx) (err error) {
	var req pauseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Pause(req.caller); err != nil {
		return errors.Wrap(err, "error during Pause")
	}

	resp := pauseResponse{
		Result: &pauseResult{Paused: true},
	}

	return errors.WithStack(ctx.JSON(resp))
}

func (h *HttpHandler) Unpause(ctx *fiber.Ctx) (err error) {
	var req pauseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Unpause(req.caller); err != nil {
		return errors.Wrap(err, "error during Unpause")
	}

	resp := pauseResponse{
		Result: &pauseResult{Paused: false},
	}

	return errors.WithStack(ctx.JSON(resp))
}
