package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type approveRequest struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"` // "max" grants an unlimited allowance

	caller  ledger.Address
	spender ledger.Address
	amount  uint128.Uint128
}

func (r *approveRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.spender, err = parseAddress("spender", r.Spender); err != nil {
		errList = append(errList, err)
	}
	if r.amount, err = parseInfiniteAmount("amount", r.Amount); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type approveResult struct {
	Owner     ledger.Address `json:"owner"`
	Spender   ledger.Address `json:"spender"`
	Allowance amount         `json:"allowance"`
}

type approveResponse = HttpResponse[approveResult]

func (h *HttpHandler) Approve(ctx *fiber.Ctx) (err error) {
	var req approveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Approve(req.caller, req.spender, req.amount); err != nil {
		return errors.Wrap(err, "error during Approve")
	}

	resp := approveResponse{
		Result: &approveResult{
			Owner:     req.caller,
			Spender:   req.spender,
			Allowance: newAmount(req.amount),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
