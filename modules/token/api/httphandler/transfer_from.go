package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type transferFromRequest struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`

	caller ledger.Address
	from   ledger.Address
	to     ledger.Address
	amount uint128.Uint128
}

func (r *transferFromRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.from, err = parseAddress("from", r.From); err != nil {
		errList = append(errList, err)
	}
	if r.to, err = parseAddress("to", r.To); err != nil {
		errList = append(errList, err)
	}
	if r.amount, err = parseAmount("amount", r.Amount); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type transferFromResult struct {
	From               ledger.Address `json:"from"`
	To                 ledger.Address `json:"to"`
	Amount             amount         `json:"amount"`
	RemainingAllowance amount         `json:"remainingAllowance"`
}

type transferFromResponse = HttpResponse[transferFromResult]

func (h *HttpHandler) TransferFrom(ctx *fiber.Ctx) (err error) {
	var req transferFromRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.TransferFrom(req.caller, req.from, req.to, req.amount); err != nil {
		return errors.Wrap(err, "error during TransferFrom")
	}

	resp := transferFromResponse{
		Result: &transferFromResult{
			From:               req.from,
			To:                 req.to,
			Amount:             newAmount(req.amount),
			RemainingAllowance: newAmount(h.usecase.Allowance(req.from, req.caller)),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
