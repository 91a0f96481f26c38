package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type transferRequest struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`

	caller ledger.Address
	to     ledger.Address
	amount uint128.Uint128
}

func (r *transferRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
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

type transferResult struct {
	From    ledger.Address `json:"from"`
	To      ledger.Address `json:"to"`
	Amount  amount         `json:"amount"`
	Balance amount         `json:"balance"`
}

type transferResponse = HttpResponse[transferResult]

func (h *HttpHandler) Transfer(ctx *fiber.Ctx) (err error) {
	var req transferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Transfer(req.caller, req.to, req.amount); err != nil {
		return errors.Wrap(err, "error during Transfer")
	}

	resp := transferResponse{
		Result: &transferResult{
			From:    req.caller,
			To:      req.to,
			Amount:  newAmount(req.amount),
			Balance: newAmount(h.usecase.BalanceOf(req.caller)),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
