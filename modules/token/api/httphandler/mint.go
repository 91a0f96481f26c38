package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type mintRequest struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`

	caller ledger.Address
	to     ledger.Address
	amount uint128.Uint128
}

func (r *mintRequest) Validate() error {
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

type mintResult struct {
	To          ledger.Address `json:"to"`
	Amount      amount         `json:"amount"`
	TotalSupply amount         `json:"totalSupply"`
}

type mintResponse = HttpResponse[mintResult]

func (h *HttpHandler) Mint(ctx *fiber.Ctx) (err error) {
	var req mintRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Mint(req.caller, req.to, req.amount); err != nil {
		return errors.Wrap(err, "error during Mint")
	}

	supply := h.usecase.GetSupplyInfo()
	resp := mintResponse{
		Result: &mintResult{
			To:          req.to,
			Amount:      newAmount(req.amount),
			TotalSupply: newAmount(supply.TotalSupply),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
