package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type burnFromRequest struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	Amount string `json:"amount"`

	caller ledger.Address
	from   ledger.Address
	amount uint128.Uint128
}

func (r *burnFromRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.from, err = parseAddress("from", r.From); err != nil {
		errList = append(errList, err)
	}
	if r.amount, err = parseAmount("amount", r.Amount); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type burnFromResult struct {
	From        ledger.Address `json:"from"`
	Amount      amount         `json:"amount"`
	TotalSupply amount         `json:"totalSupply"`
}

type burnFromResponse = HttpResponse[burnFromResult]

func (h *HttpHandler) BurnFrom(ctx *fiber.Ctx) (err error) {
	var req burnFromRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.BurnFrom(req.caller, req.from, req.amount); err != nil {
		return errors.Wrap(err, "error during BurnFrom")
	}

	supply := h.usecase.GetSupplyInfo()
	resp := burnFromResponse{
		Result: &burnFromResult{
			From:        req.from,
			Amount:      newAmount(req.amount),
			TotalSupply: newAmount(supply.TotalSupply),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
