package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type burnRequest struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`

	caller ledger.Address
	amount uint128.Uint128
}

func (r *burnRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.amount, err = parseAmount("amount", r.Amount); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type burnResult struct {
	From        ledger.Address `json:"from"`
	Amount      amount         `json:"amount"`
	Balance     amount         `json:"balance"`
	TotalSupply amount         `json:"totalSupply"`
}

type burnResponse = HttpResponse[burnResult]

func (h *HttpHandler) Burn(ctx *fiber.Ctx) (err error) {
	var req burnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Burn(req.caller, req.amount); err != nil {
		return errors.Wrap(err, "error during Burn")
	}

	supply := h.usecase.GetSupplyInfo()
	resp := burnResponse{
		Result: &burnResult{
			From:        req.caller,
			Amount:      newAmount(req.amount),
			Balance:     newAmount(h.usecase.BalanceOf(req.caller)),
			TotalSupply: newAmount(supply.TotalSupply),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
