package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type getBalanceRequest struct {
	Address string `params:"address"`

	address ledger.Address
}

func (r *getBalanceRequest) Validate() error {
	var err error
	if r.address, err = parseAddress("address", r.Address); err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}
	return nil
}

type getBalanceResult struct {
	Address ledger.Address `json:"address"`
	Balance amount         `json:"balance"`
}

type getBalanceResponse = HttpResponse[getBalanceResult]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	var req getBalanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	resp := getBalanceResponse{
		Result: &getBalanceResult{
			Address: req.address,
			Balance: newAmount(h.usecase.BalanceOf(req.address)),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
