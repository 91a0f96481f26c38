package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type setCapRequest struct {
	Caller string `json:"caller"`
	Limit  string `json:"limit"`

	caller ledger.Address
	limit  uint128.Uint128
}

func (r *setCapRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.limit, err = parseAmount("limit", r.Limit); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type setCapResult struct {
	MaxMintPerTransaction amount `json:"maxMintPerTransaction"`
	MaxTotalSupply        amount `json:"maxTotalSupply"`
}

type setCapResponse = HttpResponse[setCapResult]

func (h *HttpHandler) SetMaxMintPerTransaction(ctx *fiber.Ctx) (err error) {
	var req setCapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.SetMaxMintPerTransaction(req.caller, req.limit); err != nil {
		return errors.Wrap(err, "error during SetMaxMintPerTransaction")
	}

	return errors.WithStack(ctx.JSON(h.capsResponse()))
}

func (h *HttpHandler) SetMaxTotalSupply(ctx *fiber.Ctx) (err error) {
	var req setCapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.SetMaxTotalSupply(req.caller, req.limit); err != nil {
		return errors.Wrap(err, "error during SetMaxTotalSupply")
	}

	return errors.WithStack(ctx.JSON(h.capsResponse()))
}

func (h *HttpHandler) capsResponse() setCapResponse {
	supply := h.usecase.GetSupplyInfo()
	return setCapResponse{
		Result: &setCapResult{
			MaxMintPerTransaction: newAmount(supply.MaxMintPerTransaction),
			MaxTotalSupply:        newAmount(supply.MaxTotalSupply),
		},
	}
}

func (h *HttpHandler) GetCaps(ctx *fiber.Ctx) (err error) {
	return errors.WithStack(ctx.JSON(h.capsResponse()))
}
