package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type getAllowanceRequest struct {
	Owner   string `params:"owner"`
	Spender string `params:"spender"`

	owner   ledger.Address
	spender ledger.Address
}

func (r *getAllowanceRequest) Validate() error {
	var errList []error
	var err error
	if r.owner, err = parseAddress("owner", r.Owner); err != nil {
		errList = append(errList, err)
	}
	if r.spender, err = parseAddress("spender", r.Spender); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getAllowanceResult struct {
	Owner     ledger.Address `json:"owner"`
	Spender   ledger.Address `json:"spender"`
	Allowance amount         `json:"allowance"`
	Infinite  bool           `json:"infinite"`
}

type getAllowanceResponse = HttpResponse[getAllowanceResult]

func (h *HttpHandler) GetAllowance(ctx *fiber.Ctx) (err error) {
	var req getAllowanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	allowance := h.usecase.Allowance(req.owner, req.spender)
	resp := getAllowanceResponse{
		Result: &getAllowanceResult{
			Owner:     req.owner,
			Spender:   req.spender,
			Allowance: newAmount(allowance),
			Infinite:  allowance == uint128.Max,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
