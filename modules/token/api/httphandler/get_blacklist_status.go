package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type getBlacklistStatusRequest struct {
	Address string `params:"address"`

	address ledger.Address
}

func (r *getBlacklistStatusRequest) Validate() error {
	var err error
	if r.address, err = parseAddress("address", r.Address); err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}
	return nil
}

type getBlacklistStatusResult struct {
	Address     ledger.Address `json:"address"`
	Blacklisted bool           `json:"blacklisted"`
	Reason      string         `json:"reason,omitempty"`
}

type getBlacklistStatusResponse = HttpResponse[getBlacklistStatusResult]

func (h *HttpHandler) GetBlacklistStatus(ctx *fiber.Ctx) (err error) {
	var req getBlacklistStatusRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	status := h.usecase.GetComplianceStatus(req.address)
	resp := getBlacklistStatusResponse{
		Result: &getBlacklistStatusResult{
			Address:     req.address,
			Blacklisted: status.Blacklisted,
			Reason:      status.Reason,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
