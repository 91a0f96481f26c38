package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type getAccountRequest struct {
	Address string `params:"address"`

	address ledger.Address
}

func (r *getAccountRequest) Validate() error {
	var err error
	if r.address, err = parseAddress("address", r.Address); err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}
	return nil
}

type getAccountResult struct {
	Address         ledger.Address `json:"address"`
	Balance         amount         `json:"balance"`
	Roles           []ledger.Role  `json:"roles"`
	Blacklisted     bool           `json:"blacklisted"`
	BlacklistReason string         `json:"blacklistReason,omitempty"`
}

type getAccountResponse = HttpResponse[getAccountResult]

func (h *HttpHandler) GetAccount(ctx *fiber.Ctx) (err error) {
	var req getAccountRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	status := h.usecase.GetComplianceStatus(req.address)
	resp := getAccountResponse{
		Result: &getAccountResult{
			Address:         req.address,
			Balance:         newAmount(h.usecase.BalanceOf(req.address)),
			Roles:           h.usecase.GetAccountRoles(req.address),
			Blacklisted:     status.Blacklisted,
			BlacklistReason: status.Reason,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
