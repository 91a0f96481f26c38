package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type blacklistRequest struct {
	Caller  string `json:"caller"`
	Account string `json:"account"`
	Reason  string `json:"reason"`

	caller  ledger.Address
	account ledger.Address
}

func (r *blacklistRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.account, err = parseAddress("account", r.Account); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type blacklistResult struct {
	Account     ledger.Address `json:"account"`
	Blacklisted bool           `json:"blacklisted"`
	Reason      string         `json:"reason,omitempty"`
}

type blacklistResponse = HttpResponse[blacklistResult]

func (h *HttpHandler) Blacklist(ctx *fiber.Ctx) (err error) {
	var req blacklistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Blacklist(req.caller, req.account, req.Reason); err != nil {
		return errors.Wrap(err, "error during Blacklist")
	}

	resp := blacklistResponse{
		Result: &blacklistResult{
			Account:     req.account,
			Blacklisted: true,
			Reason:      req.Reason,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}

func (h *HttpHandler) UnBlacklist(ctx *fiber.Ctx) (err error) {
	var req blacklistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.UnBlacklist(req.caller, req.account); err != nil {
		return errors.Wrap(err, "error during UnBlacklist")
	}

	resp := blacklistResponse{
		Result: &blacklistResult{
			Account:     req.account,
			Blacklisted: false,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
