package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type roleRequest struct {
	Caller  string `json:"caller"`
	Role    string `json:"role"`
	Account string `json:"account"`

	caller  ledger.Address
	role    ledger.Role
	account ledger.Address
}

func (r *roleRequest) Validate() error {
	var errList []error
	var err error
	if r.caller, err = parseAddress("caller", r.Caller); err != nil {
		errList = append(errList, err)
	}
	if r.role, err = ledger.NewRoleFromString(r.Role); err != nil {
		errList = append(errList, errors.Errorf("'role' is not a valid role: %q", r.Role))
	}
	if r.account, err = parseAddress("account", r.Account); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type roleResult struct {
	Role    ledger.Role    `json:"role"`
	Account ledger.Address `json:"account"`
	HasRole bool           `json:"hasRole"`
}

type roleResponse = HttpResponse[roleResult]

func (h *HttpHandler) GrantRole(ctx *fiber.Ctx) (err error) {
	var req roleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.GrantRole(req.caller, req.role, req.account); err != nil {
		return errors.Wrap(err, "error during GrantRole")
	}

	resp := roleResponse{
		Result: &roleResult{
			Role:    req.role,
			Account: req.account,
			HasRole: true,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}

func (h *HttpHandler) RevokeRole(ctx *fiber.Ctx) (err error) {
	var req roleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.RevokeRole(req.caller, req.role, req.account); err != nil {
		return errors.Wrap(err, "error during RevokeRole")
	}

	resp := roleResponse{
		Result: &roleResult{
			Role:    req.role,
			Account: req.account,
			HasRole: false,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
