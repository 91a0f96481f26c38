package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type getRoleMembersRequest struct {
	Role string `params:"role"`

	role ledger.Role
}

func (r *getRoleMembersRequest) Validate() error {
	var err error
	if r.role, err = ledger.NewRoleFromString(r.Role); err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}
	return nil
}

type getRoleMembersResult struct {
	Role    ledger.Role      `json:"role"`
	Members []ledger.Address `json:"members"`
}

type getRoleMembersResponse = HttpResponse[getRoleMembersResult]

func (h *HttpHandler) GetRoleMembers(ctx *fiber.Ctx) (err error) {
	var req getRoleMembersRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	resp := getRoleMembersResponse{
		Result: &getRoleMembersResult{
			Role:    req.role,
			Members: h.usecase.GetRoleMembers(req.role),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
