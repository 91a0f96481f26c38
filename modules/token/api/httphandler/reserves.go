package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type updateReservesRequest struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`

	caller ledger.Address
	amount uint128.Uint128
}

func (r *updateReservesRequest) Validate() error {
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

func (h *HttpHandler) UpdateReserves(ctx *fiber.Ctx) (err error) {
	var req updateReservesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.UpdateReserves(req.caller, req.amount); err != nil {
		return errors.Wrap(err, "error during UpdateReserves")
	}

	return errors.WithStack(ctx.JSON(h.reservesResponse()))
}

type addReservesRequest struct {
	Caller      string `json:"caller"`
	Amount      string `json:"amount"`
	ReserveType string `json:"reserveType"`

	caller ledger.Address
	amount uint128.Uint128
}

func (r *addReservesRequest) Validate() error {
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

func (h *HttpHandler) AddReserves(ctx *fiber.Ctx) (err error) {
	var req addReservesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.AddReserves(req.caller, req.amount, req.ReserveType); err != nil {
		return errors.Wrap(err, "error during AddReserves")
	}

	return errors.WithStack(ctx.JSON(h.reservesResponse()))
}

type removeReservesRequest struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
	Reason string `json:"reason"`

	caller ledger.Address
	amount uint128.Uint128
}

func (r *removeReservesRequest) Validate() error {
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

func (h *HttpHandler) RemoveReserves(ctx *fiber.Ctx) (err error) {
	var req removeReservesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.RemoveReserves(req.caller, req.amount, req.Reason); err != nil {
		return errors.Wrap(err, "error during RemoveReserves")
	}

	return errors.WithStack(ctx.JSON(h.reservesResponse()))
}
