package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getSupplyResult struct {
	TotalSupply           amount `json:"totalSupply"`
	MaxMintPerTransaction amount `json:"maxMintPerTransaction"`
	MaxTotalSupply        amount `json:"maxTotalSupply"`
	RemainingMintCapacity amount `json:"remainingMintCapacity"`
	Paused                bool   `json:"paused"`
}

type getSupplyResponse = HttpResponse[getSupplyResult]

func (h *HttpHandler) GetSupply(ctx *fiber.Ctx) (err error) {
	supply := h.usecase.GetSupplyInfo()
	resp := getSupplyResponse{
		Result: &getSupplyResult{
			TotalSupply:           newAmount(supply.TotalSupply),
			MaxMintPerTransaction: newAmount(supply.MaxMintPerTransaction),
			MaxTotalSupply:        newAmount(supply.MaxTotalSupply),
			RemainingMintCapacity: newAmount(supply.RemainingMintCapacity),
			Paused:                h.usecase.Paused(),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}

type getPausedResult struct {
	Paused bool `json:"paused"`
}

type getPausedResponse = HttpResponse[getPausedResult]

func (h *HttpHandler) GetPaused(ctx *fiber.Ctx) (err error) {
	resp := getPausedResponse{
		Result: &getPausedResult{Paused: h.usecase.Paused()},
	}
	return errors.WithStack(ctx.JSON(resp))
}
