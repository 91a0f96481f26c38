package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
	"github.com/usdm-network/ledger-node/pkg/decimals"
)

type reserveHealthResult struct {
	Healthy bool   `json:"healthy"`
	Deficit amount `json:"deficit"`
	Surplus amount `json:"surplus"`
}

type getReservesResult struct {
	TotalReserves     amount              `json:"totalReserves"`
	TotalSupply       amount              `json:"totalSupply"`
	Ratio             uint128.Uint128     `json:"ratio"` // basis points, 10000 = fully backed
	Health            reserveHealthResult `json:"health"`
	LastReserveUpdate time.Time           `json:"lastReserveUpdate"`
}

type getReservesResponse = HttpResponse[getReservesResult]

func (h *HttpHandler) reservesResponse() getReservesResponse {
	info := h.usecase.GetReserveInfo()
	return getReservesResponse{
		Result: &getReservesResult{
			TotalReserves: newAmount(info.TotalReserves),
			TotalSupply:   newAmount(info.TotalSupply),
			Ratio:         info.Ratio,
			Health: reserveHealthResult{
				Healthy: info.Health.Healthy,
				Deficit: newAmount(info.Health.Deficit),
				Surplus: newAmount(info.Health.Surplus),
			},
			LastReserveUpdate: info.LastReserveUpdate,
		},
	}
}

func (h *HttpHandler) GetReserves(ctx *fiber.Ctx) (err error) {
	return errors.WithStack(ctx.JSON(h.reservesResponse()))
}

type getReserveHealthResponse = HttpResponse[reserveHealthResult]

func (h *HttpHandler) GetReserveHealth(ctx *fiber.Ctx) (err error) {
	info := h.usecase.GetReserveInfo()
	resp := getReserveHealthResponse{
		Result: &reserveHealthResult{
			Healthy: info.Health.Healthy,
			Deficit: newAmount(info.Health.Deficit),
			Surplus: newAmount(info.Health.Surplus),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}

type getCollateralizationResult struct {
	Ratio        uint128.Uint128 `json:"ratio"` // basis points
	FullyBacked  bool            `json:"fullyBacked"`
	RatioPercent string          `json:"ratioPercent"`
}

type getCollateralizationResponse = HttpResponse[getCollateralizationResult]

func (h *HttpHandler) GetCollateralization(ctx *fiber.Ctx) (err error) {
	info := h.usecase.GetReserveInfo()
	resp := getCollateralizationResponse{
		Result: &getCollateralizationResult{
			Ratio:        info.Ratio,
			FullyBacked:  info.Ratio.Cmp64(ledger.RatioFullyBacked) >= 0,
			RatioPercent: decimals.ToDecimal(info.Ratio, 2).StringFixed(2),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
