package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/usdm")

	r.Post("/transfer", h.Transfer)
	r.Post("/transfer-from", h.TransferFrom)
	r.Post("/approve", h.Approve)
	r.Post("/mint", h.Mint)
	r.Post("/burn", h.Burn)
	r.Post("/burn-from", h.BurnFrom)
	r.Post("/blacklist", h.Blacklist)
	r.Post("/unblacklist", h.UnBlacklist)
	r.Post("/pause", h.Pause)
	r.Post("/unpause", h.Unpause)
	r.Post("/caps/max-mint-per-tx", h.SetMaxMintPerTransaction)
	r.Post("/caps/max-total-supply", h.SetMaxTotalSupply)
	r.Post("/reserves/update", h.UpdateReserves)
	r.Post("/reserves/add", h.AddReserves)
	r.Post("/reserves/remove", h.RemoveReserves)
	r.Post("/account/batch", h.GetAccountsBatch)
	r.Post("/roles/grant", h.GrantRole)
	r.Post("/roles/revoke", h.RevokeRole)

	r.Get("/balance/:address", h.GetBalance)
	r.Get("/allowance/:owner/:spender", h.GetAllowance)
	r.Get("/supply", h.GetSupply)
	r.Get("/caps", h.GetCaps)
	r.Get("/paused", h.GetPaused)
	r.Get("/blacklist/:address", h.GetBlacklistStatus)
	r.Get("/reserves", h.GetReserves)
	r.Get("/reserves/health", h.GetReserveHealth)
	r.Get("/collateralization", h.GetCollateralization)
	r.Get("/roles/:role", h.GetRoleMembers)
	r.Get("/account/:address", h.GetAccount)
	r.Get("/events", h.GetEvents)
	return nil
}
