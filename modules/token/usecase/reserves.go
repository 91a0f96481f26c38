package usecase

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func (u *Usecase) UpdateReserves(caller ledger.Address, newAmount uint128.Uint128) error {
	if err := u.ledger.UpdateReserves(caller, newAmount); err != nil {
		return errors.Wrap(err, "error during UpdateReserves")
	}
	return nil
}

func (u *Usecase) AddReserves(caller ledger.Address, amount uint128.Uint128, reserveType string) error {
	if err := u.ledger.AddReserves(caller, amount, reserveType); err != nil {
		return errors.Wrap(err, "error during AddReserves")
	}
	return nil
}

func (u *Usecase) RemoveReserves(caller ledger.Address, amount uint128.Uint128, reason string) error {
	if err := u.ledger.RemoveReserves(caller, amount, reason); err != nil {
		return errors.Wrap(err, "error during RemoveReserves")
	}
	return nil
}

// ReserveInfo is the attestation view: reserve total, supply, the
// collateralization ratio in basis points, and backing health.
type ReserveInfo struct {
	TotalReserves     uint128.Uint128
	TotalSupply       uint128.Uint128
	Ratio             uint128.Uint128
	Health            ledger.ReserveHealth
	LastReserveUpdate time.Time
}

func (u *Usecase) GetReserveInfo() ReserveInfo {
	return ReserveInfo{
		TotalReserves:     u.ledger.TotalReserves(),
		TotalSupply:       u.ledger.TotalSupply(),
		Ratio:             u.ledger.CollateralizationRatio(),
		Health:            u.ledger.ReserveHealth(),
		LastReserveUpdate: u.ledger.LastReserveUpdate(),
	}
}
