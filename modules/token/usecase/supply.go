package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func (u *Usecase) Mint(caller, to ledger.Address, amount uint128.Uint128) error {
	if err := u.ledger.Mint(caller, to, amount); err != nil {
		return errors.Wrap(err, "error during Mint")
	}
	return nil
}

func (u *Usecase) Burn(caller ledger.Address, amount uint128.Uint128) error {
	if err := u.ledger.Burn(caller, amount); err != nil {
		return errors.Wrap(err, "error during Burn")
	}
	return nil
}

func (u *Usecase) BurnFrom(caller, from ledger.Address, amount uint128.Uint128) error {
	if err := u.ledger.BurnFrom(caller, from, amount); err != nil {
		return errors.Wrap(err, "error during BurnFrom")
	}
	return nil
}

func (u *Usecase) SetMaxMintPerTransaction(caller ledger.Address, newLimit uint128.Uint128) error {
	if err := u.ledger.SetMaxMintPerTransaction(caller, newLimit); err != nil {
		return errors.Wrap(err, "error during SetMaxMintPerTransaction")
	}
	return nil
}

func (u *Usecase) SetMaxTotalSupply(caller ledger.Address, newLimit uint128.Uint128) error {
	if err := u.ledger.SetMaxTotalSupply(caller, newLimit); err != nil {
		return errors.Wrap(err, "error during SetMaxTotalSupply")
	}
	return nil
}

// SupplyInfo bundles the supply figures and caps for status reporting.
type SupplyInfo struct {
	TotalSupply           uint128.Uint128
	MaxMintPerTransaction uint128.Uint128
	MaxTotalSupply        uint128.Uint128
	RemainingMintCapacity uint128.Uint128
}

func (u *Usecase) GetSupplyInfo() SupplyInfo {
	return SupplyInfo{
		TotalSupply:           u.ledger.TotalSupply(),
		MaxMintPerTransaction: u.ledger.MaxMintPerTransaction(),
		MaxTotalSupply:        u.ledger.MaxTotalSupply(),
		RemainingMintCapacity: u.ledger.RemainingMintCapacity(),
	}
}
