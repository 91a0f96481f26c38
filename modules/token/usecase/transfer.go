package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func (u *Usecase) Transfer(caller, to ledger.Address, amount uint128.Uint128) error {
	if err := u.ledger.Transfer(caller, to, amount); err != nil {
		return errors.Wrap(err, "error during Transfer")
	}
	return nil
}

func (u *Usecase) Approve(caller, spender ledger.Address, amount uint128.Uint128) error {
	if err := u.ledger.Approve(caller, spender, amount); err != nil {
		return errors.Wrap(err, "error during Approve")
	}
	return nil
}

func (u *Usecase) TransferFrom(caller, from, to ledger.Address, amount uint128.Uint128) error {
	if err := u.ledger.TransferFrom(caller, from, to, amount); err != nil {
		return errors.Wrap(err, "error during TransferFrom")
	}
	return nil
}

func (u *Usecase) BalanceOf(account ledger.Address) uint128.Uint128 {
	return u.ledger.BalanceOf(account)
}

func (u *Usecase) Allowance(owner, spender ledger.Address) uint128.Uint128 {
	return u.ledger.Allowance(owner, spender)
}
