package ledger

import (
	"github.com/usdm-network/ledger-node/common/errs"
)

// Ledger error kinds. Every failed operation wraps one of these with the
// offending values, so callers can match the kind with errors.Is and
// surface a precise message.
var (
	ErrZeroAddress           = errs.ErrorKind("account address must not be the zero address")
	ErrZeroAmount            = errs.ErrorKind("amount must be greater than zero")
	ErrMintPaused            = errs.ErrorKind("minting is paused")
	ErrAlreadyPaused         = errs.ErrorKind("contract is already paused")
	ErrNotPaused             = errs.ErrorKind("contract is not paused")
	ErrBlacklisted           = errs.ErrorKind("account is blacklisted")
	ErrMintCapExceeded       = errs.ErrorKind("amount exceeds max mint per transaction")
	ErrSupplyCapExceeded     = errs.ErrorKind("mint would exceed max total supply")
	ErrSupplyCapBelowSupply  = errs.ErrorKind("max total supply must not be below current total supply")
	ErrSameValue             = errs.ErrorKind("new limit equals current limit")
	ErrInsufficientBalance   = errs.ErrorKind("insufficient balance")
	ErrInsufficientAllowance = errs.ErrorKind("insufficient allowance")
	ErrInsufficientReserves  = errs.ErrorKind("insufficient reserves")
	ErrTooManyRoleHolders    = errs.ErrorKind("too many initial role holders")
)
