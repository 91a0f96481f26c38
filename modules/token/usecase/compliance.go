package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func (u *Usecase) Blacklist(caller, account ledger.Address, reason string) error {
	if err := u.ledger.Blacklist(caller, account, reason); err != nil {
		return errors.Wrap(err, "error during Blacklist")
	}
	return nil
}

func (u *Usecase) UnBlacklist(caller, account ledger.Address) error {
	if err := u.ledger.UnBlacklist(caller, account); err != nil {
		return errors.Wrap(err, "error during UnBlacklist")
	}
	return nil
}

func (u *Usecase) Pause(caller ledger.Address) error {
	if err := u.ledger.Pause(caller); err != nil {
		return errors.Wrap(err, "error during Pause")
	}
	return nil
}

func (u *Usecase) Unpause(caller ledger.Address) error {
	if err := u.ledger.Unpause(caller); err != nil {
		return errors.Wrap(err, "error during Unpause")
	}
	return nil
}

// ComplianceStatus reports the blacklist standing of one account.
type ComplianceStatus struct {
	Blacklisted bool
	Reason      string
}

func (u *Usecase) GetComplianceStatus(account ledger.Address) ComplianceStatus {
	return ComplianceStatus{
		Blacklisted: u.ledger.IsBlacklisted(account),
		Reason:      u.ledger.BlacklistReason(account),
	}
}

func (u *Usecase) Paused() bool {
	return u.ledger.Paused()
}
