package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func (u *Usecase) GrantRole(caller ledger.Address, role ledger.Role, account ledger.Address) error {
	if err := u.ledger.GrantRole(caller, role, account); err != nil {
		return errors.Wrap(err, "error during GrantRole")
	}
	return nil
}

func (u *Usecase) RevokeRole(caller ledger.Address, role ledger.Role, account ledger.Address) error {
	if err := u.ledger.RevokeRole(caller, role, account); err != nil {
		return errors.Wrap(err, "error during RevokeRole")
	}
	return nil
}

func (u *Usecase) HasRole(account ledger.Address, role ledger.Role) bool {
	return u.ledger.HasRole(account, role)
}

func (u *Usecase) GetRoleMembers(role ledger.Role) []ledger.Address {
	return u.ledger.RoleMembers(role)
}

// GetAccountRoles lists the roles held by one account.
func (u *Usecase) GetAccountRoles(account ledger.Address) []ledger.Role {
	var roles []ledger.Role
	for _, role := range []ledger.Role{
		ledger.RoleDefaultAdmin,
		ledger.RoleAdmin,
		ledger.RoleMinter,
		ledger.RoleBlacklister,
		ledger.RolePauser,
		ledger.RoleReserveManager,
	} {
		if u.ledger.HasRole(account, role) {
			roles = append(roles, role)
		}
	}
	return roles
}
