package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/common/errs"
)

// Role is a named permission class. Holding a role authorizes a disjoint
// subset of privileged operations; no role is self-sufficient for every
// action.
type Role string

const (
	// RoleDefaultAdmin may grant and revoke any role, including itself.
	RoleDefaultAdmin Role = "DEFAULT_ADMIN"
	// RoleAdmin administers the supply-cap parameters.
	RoleAdmin Role = "ADMIN"
	// RoleMinter may mint and burn-from.
	RoleMinter Role = "MINTER"
	// RoleBlacklister administers the compliance blacklist.
	RoleBlacklister Role = "BLACKLISTER"
	// RolePauser toggles the mint pause flag.
	RolePauser Role = "PAUSER"
	// RoleReserveManager administers the reserve attestation record.
	RoleReserveManager Role = "RESERVE_MANAGER"
)

var allRoles = map[Role]struct{}{
	RoleDefaultAdmin:   {},
	RoleAdmin:          {},
	RoleMinter:         {},
	RoleBlacklister:    {},
	RolePauser:         {},
	RoleReserveManager: {},
}

// NewRoleFromString parses a role identifier. Returns errs.Unsupported
// for unknown identifiers.
func NewRoleFromString(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", errors.Wrapf(errs.Unsupported, "unknown role %q", s)
	}
	return role, nil
}

func (r Role) IsValid() bool {
	_, ok := allRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
