package ledger

import (
	"math/big"
	"time"

	"github.com/gaze-network/uint128"
)

// RatioFullyBacked is the collateralization ratio, in basis points,
// meaning exactly 100% backing.
const RatioFullyBacked = 10000

// ReserveHealth is the pure reserve-vs-supply computation. Exactly one
// of Deficit/Surplus is nonzero unless reserves equal supply, in which
// case both are zero.
type ReserveHealth struct {
	Healthy bool
	Deficit uint128.Uint128
	Surplus uint128.Uint128
}

func (l *Ledger) BalanceOf(account Address) uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account]
}

func (l *Ledger) Allowance(owner, spender Address) uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[owner][spender]
}

func (l *Ledger) TotalSupply() uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply
}

func (l *Ledger) MaxMintPerTransaction() uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.maxMintPerTransaction
}

func (l *Ledger) MaxTotalSupply() uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.maxTotalSupply
}

// RemainingMintCapacity returns how many units can still be minted
// before the total supply cap is reached.
func (l *Ledger) RemainingMintCapacity() uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.maxTotalSupply.Sub(l.totalSupply)
}

func (l *Ledger) IsBlacklisted(account Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.blacklist[account]
	return ok
}

func (l *Ledger) BlacklistReason(account Address) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blacklist[account]
}

func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused
}

func (l *Ledger) HasRole(account Address, role Role) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hasRole(account, role)
}

// RoleMembers returns the current holders of the given role, in no
// particular order.
func (l *Ledger) RoleMembers(role Role) []Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	members := make([]Address, 0, len(l.roles[role]))
	for account := range l.roles[role] {
		members = append(members, account)
	}
	return members
}

func (l *Ledger) TotalReserves() uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalReserves
}

func (l *Ledger) LastReserveUpdate() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastReserveUpdate
}

// CollateralizationRatio returns reserves*10000/supply in basis points,
// or exactly 10000 when the supply is zero (fully backed by
// convention).
func (l *Ledger) CollateralizationRatio() uint128.Uint128 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return collateralizationRatio(l.totalReserves, l.totalSupply)
}

func (l *Ledger) ReserveHealth() ReserveHealth {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.totalReserves.Cmp(l.totalSupply) >= 0 {
		return ReserveHealth{
			Healthy: true,
			Surplus: l.totalReserves.Sub(l.totalSupply),
		}
	}
	return ReserveHealth{
		Deficit: l.totalSupply.Sub(l.totalReserves),
	}
}

var ratioBig = big.NewInt(RatioFullyBacked)

func collateralizationRatio(reserves, supply uint128.Uint128) uint128.Uint128 {
	if supply.IsZero() {
		return uint128.From64(RatioFullyBacked)
	}
	scaled, overflow := reserves.MulOverflow(uint128.From64(RatioFullyBacked))
	if !overflow {
		return scaled.Div(supply)
	}
	// reserves*10000 exceeds 128 bits; fall back to big.Int and saturate
	ratio := new(big.Int).Mul(reserves.Big(), ratioBig)
	ratio.Div(ratio, supply.Big())
	if ratio.Cmp(uint128.Max.Big()) > 0 {
		return uint128.Max
	}
	// cannot fail: ratio was just clamped to uint128.Max
	saturated, _ := uint128.FromBig(ratio)
	return saturated
}
