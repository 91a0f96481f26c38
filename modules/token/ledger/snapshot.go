package ledger

import (
	"bytes"
	"cmp"
	"slices"
	"time"

	"github.com/gaze-network/uint128"
)

// Snapshot is a point-in-time copy of the full ledger state, taken after
// the event with the recorded sequence number was applied. Restoring a
// snapshot and applying the journal events after its sequence reproduces
// the live state without replaying from genesis.
//
// Record slices are sorted so that equal states serialize identically.
type Snapshot struct {
	Sequence              uint64            `json:"sequence"`
	TotalSupply           uint128.Uint128   `json:"totalSupply"`
	MaxMintPerTransaction uint128.Uint128   `json:"maxMintPerTransaction"`
	MaxTotalSupply        uint128.Uint128   `json:"maxTotalSupply"`
	TotalReserves         uint128.Uint128   `json:"totalReserves"`
	LastReserveUpdate     time.Time         `json:"lastReserveUpdate"`
	Paused                bool              `json:"paused"`
	Balances              []BalanceRecord   `json:"balances"`
	Allowances            []AllowanceRecord `json:"allowances"`
	Roles                 []RoleRecord      `json:"roles"`
	Blacklist             []BlacklistRecord `json:"blacklist"`
}

type BalanceRecord struct {
	Account Address         `json:"account"`
	Amount  uint128.Uint128 `json:"amount"`
}

type AllowanceRecord struct {
	Owner   Address         `json:"owner"`
	Spender Address         `json:"spender"`
	Amount  uint128.Uint128 `json:"amount"`
}

type RoleRecord struct {
	Role    Role    `json:"role"`
	Account Address `json:"account"`
}

type BlacklistRecord struct {
	Account Address `json:"account"`
	Reason  string  `json:"reason"`
}

// Snapshot copies the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := Snapshot{
		Sequence:              l.seq,
		TotalSupply:           l.totalSupply,
		MaxMintPerTransaction: l.maxMintPerTransaction,
		MaxTotalSupply:        l.maxTotalSupply,
		TotalReserves:         l.totalReserves,
		LastReserveUpdate:     l.lastReserveUpdate,
		Paused:                l.paused,
	}
	for account, amount := range l.balances {
		snapshot.Balances = append(snapshot.Balances, BalanceRecord{Account: account, Amount: amount})
	}
	slices.SortFunc(snapshot.Balances, func(a, b BalanceRecord) int {
		return bytes.Compare(a.Account[:], b.Account[:])
	})
	for owner, spenders := range l.allowances {
		for spender, amount := range spenders {
			snapshot.Allowances = append(snapshot.Allowances, AllowanceRecord{Owner: owner, Spender: spender, Amount: amount})
		}
	}
	slices.SortFunc(snapshot.Allowances, func(a, b AllowanceRecord) int {
		if c := bytes.Compare(a.Owner[:], b.Owner[:]); c != 0 {
			return c
		}
		return bytes.Compare(a.Spender[:], b.Spender[:])
	})
	for role, members := range l.roles {
		for account := range members {
			snapshot.Roles = append(snapshot.Roles, RoleRecord{Role: role, Account: account})
		}
	}
	slices.SortFunc(snapshot.Roles, func(a, b RoleRecord) int {
		if c := cmp.Compare(a.Role, b.Role); c != 0 {
			return c
		}
		return bytes.Compare(a.Account[:], b.Account[:])
	})
	for account, reason := range l.blacklist {
		snapshot.Blacklist = append(snapshot.Blacklist, BlacklistRecord{Account: account, Reason: reason})
	}
	slices.SortFunc(snapshot.Blacklist, func(a, b BlacklistRecord) int {
		return bytes.Compare(a.Account[:], b.Account[:])
	})
	return snapshot
}

// FromSnapshot restores a ledger from a snapshot. Events applied after
// restore continue the sequence numbering from the snapshot.
func FromSnapshot(snapshot Snapshot, sink EventSink, now func() time.Time) *Ledger {
	if sink == nil {
		sink = NopSink{}
	}
	if now == nil {
		now = utcNow
	}
	l := &Ledger{
		balances:              make(map[Address]uint128.Uint128, len(snapshot.Balances)),
		allowances:            make(map[Address]map[Address]uint128.Uint128),
		roles:                 make(map[Role]map[Address]struct{}),
		blacklist:             make(map[Address]string, len(snapshot.Blacklist)),
		totalSupply:           snapshot.TotalSupply,
		maxMintPerTransaction: snapshot.MaxMintPerTransaction,
		maxTotalSupply:        snapshot.MaxTotalSupply,
		totalReserves:         snapshot.TotalReserves,
		lastReserveUpdate:     snapshot.LastReserveUpdate,
		paused:                snapshot.Paused,
		seq:                   snapshot.Sequence,
		sink:                  sink,
		now:                   now,
	}
	for _, record := range snapshot.Balances {
		l.balances[record.Account] = record.Amount
	}
	for _, record := range snapshot.Allowances {
		spenders, ok := l.allowances[record.Owner]
		if !ok {
			spenders = make(map[Address]uint128.Uint128)
			l.allowances[record.Owner] = spenders
		}
		spenders[record.Spender] = record.Amount
	}
	for _, record := range snapshot.Roles {
		members, ok := l.roles[record.Role]
		if !ok {
			members = make(map[Address]struct{})
			l.roles[record.Role] = members
		}
		members[record.Account] = struct{}{}
	}
	for _, record := range snapshot.Blacklist {
		l.blacklist[record.Account] = record.Reason
	}
	return l
}
