package ledger

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/usdm-network/ledger-node/common/errs"
)

const (
	// Decimals is the number of implied fractional digits per nominal unit.
	Decimals = 6

	// MaxInitialRoleHolders bounds each role-holder array accepted at
	// construction time. Later GrantRole calls are not bounded.
	MaxInitialRoleHolders = 10
)

// Default genesis parameters, in ledger units (10^-6 nominal units).
var (
	DefaultInitialSupply         = uint128.From64(10_000_000_000_000)    // 10,000,000 USDM
	DefaultMaxMintPerTransaction = uint128.From64(10_000_000_000_000)    // 10,000,000 USDM
	DefaultMaxTotalSupply        = uint128.From64(1_000_000_000_000_000) // 1,000,000,000 USDM
)

// GenesisConfig is the construction-time interface of the ledger.
//
// The master controller receives the DEFAULT_ADMIN and ADMIN roles plus
// the entire initial supply. The four role-holder arrays fill the
// MINTER, BLACKLISTER, PAUSER and RESERVE_MANAGER roles; each array is
// capped at MaxInitialRoleHolders entries and each entry must be
// nonzero.
type GenesisConfig struct {
	MasterController Address
	Minters          []Address
	Blacklisters     []Address
	Pausers          []Address
	ReserveManagers  []Address

	// Zero values fall back to the package defaults.
	InitialSupply         uint128.Uint128
	MaxMintPerTransaction uint128.Uint128
	MaxTotalSupply        uint128.Uint128

	// Sink receives every emitted event. Defaults to NopSink.
	Sink EventSink

	// Now is the ledger clock. Defaults to time.Now.
	Now func() time.Time
}

// Ledger is the USDM token state machine: a conserved balance ledger
// with role-gated issuance, a compliance blacklist, supply caps, a mint
// pause flag and a self-reported reserve attestation record.
//
// All state is owned exclusively by the Ledger. A single write lock
// serializes every state-changing call, reproducing the host-chain
// guarantee that each call commits atomically before the next begins.
// Validation always completes before the first mutation, and no
// external call is made while the lock is held.
type Ledger struct {
	mu sync.RWMutex

	balances   map[Address]uint128.Uint128
	allowances map[Address]map[Address]uint128.Uint128
	roles      map[Role]map[Address]struct{}
	blacklist  map[Address]string // presence = flagged, value = reason

	totalSupply           uint128.Uint128
	maxMintPerTransaction uint128.Uint128
	maxTotalSupply        uint128.Uint128

	totalReserves     uint128.Uint128
	lastReserveUpdate time.Time

	paused bool

	seq  uint64
	sink EventSink
	now  func() time.Time
}

// New constructs the ledger, mints the initial supply to the master
// controller and initializes the reserve attestation record to match.
func New(genesis GenesisConfig) (*Ledger, error) {
	if genesis.MasterController.IsZero() {
		return nil, errors.Wrap(ErrZeroAddress, "master controller")
	}

	initialSupply := genesis.InitialSupply
	if initialSupply.IsZero() {
		initialSupply = DefaultInitialSupply
	}
	maxMintPerTx := genesis.MaxMintPerTransaction
	if maxMintPerTx.IsZero() {
		maxMintPerTx = DefaultMaxMintPerTransaction
	}
	maxTotalSupply := genesis.MaxTotalSupply
	if maxTotalSupply.IsZero() {
		maxTotalSupply = DefaultMaxTotalSupply
	}
	if maxTotalSupply.Cmp(initialSupply) < 0 {
		return nil, errors.Wrapf(ErrSupplyCapBelowSupply, "max total supply %s, initial supply %s", maxTotalSupply, initialSupply)
	}

	sink := genesis.Sink
	if sink == nil {
		sink = NopSink{}
	}
	now := genesis.Now
	if now == nil {
		now = utcNow
	}

	l := &Ledger{
		balances:              make(map[Address]uint128.Uint128),
		allowances:            make(map[Address]map[Address]uint128.Uint128),
		roles:                 make(map[Role]map[Address]struct{}),
		blacklist:             make(map[Address]string),
		maxMintPerTransaction: maxMintPerTx,
		maxTotalSupply:        maxTotalSupply,
		sink:                  sink,
		now:                   now,
	}

	l.grantRole(genesis.MasterController, RoleDefaultAdmin, genesis.MasterController)
	l.grantRole(genesis.MasterController, RoleAdmin, genesis.MasterController)
	for _, holders := range []struct {
		role     Role
		accounts []Address
	}{
		{RoleMinter, genesis.Minters},
		{RoleBlacklister, genesis.Blacklisters},
		{RolePauser, genesis.Pausers},
		{RoleReserveManager, genesis.ReserveManagers},
	} {
		if len(holders.accounts) > MaxInitialRoleHolders {
			return nil, errors.Wrapf(ErrTooManyRoleHolders, "role %s: got %d, max %d", holders.role, len(holders.accounts), MaxInitialRoleHolders)
		}
		for _, account := range holders.accounts {
			if account.IsZero() {
				return nil, errors.Wrapf(ErrZeroAddress, "initial %s holder", holders.role)
			}
			l.grantRole(genesis.MasterController, holders.role, account)
		}
	}

	// journal the genesis caps so replay reproduces them
	l.emit(EventMaxMintPerTransactionUpdated{Admin: genesis.MasterController, NewLimit: maxMintPerTx})
	l.emit(EventMaxTotalSupplyUpdated{Admin: genesis.MasterController, NewLimit: maxTotalSupply})

	// initial mint
	l.credit(genesis.MasterController, initialSupply)
	l.totalSupply = initialSupply
	l.emit(EventTransfer{From: ZeroAddress, To: genesis.MasterController, Amount: initialSupply})
	l.emit(EventMint{Minter: genesis.MasterController, To: genesis.MasterController, Amount: initialSupply})

	// reserves start fully backed
	l.totalReserves = initialSupply
	l.lastReserveUpdate = l.now()
	l.emit(EventReservesUpdated{
		Manager:       genesis.MasterController,
		TotalReserves: l.totalReserves,
		TotalSupply:   l.totalSupply,
		Ratio:         collateralizationRatio(l.totalReserves, l.totalSupply),
	})

	return l, nil
}

// utcNow is the default ledger clock. Timestamps round-trip through the
// JSON-encoded journal and snapshots, which decode in UTC, so the live
// clock must stamp UTC for persisted and live state to agree.
func utcNow() time.Time {
	return time.Now().UTC()
}

// emit assigns the next sequence number and publishes the event. Must be
// called with the write lock held.
func (l *Ledger) emit(event Event) {
	l.seq++
	l.sink.Publish(Envelope{
		Sequence:  l.seq,
		Timestamp: l.now(),
		Event:     event,
	})
}

func (l *Ledger) hasRole(account Address, role Role) bool {
	_, ok := l.roles[role][account]
	return ok
}

func (l *Ledger) requireRole(caller Address, role Role) error {
	if !l.hasRole(caller, role) {
		return errors.Wrapf(errs.Unauthorized, "caller %s is missing role %s", caller, role)
	}
	return nil
}

// checkCompliance is the single blacklist interception point consulted
// by every balance-changing operation. A mint credit (from is the zero
// sentinel) blocks only on a blacklisted receiver; a burn debit (to is
// the zero sentinel) is exempt entirely; an ordinary transfer blocks on
// either party.
func (l *Ledger) checkCompliance(from, to Address) error {
	switch {
	case to.IsZero():
		return nil
	case from.IsZero():
		if _, ok := l.blacklist[to]; ok {
			return errors.Wrapf(ErrBlacklisted, "mint recipient %s", to)
		}
		return nil
	default:
		if _, ok := l.blacklist[from]; ok {
			return errors.Wrapf(ErrBlacklisted, "sender %s", from)
		}
		if _, ok := l.blacklist[to]; ok {
			return errors.Wrapf(ErrBlacklisted, "receiver %s", to)
		}
		return nil
	}
}

func (l *Ledger) credit(account Address, amount uint128.Uint128) {
	l.balances[account] = l.balances[account].Add(amount)
}

func (l *Ledger) debit(account Address, amount uint128.Uint128) {
	remaining := l.balances[account].Sub(amount)
	if remaining.IsZero() {
		delete(l.balances, account)
		return
	}
	l.balances[account] = remaining
}

// move applies a checked balance movement between the two accounts and
// emits the Transfer event. Compliance and balance sufficiency must
// already have been validated by the caller; move only mutates.
func (l *Ledger) move(from, to Address, amount uint128.Uint128) {
	if !from.IsZero() {
		l.debit(from, amount)
	}
	if !to.IsZero() {
		l.credit(to, amount)
	}
	l.emit(EventTransfer{From: from, To: to, Amount: amount})
}

func (l *Ledger) checkBalance(account Address, amount uint128.Uint128) error {
	balance := l.balances[account]
	if balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "account %s has %s, required %s", account, balance, amount)
	}
	return nil
}

// Transfer moves amount from the caller to account `to`. Never gated by
// the pause flag; both parties must be clear of the blacklist.
func (l *Ledger) Transfer(caller, to Address, amount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsZero() || to.IsZero() {
		return errors.Wrap(ErrZeroAddress, "transfer")
	}
	if err := l.checkCompliance(caller, to); err != nil {
		return errors.WithStack(err)
	}
	if err := l.checkBalance(caller, amount); err != nil {
		return errors.WithStack(err)
	}
	l.move(caller, to, amount)
	return nil
}

// Approve sets the caller's allowance for spender to the given absolute
// amount. An allowance of uint128.Max is the infinite-allowance sentinel
// and is never decremented by TransferFrom or BurnFrom.
func (l *Ledger) Approve(caller, spender Address, amount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsZero() || spender.IsZero() {
		return errors.Wrap(ErrZeroAddress, "approve")
	}
	l.setAllowance(caller, spender, amount)
	return nil
}

// setAllowance writes the allowance and emits the Approval event. Must
// be called with the write lock held.
func (l *Ledger) setAllowance(owner, spender Address, amount uint128.Uint128) {
	spenders, ok := l.allowances[owner]
	if !ok {
		spenders = make(map[Address]uint128.Uint128)
		l.allowances[owner] = spenders
	}
	if amount.IsZero() {
		delete(spenders, spender)
	} else {
		spenders[spender] = amount
	}
	l.emit(EventApproval{Owner: owner, Spender: spender, Amount: amount})
}

// spendAllowance validates and decrements spender's allowance from
// owner. The infinite-allowance sentinel is exempt from the decrement.
// The decrement emits an Approval event with the remaining allowance so
// the journal replays to identical state.
func (l *Ledger) spendAllowance(owner, spender Address, amount uint128.Uint128) error {
	allowance := l.allowances[owner][spender]
	if allowance == uint128.Max {
		return nil
	}
	if allowance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientAllowance, "spender %s has allowance %s from %s, required %s", spender, allowance, owner, amount)
	}
	l.setAllowance(owner, spender, allowance.Sub(amount))
	return nil
}

// TransferFrom moves amount from `from` to `to` on the strength of the
// caller's allowance. Never gated by the pause flag.
func (l *Ledger) TransferFrom(caller, from, to Address, amount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsZero() || from.IsZero() || to.IsZero() {
		return errors.Wrap(ErrZeroAddress, "transferFrom")
	}
	if err := l.checkCompliance(from, to); err != nil {
		return errors.WithStack(err)
	}
	if err := l.checkBalance(from, amount); err != nil {
		return errors.WithStack(err)
	}
	if err := l.spendAllowance(from, caller, amount); err != nil {
		return errors.WithStack(err)
	}
	l.move(from, to, amount)
	return nil
}

// Mint issues amount new units to account `to`. Requires the MINTER
// role, an unpaused contract, a clear recipient and both supply caps.
func (l *Ledger) Mint(caller, to Address, amount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleMinter); err != nil {
		return errors.WithStack(err)
	}
	if l.paused {
		return errors.Wrap(ErrMintPaused, "mint")
	}
	if to.IsZero() {
		return errors.Wrap(ErrZeroAddress, "mint recipient")
	}
	if amount.IsZero() {
		return errors.Wrap(ErrZeroAmount, "mint")
	}
	if amount.Cmp(l.maxMintPerTransaction) > 0 {
		return errors.Wrapf(ErrMintCapExceeded, "requested %s, max %s", amount, l.maxMintPerTransaction)
	}
	newSupply, overflow := l.totalSupply.AddOverflow(amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint128, "total supply")
	}
	if newSupply.Cmp(l.maxTotalSupply) > 0 {
		return errors.Wrapf(ErrSupplyCapExceeded, "resulting supply %s, max %s", newSupply, l.maxTotalSupply)
	}
	if err := l.checkCompliance(ZeroAddress, to); err != nil {
		return errors.WithStack(err)
	}

	l.totalSupply = newSupply
	l.move(ZeroAddress, to, amount)
	l.emit(EventMint{Minter: caller, To: to, Amount: amount})
	return nil
}

// BurnFrom destroys amount units held by `from`, spending the caller's
// allowance. Requires the MINTER role. Deliberately not gated by the
// pause flag or the blacklist: compliance seizures and redemptions must
// stay available in every pause state, including against blacklisted
// holdings.
func (l *Ledger) BurnFrom(caller, from Address, amount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleMinter); err != nil {
		return errors.WithStack(err)
	}
	if from.IsZero() {
		return errors.Wrap(ErrZeroAddress, "burn source")
	}
	if amount.IsZero() {
		return errors.Wrap(ErrZeroAmount, "burnFrom")
	}
	if err := l.checkBalance(from, amount); err != nil {
		return errors.WithStack(err)
	}
	if err := l.spendAllowance(from, caller, amount); err != nil {
		return errors.WithStack(err)
	}

	l.totalSupply = l.totalSupply.Sub(amount)
	l.move(from, ZeroAddress, amount)
	l.emit(EventBurn{Burner: caller, From: from, Amount: amount})
	return nil
}

// Burn destroys amount units of the caller's own balance. Requires no
// role and ignores both the pause flag and the blacklist: holders must
// always be able to destroy their own balance.
func (l *Ledger) Burn(caller Address, amount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsZero() {
		return errors.Wrap(ErrZeroAddress, "burn")
	}
	if err := l.checkBalance(caller, amount); err != nil {
		return errors.WithStack(err)
	}

	l.totalSupply = l.totalSupply.Sub(amount)
	l.move(caller, ZeroAddress, amount)
	l.emit(EventBurn{Burner: caller, From: caller, Amount: amount})
	return nil
}

// Blacklist flags an account. Re-blacklisting simply overwrites the
// stored reason; this family of setters is deliberately idempotent,
// unlike the cap setters.
func (l *Ledger) Blacklist(caller, account Address, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleBlacklister); err != nil {
		return errors.WithStack(err)
	}
	if account.IsZero() {
		return errors.Wrap(ErrZeroAddress, "blacklist")
	}
	l.blacklist[account] = reason
	l.emit(EventBlacklisted{Blacklister: caller, Account: account, Reason: reason})
	return nil
}

// UnBlacklist clears an account's flag and stored reason. Clearing an
// account that is not flagged is a no-op write, not an error.
func (l *Ledger) UnBlacklist(caller, account Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleBlacklister); err != nil {
		return errors.WithStack(err)
	}
	if account.IsZero() {
		return errors.Wrap(ErrZeroAddress, "unBlacklist")
	}
	delete(l.blacklist, account)
	l.emit(EventUnBlacklisted{Blacklister: caller, Account: account})
	return nil
}

// Pause halts minting. Every other operation is unaffected.
func (l *Ledger) Pause(caller Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RolePauser); err != nil {
		return errors.WithStack(err)
	}
	if l.paused {
		return errors.Wrap(ErrAlreadyPaused, "pause")
	}
	l.paused = true
	l.emit(EventPaused{Pauser: caller})
	return nil
}

// Unpause resumes minting.
func (l *Ledger) Unpause(caller Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RolePauser); err != nil {
		return errors.WithStack(err)
	}
	if !l.paused {
		return errors.Wrap(ErrNotPaused, "unpause")
	}
	l.paused = false
	l.emit(EventUnpaused{Pauser: caller})
	return nil
}

// SetMaxMintPerTransaction replaces the per-operation mint cap.
// Same-value submissions are rejected as a gas-waste guard.
func (l *Ledger) SetMaxMintPerTransaction(caller Address, newLimit uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleAdmin); err != nil {
		return errors.WithStack(err)
	}
	if newLimit.IsZero() {
		return errors.Wrap(ErrZeroAmount, "max mint per transaction")
	}
	if newLimit == l.maxMintPerTransaction {
		return errors.Wrapf(ErrSameValue, "max mint per transaction is already %s", newLimit)
	}
	old := l.maxMintPerTransaction
	l.maxMintPerTransaction = newLimit
	l.emit(EventMaxMintPerTransactionUpdated{Admin: caller, OldLimit: old, NewLimit: newLimit})
	return nil
}

// SetMaxTotalSupply replaces the total supply cap. The proposal must be
// at least the current total supply (boundary inclusive) and must
// differ from the current cap.
func (l *Ledger) SetMaxTotalSupply(caller Address, newLimit uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleAdmin); err != nil {
		return errors.WithStack(err)
	}
	if newLimit.Cmp(l.totalSupply) < 0 {
		return errors.Wrapf(ErrSupplyCapBelowSupply, "proposed %s, current supply %s", newLimit, l.totalSupply)
	}
	if newLimit == l.maxTotalSupply {
		return errors.Wrapf(ErrSameValue, "max total supply is already %s", newLimit)
	}
	old := l.maxTotalSupply
	l.maxTotalSupply = newLimit
	l.emit(EventMaxTotalSupplyUpdated{Admin: caller, OldLimit: old, NewLimit: newLimit})
	return nil
}

// UpdateReserves overwrites the attested reserve figure unconditionally.
// The figure is self-reported; no validation ties it to the previous
// value.
func (l *Ledger) UpdateReserves(caller Address, newAmount uint128.Uint128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleReserveManager); err != nil {
		return errors.WithStack(err)
	}
	l.totalReserves = newAmount
	l.lastReserveUpdate = l.now()
	l.emitReservesUpdated(caller)
	return nil
}

// AddReserves increases the attested reserve figure.
func (l *Ledger) AddReserves(caller Address, amount uint128.Uint128, reserveType string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleReserveManager); err != nil {
		return errors.WithStack(err)
	}
	if amount.IsZero() {
		return errors.Wrap(ErrZeroAmount, "addReserves")
	}
	newReserves, overflow := l.totalReserves.AddOverflow(amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint128, "total reserves")
	}
	l.totalReserves = newReserves
	l.lastReserveUpdate = l.now()
	l.emit(EventReservesAdded{Manager: caller, Amount: amount, ReserveType: reserveType})
	l.emitReservesUpdated(caller)
	return nil
}

// RemoveReserves decreases the attested reserve figure.
func (l *Ledger) RemoveReserves(caller Address, amount uint128.Uint128, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleReserveManager); err != nil {
		return errors.WithStack(err)
	}
	if amount.IsZero() {
		return errors.Wrap(ErrZeroAmount, "removeReserves")
	}
	if amount.Cmp(l.totalReserves) > 0 {
		return errors.Wrapf(ErrInsufficientReserves, "required %s, available %s", amount, l.totalReserves)
	}
	l.totalReserves = l.totalReserves.Sub(amount)
	l.lastReserveUpdate = l.now()
	l.emit(EventReservesRemoved{Manager: caller, Amount: amount, Reason: reason})
	l.emitReservesUpdated(caller)
	return nil
}

// emitReservesUpdated fires the general transparency event with a fresh
// ratio. Must be called with the write lock held.
func (l *Ledger) emitReservesUpdated(manager Address) {
	l.emit(EventReservesUpdated{
		Manager:       manager,
		TotalReserves: l.totalReserves,
		TotalSupply:   l.totalSupply,
		Ratio:         collateralizationRatio(l.totalReserves, l.totalSupply),
	})
}

// GrantRole adds account to the given role. Only DEFAULT_ADMIN holders
// may grant roles. Granting a role the account already holds is a no-op
// and emits no event.
func (l *Ledger) GrantRole(caller Address, role Role, account Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleDefaultAdmin); err != nil {
		return errors.WithStack(err)
	}
	if !role.IsValid() {
		return errors.Wrapf(errs.Unsupported, "unknown role %q", role)
	}
	if l.hasRole(account, role) {
		return nil
	}
	l.grantRole(caller, role, account)
	return nil
}

// grantRole mutates the role table and emits RoleGranted. Must be
// called with the write lock held (or during construction).
func (l *Ledger) grantRole(admin Address, role Role, account Address) {
	members, ok := l.roles[role]
	if !ok {
		members = make(map[Address]struct{})
		l.roles[role] = members
	}
	members[account] = struct{}{}
	l.emit(EventRoleGranted{Admin: admin, Role: role, Account: account})
}

// RevokeRole removes account from the given role. Only DEFAULT_ADMIN
// holders may revoke roles, including from other DEFAULT_ADMIN holders.
// Revoking a role the account does not hold is a no-op.
func (l *Ledger) RevokeRole(caller Address, role Role, account Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireRole(caller, RoleDefaultAdmin); err != nil {
		return errors.WithStack(err)
	}
	if !role.IsValid() {
		return errors.Wrapf(errs.Unsupported, "unknown role %q", role)
	}
	if !l.hasRole(account, role) {
		return nil
	}
	delete(l.roles[role], account)
	l.emit(EventRoleRevoked{Admin: caller, Role: role, Account: account})
	return nil
}
