package ledger

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/common/errs"
)

var (
	master      = testAddress(0x01)
	minter      = testAddress(0x02)
	blacklister = testAddress(0x03)
	pauser      = testAddress(0x04)
	reserveMgr  = testAddress(0x05)
	alice       = testAddress(0x0a)
	bob         = testAddress(0x0b)
)

func testAddress(b byte) Address {
	var addr Address
	addr[AddressLength-1] = b
	return addr
}

// coins converts nominal units to ledger units (6 fractional digits).
func coins(n uint64) uint128.Uint128 {
	return uint128.From64(n * 1_000_000)
}

type collectSink struct {
	envelopes []Envelope
}

func (s *collectSink) Publish(envelope Envelope) {
	s.envelopes = append(s.envelopes, envelope)
}

func (s *collectSink) eventsOfType(eventType EventType) []Event {
	var events []Event
	for _, envelope := range s.envelopes {
		if envelope.Event.Type() == eventType {
			events = append(events, envelope.Event)
		}
	}
	return events
}

func (s *collectSink) last() Envelope {
	return s.envelopes[len(s.envelopes)-1]
}

func newTestLedger(t *testing.T) (*Ledger, *collectSink) {
	t.Helper()
	sink := &collectSink{}
	l, err := New(GenesisConfig{
		MasterController: master,
		Minters:          []Address{minter},
		Blacklisters:     []Address{blacklister},
		Pausers:          []Address{pauser},
		ReserveManagers:  []Address{reserveMgr},
		Sink:             sink,
		Now:              func() time.Time { return time.Unix(1700000000, 0) },
	})
	require.NoError(t, err)
	return l, sink
}

func assertSupplyConserved(t *testing.T, l *Ledger) {
	t.Helper()
	sum := uint128.Zero
	for _, balance := range l.balances {
		sum = sum.Add(balance)
	}
	assert.Equal(t, l.TotalSupply(), sum, "sum of balances must equal total supply")
}

func TestNew(t *testing.T) {
	t.Run("genesis state", func(t *testing.T) {
		l, sink := newTestLedger(t)

		assert.Equal(t, coins(10_000_000), l.BalanceOf(master))
		assert.Equal(t, coins(10_000_000), l.TotalSupply())
		assert.Equal(t, coins(10_000_000), l.TotalReserves())
		assert.Equal(t, coins(10_000_000), l.MaxMintPerTransaction())
		assert.Equal(t, coins(1_000_000_000), l.MaxTotalSupply())
		assert.Equal(t, uint128.From64(RatioFullyBacked), l.CollateralizationRatio())
		assert.False(t, l.Paused())
		assertSupplyConserved(t, l)

		assert.True(t, l.HasRole(master, RoleDefaultAdmin))
		assert.True(t, l.HasRole(master, RoleAdmin))
		assert.True(t, l.HasRole(minter, RoleMinter))
		assert.True(t, l.HasRole(blacklister, RoleBlacklister))
		assert.True(t, l.HasRole(pauser, RolePauser))
		assert.True(t, l.HasRole(reserveMgr, RoleReserveManager))

		assert.Len(t, sink.eventsOfType(EventTypeMint), 1)
		assert.Len(t, sink.eventsOfType(EventTypeReservesUpdated), 1)
		// sequences are gapless from 1
		for i, envelope := range sink.envelopes {
			assert.Equal(t, uint64(i)+1, envelope.Sequence)
		}
	})

	t.Run("zero master controller", func(t *testing.T) {
		_, err := New(GenesisConfig{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAddress)
	})

	t.Run("too many initial role holders", func(t *testing.T) {
		minters := make([]Address, MaxInitialRoleHolders+1)
		for i := range minters {
			minters[i] = testAddress(byte(i) + 1)
		}
		_, err := New(GenesisConfig{MasterController: master, Minters: minters})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyRoleHolders)
	})

	t.Run("zero initial role holder", func(t *testing.T) {
		_, err := New(GenesisConfig{MasterController: master, Pausers: []Address{{}}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAddress)
	})

	t.Run("total supply cap below initial supply", func(t *testing.T) {
		_, err := New(GenesisConfig{
			MasterController: master,
			InitialSupply:    coins(100),
			MaxTotalSupply:   coins(99),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSupplyCapBelowSupply)
	})
}

func TestMint(t *testing.T) {
	type testcase struct {
		name        string
		setup       func(t *testing.T, l *Ledger)
		caller      Address
		to          Address
		amount      uint128.Uint128
		expectedErr error
	}
	testcases := []testcase{
		{
			name:   "success",
			caller: minter,
			to:     alice,
			amount: coins(1_000_000),
		},
		{
			name:        "unauthorized caller",
			caller:      alice,
			to:          alice,
			amount:      coins(1),
			expectedErr: errs.Unauthorized,
		},
		{
			name:        "admin cannot mint",
			caller:      master,
			to:          alice,
			amount:      coins(1),
			expectedErr: errs.Unauthorized,
		},
		{
			name: "paused",
			setup: func(t *testing.T, l *Ledger) {
				require.NoError(t, l.Pause(pauser))
			},
			caller:      minter,
			to:          alice,
			amount:      coins(1),
			expectedErr: ErrMintPaused,
		},
		{
			name:        "zero recipient",
			caller:      minter,
			to:          ZeroAddress,
			amount:      coins(1),
			expectedErr: ErrZeroAddress,
		},
		{
			name:        "zero amount",
			caller:      minter,
			to:          alice,
			amount:      uint128.Zero,
			expectedErr: ErrZeroAmount,
		},
		{
			name:   "exactly at per-transaction cap",
			caller: minter,
			to:     alice,
			amount: coins(10_000_000),
		},
		{
			name:        "one above per-transaction cap",
			caller:      minter,
			to:          alice,
			amount:      coins(10_000_000).Add64(1),
			expectedErr: ErrMintCapExceeded,
		},
		{
			name: "would exceed total supply cap",
			setup: func(t *testing.T, l *Ledger) {
				require.NoError(t, l.SetMaxTotalSupply(master, coins(10_000_001)))
			},
			caller:      minter,
			to:          alice,
			amount:      coins(2),
			expectedErr: ErrSupplyCapExceeded,
		},
		{
			name: "blacklisted recipient",
			setup: func(t *testing.T, l *Ledger) {
				require.NoError(t, l.Blacklist(blacklister, alice, "sanctions"))
			},
			caller:      minter,
			to:          alice,
			amount:      coins(1),
			expectedErr: ErrBlacklisted,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			l, sink := newTestLedger(t)
			if tc.setup != nil {
				tc.setup(t, l)
			}
			supplyBefore := l.TotalSupply()
			balanceBefore := l.BalanceOf(tc.to)

			err := l.Mint(tc.caller, tc.to, tc.amount)
			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, supplyBefore, l.TotalSupply())
				assert.Equal(t, balanceBefore, l.BalanceOf(tc.to))
			} else {
				require.NoError(t, err)
				assert.Equal(t, supplyBefore.Add(tc.amount), l.TotalSupply())
				assert.Equal(t, balanceBefore.Add(tc.amount), l.BalanceOf(tc.to))

				mints := sink.eventsOfType(EventTypeMint)
				event, ok := mints[len(mints)-1].(EventMint)
				require.True(t, ok)
				assert.Equal(t, tc.caller, event.Minter)
				assert.Equal(t, tc.to, event.To)
				assert.Equal(t, tc.amount, event.Amount)
			}
			assertSupplyConserved(t, l)
		})
	}
}

func TestBurnFrom(t *testing.T) {
	setup := func(t *testing.T) (*Ledger, *collectSink) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(1000)))
		return l, sink
	}

	t.Run("success with allowance decrement", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, minter, coins(600)))

		require.NoError(t, l.BurnFrom(minter, alice, coins(400)))
		assert.Equal(t, coins(600), l.BalanceOf(alice))
		assert.Equal(t, coins(200), l.Allowance(alice, minter))
		assertSupplyConserved(t, l)
	})

	t.Run("infinite allowance is not decremented", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, minter, uint128.Max))

		require.NoError(t, l.BurnFrom(minter, alice, coins(400)))
		assert.Equal(t, uint128.Max, l.Allowance(alice, minter))
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, minter, coins(100)))

		err := l.BurnFrom(minter, alice, coins(400))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientAllowance)
		assert.Equal(t, coins(1000), l.BalanceOf(alice))
	})

	t.Run("insufficient balance", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, minter, coins(5000)))

		err := l.BurnFrom(minter, alice, coins(2000))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("unauthorized caller", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, bob, coins(600)))

		err := l.BurnFrom(bob, alice, coins(100))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("not gated by pause", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, minter, coins(600)))
		require.NoError(t, l.Pause(pauser))

		require.NoError(t, l.BurnFrom(minter, alice, coins(100)))
	})

	t.Run("not gated by blacklist", func(t *testing.T) {
		l, _ := setup(t)
		require.NoError(t, l.Approve(alice, minter, coins(600)))
		require.NoError(t, l.Blacklist(blacklister, alice, "sanctions"))

		require.NoError(t, l.BurnFrom(minter, alice, coins(100)))
		assert.Equal(t, coins(900), l.BalanceOf(alice))
	})

	t.Run("mint then burnFrom round trip", func(t *testing.T) {
		l, _ := newTestLedger(t)
		supplyBefore := l.TotalSupply()
		balanceBefore := l.BalanceOf(bob)

		require.NoError(t, l.Mint(minter, bob, coins(123)))
		require.NoError(t, l.Approve(bob, minter, coins(123)))
		require.NoError(t, l.BurnFrom(minter, bob, coins(123)))

		assert.Equal(t, supplyBefore, l.TotalSupply())
		assert.Equal(t, balanceBefore, l.BalanceOf(bob))
	})

	t.Run("zero source", func(t *testing.T) {
		l, _ := setup(t)
		err := l.BurnFrom(minter, ZeroAddress, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAddress)
	})

	t.Run("zero amount", func(t *testing.T) {
		l, _ := setup(t)
		err := l.BurnFrom(minter, alice, uint128.Zero)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAmount)
	})
}

func TestBurn(t *testing.T) {
	t.Run("self burn", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(100)))

		require.NoError(t, l.Burn(alice, coins(30)))
		assert.Equal(t, coins(70), l.BalanceOf(alice))
		assertSupplyConserved(t, l)
	})

	t.Run("blacklisted holder can still self burn", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(100)))
		require.NoError(t, l.Blacklist(blacklister, alice, "sanctions"))

		require.NoError(t, l.Burn(alice, coins(100)))
		assert.True(t, l.BalanceOf(alice).IsZero())
	})

	t.Run("self burn during pause", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(100)))
		require.NoError(t, l.Pause(pauser))

		require.NoError(t, l.Burn(alice, coins(100)))
	})

	t.Run("exceeds balance", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.Burn(alice, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})
}

func TestTransfer(t *testing.T) {
	setup := func(t *testing.T) *Ledger {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(1000)))
		return l
	}

	t.Run("success", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.Transfer(alice, bob, coins(250)))
		assert.Equal(t, coins(750), l.BalanceOf(alice))
		assert.Equal(t, coins(250), l.BalanceOf(bob))
		assertSupplyConserved(t, l)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		l := setup(t)
		err := l.Transfer(bob, alice, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("blacklisted sender is named", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.Blacklist(blacklister, alice, "sanctions"))

		err := l.Transfer(alice, bob, uint128.From64(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBlacklisted)
		assert.Contains(t, err.Error(), "sender "+alice.String())
		assert.Equal(t, coins(1000), l.BalanceOf(alice))
	})

	t.Run("blacklisted receiver is named", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.Blacklist(blacklister, bob, "sanctions"))

		err := l.Transfer(alice, bob, uint128.From64(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBlacklisted)
		assert.Contains(t, err.Error(), "receiver "+bob.String())
	})

	t.Run("zero receiver", func(t *testing.T) {
		l := setup(t)
		err := l.Transfer(alice, ZeroAddress, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAddress)
	})

	t.Run("unaffected by pause", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.Pause(pauser))
		require.NoError(t, l.Transfer(alice, bob, coins(10)))
	})
}

func TestTransferFrom(t *testing.T) {
	setup := func(t *testing.T) *Ledger {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(1000)))
		require.NoError(t, l.Approve(alice, bob, coins(500)))
		return l
	}

	t.Run("success with allowance decrement", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.TransferFrom(bob, alice, bob, coins(200)))
		assert.Equal(t, coins(800), l.BalanceOf(alice))
		assert.Equal(t, coins(200), l.BalanceOf(bob))
		assert.Equal(t, coins(300), l.Allowance(alice, bob))
		assertSupplyConserved(t, l)
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		l := setup(t)
		err := l.TransferFrom(bob, alice, bob, coins(600))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientAllowance)
	})

	t.Run("infinite allowance is not decremented", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.Approve(alice, bob, uint128.Max))

		require.NoError(t, l.TransferFrom(bob, alice, bob, coins(200)))
		assert.Equal(t, uint128.Max, l.Allowance(alice, bob))
	})

	t.Run("blacklisted owner", func(t *testing.T) {
		l := setup(t)
		require.NoError(t, l.Blacklist(blacklister, alice, "sanctions"))

		err := l.TransferFrom(bob, alice, bob, coins(100))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBlacklisted)
	})
}

func TestApprove(t *testing.T) {
	t.Run("sets absolute allowance", func(t *testing.T) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.Approve(alice, bob, coins(500)))
		require.NoError(t, l.Approve(alice, bob, coins(100)))
		assert.Equal(t, coins(100), l.Allowance(alice, bob))

		approvals := sink.eventsOfType(EventTypeApproval)
		require.Len(t, approvals, 2)
		event, ok := approvals[1].(EventApproval)
		require.True(t, ok)
		assert.Equal(t, alice, event.Owner)
		assert.Equal(t, bob, event.Spender)
		assert.Equal(t, coins(100), event.Amount)
	})

	t.Run("zero spender", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.Approve(alice, ZeroAddress, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAddress)
	})

	t.Run("unaffected by pause", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Pause(pauser))
		require.NoError(t, l.Approve(alice, bob, coins(1)))
	})
}

func TestBlacklist(t *testing.T) {
	t.Run("blacklist then unblacklist round trip", func(t *testing.T) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.Blacklist(blacklister, alice, "OFAC SDN listing"))
		assert.True(t, l.IsBlacklisted(alice))
		assert.Equal(t, "OFAC SDN listing", l.BlacklistReason(alice))

		require.NoError(t, l.UnBlacklist(blacklister, alice))
		assert.False(t, l.IsBlacklisted(alice))
		assert.Equal(t, "", l.BlacklistReason(alice))

		assert.Len(t, sink.eventsOfType(EventTypeBlacklisted), 1)
		assert.Len(t, sink.eventsOfType(EventTypeUnBlacklisted), 1)
	})

	t.Run("re-blacklist overwrites reason", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Blacklist(blacklister, alice, "first"))
		require.NoError(t, l.Blacklist(blacklister, alice, "second"))
		assert.Equal(t, "second", l.BlacklistReason(alice))
	})

	t.Run("unblacklist of clear account is a no-op", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.UnBlacklist(blacklister, alice))
		assert.False(t, l.IsBlacklisted(alice))
	})

	t.Run("unauthorized caller", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.Blacklist(alice, bob, "reason")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("zero account", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.Blacklist(blacklister, ZeroAddress, "reason")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAddress)
	})
}

func TestPause(t *testing.T) {
	t.Run("pause and unpause", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Pause(pauser))
		assert.True(t, l.Paused())
		require.NoError(t, l.Unpause(pauser))
		assert.False(t, l.Paused())
	})

	t.Run("pause when already paused", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Pause(pauser))
		err := l.Pause(pauser)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyPaused)
	})

	t.Run("unpause when active", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.Unpause(pauser)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotPaused)
	})

	t.Run("pause gates mint only", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(100)))
		require.NoError(t, l.Approve(alice, minter, coins(100)))
		require.NoError(t, l.Pause(pauser))

		err := l.Mint(minter, alice, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMintPaused)

		assert.NoError(t, l.Transfer(alice, bob, coins(10)))
		assert.NoError(t, l.Approve(alice, bob, coins(5)))
		assert.NoError(t, l.BurnFrom(minter, alice, coins(10)))
		assert.NoError(t, l.Blacklist(blacklister, bob, "x"))
		assert.NoError(t, l.UnBlacklist(blacklister, bob))
		assert.NoError(t, l.UpdateReserves(reserveMgr, coins(123)))
	})

	t.Run("unauthorized caller", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.Pause(blacklister)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})
}

func TestSetMaxMintPerTransaction(t *testing.T) {
	t.Run("success emits old and new", func(t *testing.T) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.SetMaxMintPerTransaction(master, coins(500)))
		assert.Equal(t, coins(500), l.MaxMintPerTransaction())

		events := sink.eventsOfType(EventTypeMaxMintPerTransactionUpdated)
		event, ok := events[len(events)-1].(EventMaxMintPerTransactionUpdated)
		require.True(t, ok)
		assert.Equal(t, coins(10_000_000), event.OldLimit)
		assert.Equal(t, coins(500), event.NewLimit)
	})

	t.Run("zero limit", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.SetMaxMintPerTransaction(master, uint128.Zero)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("same value", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.SetMaxMintPerTransaction(master, coins(10_000_000))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSameValue)
	})

	t.Run("minter cannot change caps", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.SetMaxMintPerTransaction(minter, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})
}

func TestSetMaxTotalSupply(t *testing.T) {
	t.Run("equal to current supply is allowed", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.SetMaxTotalSupply(master, l.TotalSupply()))
		assert.Equal(t, l.TotalSupply(), l.MaxTotalSupply())
	})

	t.Run("one below current supply names both values", func(t *testing.T) {
		l, _ := newTestLedger(t)
		proposed := l.TotalSupply().Sub64(1)

		err := l.SetMaxTotalSupply(master, proposed)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSupplyCapBelowSupply)
		assert.Contains(t, err.Error(), proposed.String())
		assert.Contains(t, err.Error(), l.TotalSupply().String())
	})

	t.Run("same value", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.SetMaxTotalSupply(master, l.MaxTotalSupply())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSameValue)
	})

	t.Run("caps are independent", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.SetMaxTotalSupply(master, coins(20_000_000)))
		assert.Equal(t, coins(10_000_000), l.MaxMintPerTransaction())
	})
}

func TestRoles(t *testing.T) {
	t.Run("grant and revoke", func(t *testing.T) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.GrantRole(master, RoleMinter, alice))
		assert.True(t, l.HasRole(alice, RoleMinter))
		require.NoError(t, l.RevokeRole(master, RoleMinter, alice))
		assert.False(t, l.HasRole(alice, RoleMinter))

		assert.Len(t, sink.eventsOfType(EventTypeRoleRevoked), 1)
	})

	t.Run("double grant emits once", func(t *testing.T) {
		l, sink := newTestLedger(t)
		before := len(sink.eventsOfType(EventTypeRoleGranted))
		require.NoError(t, l.GrantRole(master, RoleMinter, alice))
		require.NoError(t, l.GrantRole(master, RoleMinter, alice))
		assert.Len(t, sink.eventsOfType(EventTypeRoleGranted), before+1)
	})

	t.Run("only default admin can grant", func(t *testing.T) {
		l, _ := newTestLedger(t)
		for _, caller := range []Address{minter, blacklister, pauser, reserveMgr, alice} {
			err := l.GrantRole(caller, RoleMinter, alice)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.Unauthorized)
		}
	})

	t.Run("cannot grant itself a role", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.GrantRole(alice, RoleDefaultAdmin, alice)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("separation of duties", func(t *testing.T) {
		l, _ := newTestLedger(t)

		// ADMIN cannot mint
		assert.ErrorIs(t, l.Mint(master, alice, coins(1)), errs.Unauthorized)
		// MINTER cannot change caps
		assert.ErrorIs(t, l.SetMaxTotalSupply(minter, coins(30_000_000)), errs.Unauthorized)
		// BLACKLISTER cannot mint or pause
		assert.ErrorIs(t, l.Mint(blacklister, alice, coins(1)), errs.Unauthorized)
		assert.ErrorIs(t, l.Pause(blacklister), errs.Unauthorized)
		// PAUSER cannot blacklist
		assert.ErrorIs(t, l.Blacklist(pauser, alice, "x"), errs.Unauthorized)
		// RESERVE_MANAGER cannot move funds
		assert.ErrorIs(t, l.Mint(reserveMgr, alice, coins(1)), errs.Unauthorized)
		assert.ErrorIs(t, l.BurnFrom(reserveMgr, master, coins(1)), errs.Unauthorized)
	})

	t.Run("unknown role", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.GrantRole(master, Role("OWNER"), alice)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unsupported)
	})
}
