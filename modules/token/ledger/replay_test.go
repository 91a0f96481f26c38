package ledger

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/common/errs"
)

type unknownEvent struct{}

func (unknownEvent) Type() EventType { return EventType("UNKNOWN") }

func TestReplay(t *testing.T) {
	t.Run("reproduces live state", func(t *testing.T) {
		live, sink := newTestLedger(t)

		require.NoError(t, live.Mint(minter, alice, coins(2_500_000)))
		require.NoError(t, live.Transfer(alice, bob, coins(700_000)))
		require.NoError(t, live.Approve(alice, bob, coins(300_000)))
		require.NoError(t, live.TransferFrom(bob, alice, bob, coins(100_000)))
		require.NoError(t, live.Approve(alice, minter, uint128.Max))
		require.NoError(t, live.BurnFrom(minter, alice, coins(50_000)))
		require.NoError(t, live.Burn(bob, coins(10_000)))
		require.NoError(t, live.Blacklist(blacklister, testAddress(0x99), "sanctions"))
		require.NoError(t, live.Pause(pauser))
		require.NoError(t, live.Unpause(pauser))
		require.NoError(t, live.SetMaxMintPerTransaction(master, coins(5_000_000)))
		require.NoError(t, live.SetMaxTotalSupply(master, coins(500_000_000)))
		require.NoError(t, live.AddReserves(reserveMgr, coins(3_000_000), "cash"))
		require.NoError(t, live.RemoveReserves(reserveMgr, coins(1_000_000), "redemption"))
		require.NoError(t, live.UpdateReserves(reserveMgr, coins(12_345_678)))
		require.NoError(t, live.GrantRole(master, RoleMinter, alice))
		require.NoError(t, live.RevokeRole(master, RoleBlacklister, blacklister))

		replayed, err := Replay(sink.envelopes, nil, nil)
		require.NoError(t, err)

		for _, account := range []Address{master, minter, alice, bob, testAddress(0x99)} {
			assert.Equal(t, live.BalanceOf(account), replayed.BalanceOf(account), "balance of %s", account)
			assert.Equal(t, live.IsBlacklisted(account), replayed.IsBlacklisted(account))
			assert.Equal(t, live.BlacklistReason(account), replayed.BlacklistReason(account))
			for role := range allRoles {
				assert.Equal(t, live.HasRole(account, role), replayed.HasRole(account, role), "role %s of %s", role, account)
			}
		}
		assert.Equal(t, live.TotalSupply(), replayed.TotalSupply())
		assert.Equal(t, live.MaxMintPerTransaction(), replayed.MaxMintPerTransaction())
		assert.Equal(t, live.MaxTotalSupply(), replayed.MaxTotalSupply())
		assert.Equal(t, live.TotalReserves(), replayed.TotalReserves())
		assert.Equal(t, live.CollateralizationRatio(), replayed.CollateralizationRatio())
		assert.Equal(t, live.Paused(), replayed.Paused())
		assert.Equal(t, live.Allowance(alice, bob), replayed.Allowance(alice, bob))
		assert.Equal(t, live.Allowance(alice, minter), replayed.Allowance(alice, minter))
		assertSupplyConserved(t, replayed)
	})

	t.Run("replayed ledger accepts further operations", func(t *testing.T) {
		live, sink := newTestLedger(t)
		require.NoError(t, live.Mint(minter, alice, coins(100)))

		replaySink := &collectSink{}
		replayed, err := Replay(sink.envelopes, replaySink, nil)
		require.NoError(t, err)

		require.NoError(t, replayed.Transfer(alice, bob, coins(40)))
		assert.Equal(t, coins(60), replayed.BalanceOf(alice))

		// sequence numbering continues from the journal
		require.NotEmpty(t, replaySink.envelopes)
		assert.Equal(t, sink.last().Sequence+1, replaySink.envelopes[0].Sequence)
	})

	t.Run("empty journal yields empty state", func(t *testing.T) {
		replayed, err := Replay(nil, nil, nil)
		require.NoError(t, err)
		assert.True(t, replayed.TotalSupply().IsZero())
		assert.False(t, replayed.Paused())
	})

	t.Run("journal gap", func(t *testing.T) {
		_, sink := newTestLedger(t)
		envelopes := append([]Envelope{}, sink.envelopes...)
		envelopes = append(envelopes, Envelope{
			Sequence: sink.last().Sequence + 2,
			Event:    EventPaused{Pauser: pauser},
		})

		_, err := Replay(envelopes, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.InternalError)
	})

	t.Run("journal not starting at one", func(t *testing.T) {
		_, err := Replay([]Envelope{{Sequence: 5, Event: EventPaused{Pauser: pauser}}}, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.InternalError)
	})

	t.Run("unknown event type", func(t *testing.T) {
		_, err := Replay([]Envelope{{Sequence: 1, Event: unknownEvent{}}}, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unsupported)
	})

	t.Run("reserve timestamp comes from the envelope", func(t *testing.T) {
		at := time.Unix(1700000000, 0).UTC()
		envelopes := []Envelope{{
			Sequence:  1,
			Timestamp: at,
			Event: EventReservesUpdated{
				Manager:       reserveMgr,
				TotalReserves: coins(5),
				Ratio:         uint128.From64(RatioFullyBacked),
			},
		}}

		replayed, err := Replay(envelopes, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, at, replayed.LastReserveUpdate())
		assert.Equal(t, coins(5), replayed.TotalReserves())
	})
}
