package ledger

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/common/errs"
)

func TestUpdateReserves(t *testing.T) {
	t.Run("sets absolute amount and emits snapshot", func(t *testing.T) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.UpdateReserves(reserveMgr, coins(15_000_000)))
		assert.Equal(t, coins(15_000_000), l.TotalReserves())

		events := sink.eventsOfType(EventTypeReservesUpdated)
		event, ok := events[len(events)-1].(EventReservesUpdated)
		require.True(t, ok)
		assert.Equal(t, reserveMgr, event.Manager)
		assert.Equal(t, coins(15_000_000), event.TotalReserves)
		assert.Equal(t, coins(10_000_000), event.TotalSupply)
		assert.Equal(t, uint128.From64(15000), event.Ratio)
	})

	t.Run("zero is allowed", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.UpdateReserves(reserveMgr, uint128.Zero))
		assert.True(t, l.TotalReserves().IsZero())
		assert.Equal(t, uint128.Zero, l.CollateralizationRatio())
	})

	t.Run("refreshes last update timestamp", func(t *testing.T) {
		sink := &collectSink{}
		current := time.Unix(1700000000, 0)
		l, err := New(GenesisConfig{
			MasterController: master,
			ReserveManagers:  []Address{reserveMgr},
			Sink:             sink,
			Now:              func() time.Time { return current },
		})
		require.NoError(t, err)

		current = current.Add(time.Hour)
		require.NoError(t, l.UpdateReserves(reserveMgr, coins(1)))
		assert.Equal(t, current, l.LastReserveUpdate())
	})

	t.Run("default clock stamps UTC", func(t *testing.T) {
		// snapshots and journal entries round-trip through JSON, which
		// decodes timestamps in UTC; the live clock must agree
		l, err := New(GenesisConfig{
			MasterController: master,
			ReserveManagers:  []Address{reserveMgr},
		})
		require.NoError(t, err)
		assert.Equal(t, time.UTC, l.LastReserveUpdate().Location())

		require.NoError(t, l.UpdateReserves(reserveMgr, coins(1)))
		assert.Equal(t, time.UTC, l.LastReserveUpdate().Location())
	})

	t.Run("unauthorized caller", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.UpdateReserves(master, coins(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})
}

func TestAddReserves(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		l, sink := newTestLedger(t)
		require.NoError(t, l.AddReserves(reserveMgr, coins(2_000_000), "treasury-bills"))
		assert.Equal(t, coins(12_000_000), l.TotalReserves())

		added := sink.eventsOfType(EventTypeReservesAdded)
		event, ok := added[len(added)-1].(EventReservesAdded)
		require.True(t, ok)
		assert.Equal(t, coins(2_000_000), event.Amount)
		assert.Equal(t, "treasury-bills", event.ReserveType)
		// every mutation also emits a fresh snapshot
		assert.Equal(t, EventTypeReservesUpdated, sink.last().Event.Type())
	})

	t.Run("zero amount", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.AddReserves(reserveMgr, uint128.Zero, "cash")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("uint128 overflow", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.UpdateReserves(reserveMgr, uint128.Max))
		err := l.AddReserves(reserveMgr, uint128.From64(1), "cash")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.OverflowUint128)
		assert.Equal(t, uint128.Max, l.TotalReserves())
	})
}

func TestRemoveReserves(t *testing.T) {
	t.Run("remove exact amount empties reserves", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.RemoveReserves(reserveMgr, coins(10_000_000), "redemption"))
		assert.True(t, l.TotalReserves().IsZero())
	})

	t.Run("insufficient reserves names both values", func(t *testing.T) {
		l, _ := newTestLedger(t)
		required := coins(10_000_000).Add64(1)

		err := l.RemoveReserves(reserveMgr, required, "redemption")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientReserves)
		assert.Contains(t, err.Error(), required.String())
		assert.Contains(t, err.Error(), coins(10_000_000).String())
		assert.Equal(t, coins(10_000_000), l.TotalReserves())
	})

	t.Run("zero amount", func(t *testing.T) {
		l, _ := newTestLedger(t)
		err := l.RemoveReserves(reserveMgr, uint128.Zero, "redemption")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroAmount)
	})
}

func TestCollateralizationRatio(t *testing.T) {
	type testcase struct {
		name     string
		reserves uint128.Uint128
		supply   uint128.Uint128
		expected uint128.Uint128
	}
	testcases := []testcase{
		{
			name:     "zero supply is fully backed by convention",
			reserves: uint128.Zero,
			supply:   uint128.Zero,
			expected: uint128.From64(RatioFullyBacked),
		},
		{
			name:     "zero supply with leftover reserves",
			reserves: coins(500),
			supply:   uint128.Zero,
			expected: uint128.From64(RatioFullyBacked),
		},
		{
			name:     "exactly backed",
			reserves: coins(1000),
			supply:   coins(1000),
			expected: uint128.From64(10000),
		},
		{
			name:     "overcollateralized",
			reserves: coins(15_000_000),
			supply:   coins(10_000_000),
			expected: uint128.From64(15000),
		},
		{
			name:     "undercollateralized truncates",
			reserves: uint128.From64(1),
			supply:   uint128.From64(3),
			expected: uint128.From64(3333),
		},
		{
			name:     "no reserves",
			reserves: uint128.Zero,
			supply:   coins(1),
			expected: uint128.Zero,
		},
		{
			name:     "huge reserves take the big.Int path",
			reserves: uint128.Max,
			supply:   uint128.From64(10000),
			expected: uint128.Max,
		},
		{
			name:     "saturates at uint128 max",
			reserves: uint128.Max,
			supply:   uint128.From64(1),
			expected: uint128.Max,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, collateralizationRatio(tc.reserves, tc.supply))
		})
	}
}

func TestReserveHealth(t *testing.T) {
	t.Run("surplus", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.AddReserves(reserveMgr, coins(5_000_000), "cash"))

		health := l.ReserveHealth()
		assert.True(t, health.Healthy)
		assert.Equal(t, coins(5_000_000), health.Surplus)
		assert.True(t, health.Deficit.IsZero())
	})

	t.Run("exactly backed is healthy", func(t *testing.T) {
		l, _ := newTestLedger(t)
		health := l.ReserveHealth()
		assert.True(t, health.Healthy)
		assert.True(t, health.Surplus.IsZero())
	})

	t.Run("deficit", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.RemoveReserves(reserveMgr, coins(4_000_000), "drawdown"))

		health := l.ReserveHealth()
		assert.False(t, health.Healthy)
		assert.Equal(t, coins(4_000_000), health.Deficit)
	})

	t.Run("reserves track mint independently", func(t *testing.T) {
		l, _ := newTestLedger(t)
		require.NoError(t, l.Mint(minter, alice, coins(2_000_000)))

		// supply grew but reserves did not
		health := l.ReserveHealth()
		assert.False(t, health.Healthy)
		assert.Equal(t, coins(2_000_000), health.Deficit)
	})
}

func TestRemainingMintCapacity(t *testing.T) {
	l, _ := newTestLedger(t)
	assert.Equal(t, coins(990_000_000), l.RemainingMintCapacity())

	require.NoError(t, l.SetMaxTotalSupply(master, l.TotalSupply()))
	assert.True(t, l.RemainingMintCapacity().IsZero())
}
