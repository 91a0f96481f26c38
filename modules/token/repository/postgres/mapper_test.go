package postgres

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func testAddress(b byte) ledger.Address {
	var addr ledger.Address
	addr[ledger.AddressLength-1] = b
	return addr
}

func TestMapJournalEntry(t *testing.T) {
	entry := &entity.JournalEntry{
		Sequence:  42,
		Timestamp: time.Unix(1700000000, 0).UTC(),
		EventType: ledger.EventTypeTransfer,
		Event: ledger.EventTransfer{
			From:   testAddress(1),
			To:     testAddress(2),
			Amount: uint128.From64(1_000_000),
		},
	}

	model, err := mapJournalEntryTypeToModel(entry)
	require.NoError(t, err)
	assert.Equal(t, int64(42), model.Sequence)
	assert.Equal(t, "TRANSFER", model.EventType)
	assert.Equal(t, []string{testAddress(1).String(), testAddress(2).String()}, model.Accounts)

	decoded, err := mapJournalEntryModelToType(model)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestEventAccounts(t *testing.T) {
	t.Run("zero sentinel excluded", func(t *testing.T) {
		accounts := eventAccounts(ledger.EventTransfer{
			From:   ledger.ZeroAddress,
			To:     testAddress(7),
			Amount: uint128.From64(1),
		})
		assert.Equal(t, []string{testAddress(7).String()}, accounts)
	})

	t.Run("all parties listed", func(t *testing.T) {
		accounts := eventAccounts(ledger.EventRoleGranted{
			Admin:   testAddress(1),
			Role:    ledger.RoleMinter,
			Account: testAddress(2),
		})
		assert.Len(t, accounts, 2)
	})

	t.Run("every event type yields at least one account", func(t *testing.T) {
		events := []ledger.Event{
			ledger.EventApproval{Owner: testAddress(1), Spender: testAddress(2)},
			ledger.EventMint{Minter: testAddress(1), To: testAddress(2)},
			ledger.EventBurn{Burner: testAddress(1), From: testAddress(2)},
			ledger.EventBlacklisted{Blacklister: testAddress(1), Account: testAddress(2)},
			ledger.EventUnBlacklisted{Blacklister: testAddress(1), Account: testAddress(2)},
			ledger.EventPaused{Pauser: testAddress(1)},
			ledger.EventUnpaused{Pauser: testAddress(1)},
			ledger.EventMaxMintPerTransactionUpdated{Admin: testAddress(1)},
			ledger.EventMaxTotalSupplyUpdated{Admin: testAddress(1)},
			ledger.EventReservesUpdated{Manager: testAddress(1)},
			ledger.EventReservesAdded{Manager: testAddress(1)},
			ledger.EventReservesRemoved{Manager: testAddress(1)},
			ledger.EventRoleRevoked{Admin: testAddress(1), Account: testAddress(2)},
		}
		for _, event := range events {
			assert.NotEmpty(t, eventAccounts(event), "event type %s", event.Type())
		}
	})
}

func TestMapSnapshot(t *testing.T) {
	live, err := ledger.New(ledger.GenesisConfig{
		MasterController: testAddress(1),
		Minters:          []ledger.Address{testAddress(2)},
	})
	require.NoError(t, err)

	snapshot := &entity.LedgerSnapshot{
		Sequence:            live.Snapshot().Sequence,
		CreatedAt:           time.Unix(1700000000, 0).UTC(),
		CumulativeEventHash: "00ff",
		State:               live.Snapshot(),
	}

	model, err := mapSnapshotTypeToModel(snapshot)
	require.NoError(t, err)

	decoded, err := mapSnapshotModelToType(model)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)
}
