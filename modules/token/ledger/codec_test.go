package ledger

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/common/errs"
)

func TestEventJSONCodec(t *testing.T) {
	events := []Event{
		EventTransfer{From: alice, To: bob, Amount: coins(5)},
		EventApproval{Owner: alice, Spender: bob, Amount: uint128.Max},
		EventMint{Minter: minter, To: alice, Amount: coins(100)},
		EventBurn{Burner: minter, From: alice, Amount: coins(1)},
		EventBlacklisted{Blacklister: blacklister, Account: alice, Reason: "sanctions"},
		EventUnBlacklisted{Blacklister: blacklister, Account: alice},
		EventPaused{Pauser: pauser},
		EventUnpaused{Pauser: pauser},
		EventMaxMintPerTransactionUpdated{Admin: master, OldLimit: coins(1), NewLimit: coins(2)},
		EventMaxTotalSupplyUpdated{Admin: master, OldLimit: coins(3), NewLimit: coins(4)},
		EventReservesUpdated{Manager: reserveMgr, TotalReserves: coins(10), TotalSupply: coins(8), Ratio: uint128.From64(12500)},
		EventReservesAdded{Manager: reserveMgr, Amount: coins(2), ReserveType: "cash"},
		EventReservesRemoved{Manager: reserveMgr, Amount: coins(1), Reason: "redemption"},
		EventRoleGranted{Admin: master, Role: RoleMinter, Account: alice},
		EventRoleRevoked{Admin: master, Role: RoleMinter, Account: alice},
	}

	for _, event := range events {
		t.Run(string(event.Type()), func(t *testing.T) {
			payload, err := MarshalEventJSON(event)
			require.NoError(t, err)

			decoded, err := UnmarshalEventJSON(event.Type(), payload)
			require.NoError(t, err)
			assert.Equal(t, event, decoded)
		})
	}
}

func TestUnmarshalEventJSONUnknownType(t *testing.T) {
	_, err := UnmarshalEventJSON(EventType("UNKNOWN"), []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Unsupported)
}

func TestUnmarshalEventJSONBadPayload(t *testing.T) {
	_, err := UnmarshalEventJSON(EventTypeTransfer, []byte(`{"amount":"not-a-number"}`))
	require.Error(t, err)
}
