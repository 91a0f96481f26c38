package postgres

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type journalEntryModel struct {
	Sequence  int64
	Timestamp time.Time
	EventType string
	Payload   []byte
	Accounts  []string
}

type snapshotModel struct {
	Sequence            int64
	CreatedAt           time.Time
	CumulativeEventHash string
	State               []byte
}

func mapJournalEntryModelToType(src journalEntryModel) (*entity.JournalEntry, error) {
	eventType := ledger.EventType(src.EventType)
	event, err := ledger.UnmarshalEventJSON(eventType, src.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode event payload")
	}
	return &entity.JournalEntry{
		Sequence:  uint64(src.Sequence),
		Timestamp: src.Timestamp.UTC(),
		EventType: eventType,
		Event:     event,
	}, nil
}

func mapJournalEntryTypeToModel(src *entity.JournalEntry) (journalEntryModel, error) {
	payload, err := ledger.MarshalEventJSON(src.Event)
	if err != nil {
		return journalEntryModel{}, errors.Wrap(err, "failed to encode event payload")
	}
	return journalEntryModel{
		Sequence:  int64(src.Sequence),
		Timestamp: src.Timestamp.UTC(),
		EventType: string(src.Event.Type()),
		Payload:   payload,
		Accounts:  eventAccounts(src.Event),
	}, nil
}

// eventAccounts lists every address a payload references, for the
// per-account journal index. The zero sentinel is excluded.
func eventAccounts(event ledger.Event) []string {
	var addresses []ledger.Address
	switch e := event.(type) {
	case ledger.EventTransfer:
		addresses = []ledger.Address{e.From, e.To}
	case ledger.EventApproval:
		addresses = []ledger.Address{e.Owner, e.Spender}
	case ledger.EventMint:
		addresses = []ledger.Address{e.Minter, e.To}
	case ledger.EventBurn:
		addresses = []ledger.Address{e.Burner, e.From}
	case ledger.EventBlacklisted:
		addresses = []ledger.Address{e.Blacklister, e.Account}
	case ledger.EventUnBlacklisted:
		addresses = []ledger.Address{e.Blacklister, e.Account}
	case ledger.EventPaused:
		addresses = []ledger.Address{e.Pauser}
	case ledger.EventUnpaused:
		addresses = []ledger.Address{e.Pauser}
	case ledger.EventMaxMintPerTransactionUpdated:
		addresses = []ledger.Address{e.Admin}
	case ledger.EventMaxTotalSupplyUpdated:
		addresses = []ledger.Address{e.Admin}
	case ledger.EventReservesUpdated:
		addresses = []ledger.Address{e.Manager}
	case ledger.EventReservesAdded:
		addresses = []ledger.Address{e.Manager}
	case ledger.EventReservesRemoved:
		addresses = []ledger.Address{e.Manager}
	case ledger.EventRoleGranted:
		addresses = []ledger.Address{e.Admin, e.Account}
	case ledger.EventRoleRevoked:
		addresses = []ledger.Address{e.Admin, e.Account}
	}

	accounts := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if address.IsZero() {
			continue
		}
		accounts = append(accounts, address.String())
	}
	return accounts
}

func mapSnapshotModelToType(src snapshotModel) (*entity.LedgerSnapshot, error) {
	var state ledger.Snapshot
	if err := json.Unmarshal(src.State, &state); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot state")
	}
	return &entity.LedgerSnapshot{
		Sequence:            uint64(src.Sequence),
		CreatedAt:           src.CreatedAt.UTC(),
		CumulativeEventHash: src.CumulativeEventHash,
		State:               state,
	}, nil
}

func mapSnapshotTypeToModel(src *entity.LedgerSnapshot) (snapshotModel, error) {
	state, err := json.Marshal(src.State)
	if err != nil {
		return snapshotModel{}, errors.Wrap(err, "failed to encode snapshot state")
	}
	return snapshotModel{
		Sequence:            int64(src.Sequence),
		CreatedAt:           src.CreatedAt.UTC(),
		CumulativeEventHash: src.CumulativeEventHash,
		State:               state,
	}, nil
}
