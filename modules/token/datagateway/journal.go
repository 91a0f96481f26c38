package datagateway

import (
	"context"

	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

type JournalDataGateway interface {
	JournalReaderDataGateway
	JournalWriterDataGateway

	// BeginJournalTx returns a new JournalDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginJournalTx(ctx context.Context) (JournalDataGatewayWithTx, error)
}

type JournalDataGatewayWithTx interface {
	JournalDataGateway
	Tx
}

type JournalReaderDataGateway interface {
	// GetLatestSequence returns the highest persisted journal sequence. Returns errs.NotFound if the journal is empty.
	GetLatestSequence(ctx context.Context) (uint64, error)
	// GetJournalEntries returns journal entries with fromSequence <= sequence <= toSequence, in sequence order. Use toSequence = 0 as no upper bound.
	GetJournalEntries(ctx context.Context, fromSequence, toSequence uint64) ([]*entity.JournalEntry, error)
	// GetJournalEntriesByAccount returns journal entries whose payload references the account, newest first.
	GetJournalEntriesByAccount(ctx context.Context, account ledger.Address, limit, offset int32) ([]*entity.JournalEntry, error)
	// GetJournalEntriesByType returns journal entries of the given event type, newest first.
	GetJournalEntriesByType(ctx context.Context, eventType ledger.EventType, limit, offset int32) ([]*entity.JournalEntry, error)
	// GetLatestSnapshot returns the most recent ledger snapshot. Returns errs.NotFound if no snapshot was taken yet.
	GetLatestSnapshot(ctx context.Context) (*entity.LedgerSnapshot, error)
}

type JournalWriterDataGateway interface {
	CreateJournalEntries(ctx context.Context, entries []*entity.JournalEntry) error
	CreateSnapshot(ctx context.Context, snapshot *entity.LedgerSnapshot) error
	// DeleteSnapshotsBefore removes snapshots with sequence < sequence, keeping recovery bounded.
	DeleteSnapshotsBefore(ctx context.Context, sequence uint64) error
}
