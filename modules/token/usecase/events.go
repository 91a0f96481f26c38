package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func (u *Usecase) GetEventsByAccount(ctx context.Context, account ledger.Address, limit, offset int32) ([]*entity.JournalEntry, error) {
	entries, err := u.journalDg.GetJournalEntriesByAccount(ctx, account, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during GetJournalEntriesByAccount")
	}
	return entries, nil
}

func (u *Usecase) GetEventsByType(ctx context.Context, eventType ledger.EventType, limit, offset int32) ([]*entity.JournalEntry, error) {
	entries, err := u.journalDg.GetJournalEntriesByType(ctx, eventType, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during GetJournalEntriesByType")
	}
	return entries, nil
}

func (u *Usecase) GetEvents(ctx context.Context, fromSequence, toSequence uint64) ([]*entity.JournalEntry, error) {
	entries, err := u.journalDg.GetJournalEntries(ctx, fromSequence, toSequence)
	if err != nil {
		return nil, errors.Wrap(err, "error during GetJournalEntries")
	}
	return entries, nil
}

// GetPersistedSequence reports how far the journal processor has
// flushed. Zero means nothing is persisted yet.
func (u *Usecase) GetPersistedSequence(ctx context.Context) (uint64, error) {
	sequence, err := u.journalDg.GetLatestSequence(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "error during GetLatestSequence")
	}
	return sequence, nil
}
