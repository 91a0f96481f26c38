package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/datagateway"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

var _ datagateway.JournalDataGateway = (*Repository)(nil)

func (r *Repository) GetLatestSequence(ctx context.Context) (uint64, error) {
	var sequence int64
	err := r.queryable().QueryRow(ctx, `SELECT "sequence" FROM usdm_events ORDER BY "sequence" DESC LIMIT 1`).Scan(&sequence)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errors.WithStack(errs.NotFound)
		}
		return 0, errors.Wrap(err, "error during query")
	}
	return uint64(sequence), nil
}

func (r *Repository) GetJournalEntries(ctx context.Context, fromSequence, toSequence uint64) ([]*entity.JournalEntry, error) {
	query := `SELECT "sequence", "timestamp", event_type, payload FROM usdm_events WHERE "sequence" >= $1`
	args := []any{int64(fromSequence)}
	if toSequence > 0 {
		query += ` AND "sequence" <= $2`
		args = append(args, int64(toSequence))
	}
	query += ` ORDER BY "sequence"`

	rows, err := r.queryable().Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()
	return collectJournalEntries(rows)
}

func (r *Repository) GetJournalEntriesByAccount(ctx context.Context, account ledger.Address, limit, offset int32) ([]*entity.JournalEntry, error) {
	rows, err := r.queryable().Query(ctx, `
		SELECT "sequence", "timestamp", event_type, payload FROM usdm_events
		WHERE accounts @> ARRAY[$1]::text[]
		ORDER BY "sequence" DESC
		LIMIT $2 OFFSET $3
	`, account.String(), limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()
	return collectJournalEntries(rows)
}

func (r *Repository) GetJournalEntriesByType(ctx context.Context, eventType ledger.EventType, limit, offset int32) ([]*entity.JournalEntry, error) {
	rows, err := r.queryable().Query(ctx, `
		SELECT "sequence", "timestamp", event_type, payload FROM usdm_events
		WHERE event_type = $1
		ORDER BY "sequence" DESC
		LIMIT $2 OFFSET $3
	`, string(eventType), limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()
	return collectJournalEntries(rows)
}

func (r *Repository) CreateJournalEntries(ctx context.Context, entries []*entity.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, entry := range entries {
		model, err := mapJournalEntryTypeToModel(entry)
		if err != nil {
			return errors.Wrapf(err, "failed to map journal entry at sequence %d", entry.Sequence)
		}
		batch.Queue(`
			INSERT INTO usdm_events ("sequence", "timestamp", event_type, payload, accounts)
			VALUES ($1, $2, $3, $4, $5)
		`, model.Sequence, model.Timestamp, model.EventType, model.Payload, model.Accounts)
	}
	results := r.sendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return errors.Wrap(err, "error during exec")
		}
	}
	return nil
}

func (r *Repository) GetLatestSnapshot(ctx context.Context) (*entity.LedgerSnapshot, error) {
	var model snapshotModel
	err := r.queryable().QueryRow(ctx, `
		SELECT "sequence", created_at, cumulative_event_hash, state FROM usdm_ledger_snapshots
		ORDER BY "sequence" DESC LIMIT 1
	`).Scan(&model.Sequence, &model.CreatedAt, &model.CumulativeEventHash, &model.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	snapshot, err := mapSnapshotModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse snapshot model")
	}
	return snapshot, nil
}

func (r *Repository) CreateSnapshot(ctx context.Context, snapshot *entity.LedgerSnapshot) error {
	model, err := mapSnapshotTypeToModel(snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to map snapshot")
	}
	if _, err := r.queryable().Exec(ctx, `
		INSERT INTO usdm_ledger_snapshots ("sequence", created_at, cumulative_event_hash, state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ("sequence") DO UPDATE SET created_at = EXCLUDED.created_at, cumulative_event_hash = EXCLUDED.cumulative_event_hash, state = EXCLUDED.state
	`, model.Sequence, model.CreatedAt, model.CumulativeEventHash, model.State); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteSnapshotsBefore(ctx context.Context, sequence uint64) error {
	if _, err := r.queryable().Exec(ctx, `DELETE FROM usdm_ledger_snapshots WHERE "sequence" < $1`, int64(sequence)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func collectJournalEntries(rows pgx.Rows) ([]*entity.JournalEntry, error) {
	var entries []*entity.JournalEntry
	for rows.Next() {
		var model journalEntryModel
		if err := rows.Scan(&model.Sequence, &model.Timestamp, &model.EventType, &model.Payload); err != nil {
			return nil, errors.Wrap(err, "error during scan")
		}
		entry, err := mapJournalEntryModelToType(model)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse journal entry at sequence %d", model.Sequence)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during iteration")
	}
	return entries, nil
}
