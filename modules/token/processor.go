package token

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/internal/subscription"
	"github.com/usdm-network/ledger-node/modules/token/datagateway"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
	"github.com/usdm-network/ledger-node/pkg/attestclient"
	"github.com/usdm-network/ledger-node/pkg/logger"
	"github.com/usdm-network/ledger-node/pkg/logger/slogx"
)

const (
	// DBVersion is bumped on schema changes that require a migration.
	DBVersion = 1

	// flushInterval is the maximum time a journaled event stays buffered
	// in memory before it is persisted.
	flushInterval = 1 * time.Second

	// maxBatchSize flushes early once this many events are buffered.
	maxBatchSize = 256

	// snapshotEvery controls how many journal events may accumulate
	// between persisted ledger snapshots.
	snapshotEvery = 10_000

	// keepSnapshots is how many past snapshots survive pruning.
	keepSnapshots = 3
)

// Processor drains the ledger event stream into the Postgres journal,
// maintains recovery snapshots, and publishes reserve attestations.
//
// The replica ledger is fed only by flushed journal entries, so its
// state always matches what is persisted. Snapshots are taken from the
// replica, never from the live ledger, which may be ahead of the
// journal by the events still in flight.
type Processor struct {
	replica      *ledger.Ledger
	journalDg    datagateway.JournalDataGateway
	nodeInfoDg   datagateway.NodeInfoDataGateway
	attestClient *attestclient.Client // nil when reporting is disabled

	events       <-chan ledger.Envelope
	eventsClient *subscription.ClientSubscription[ledger.Envelope]

	pending         []*entity.JournalEntry
	cumulativeHash  EventHash
	lastSnapshotSeq uint64

	cleanupFuncs []func(context.Context) error

	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

func NewProcessor(
	replica *ledger.Ledger,
	journalDg datagateway.JournalDataGateway,
	nodeInfoDg datagateway.NodeInfoDataGateway,
	attestClient *attestclient.Client,
	events <-chan ledger.Envelope,
	eventsClient *subscription.ClientSubscription[ledger.Envelope],
	cleanupFuncs []func(context.Context) error,
) *Processor {
	return &Processor{
		replica:      replica,
		journalDg:    journalDg,
		nodeInfoDg:   nodeInfoDg,
		attestClient: attestClient,
		events:       events,
		eventsClient: eventsClient,
		cleanupFuncs: cleanupFuncs,
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (p *Processor) Name() string {
	return "usdm_journal"
}

// VerifyStates ensures the database was produced by a compatible schema
// and event hash version before the node starts writing to it.
func (p *Processor) VerifyStates(ctx context.Context) error {
	state, err := p.nodeInfoDg.GetLatestNodeState(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return errors.Wrap(err, "failed to get node state")
		}
		state = entity.NodeState{
			DBVersion:        DBVersion,
			EventHashVersion: EventHashVersion,
		}
		if err := p.nodeInfoDg.SetNodeState(ctx, state); err != nil {
			return errors.Wrap(err, "failed to set initial node state")
		}
		return nil
	}
	if state.DBVersion != DBVersion {
		return errors.Wrapf(errs.ConflictSetting, "db version mismatch: database is at %d, node requires %d. Please run migrations", state.DBVersion, DBVersion)
	}
	if state.EventHashVersion != EventHashVersion {
		return errors.Wrapf(errs.ConflictSetting, "event hash version mismatch: database is at %d, node requires %d", state.EventHashVersion, EventHashVersion)
	}
	return nil
}

// resumeHashChain restores the cumulative event hash to cover every
// persisted journal entry. The latest snapshot carries the chain value
// as of its sequence; entries persisted after it are re-hashed here.
func (p *Processor) resumeHashChain(ctx context.Context) error {
	snapshot, err := p.journalDg.GetLatestSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return errors.Wrap(err, "failed to get latest snapshot")
		}
		snapshot = &entity.LedgerSnapshot{}
	}
	if snapshot.CumulativeEventHash != "" {
		if err := p.cumulativeHash.UnmarshalText([]byte(snapshot.CumulativeEventHash)); err != nil {
			return errors.Wrapf(err, "malformed cumulative event hash in snapshot at sequence %d", snapshot.Sequence)
		}
	}
	p.lastSnapshotSeq = snapshot.Sequence

	tail, err := p.journalDg.GetJournalEntries(ctx, snapshot.Sequence+1, 0)
	if err != nil {
		return errors.Wrap(err, "failed to get journal entries")
	}
	for _, entry := range tail {
		eventHash, err := calculateEventHash(entry.Envelope())
		if err != nil {
			return errors.Wrapf(err, "failed to hash event at sequence %d", entry.Sequence)
		}
		p.cumulativeHash = chainEventHash(p.cumulativeHash, eventHash)
	}
	return nil
}

func (p *Processor) Run(ctx context.Context) (err error) {
	defer close(p.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "token"),
		slog.String("processor", p.Name()),
	)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping journal processor")
			if err := p.flush(ctx); err != nil {
				logger.ErrorContext(ctx, "Failed to flush journal during shutdown", slogx.Error(err))
				return errors.Wrap(err, "final flush failed")
			}
			return p.cleanup(ctx)
		case <-ctx.Done():
			if err := p.flush(context.WithoutCancel(ctx)); err != nil {
				logger.ErrorContext(ctx, "Failed to flush journal during shutdown", slogx.Error(err))
			}
			return p.cleanup(context.WithoutCancel(ctx))
		case envelope := <-p.events:
			p.buffer(envelope)
			if len(p.pending) >= maxBatchSize {
				if err := p.flush(ctx); err != nil {
					logger.ErrorContext(ctx, "Journal processor failed while flushing", slogx.Error(err))
					return errors.Wrap(err, "flush failed")
				}
			}
		case <-ticker.C:
			if err := p.flush(ctx); err != nil {
				logger.ErrorContext(ctx, "Journal processor failed while flushing", slogx.Error(err))
				return errors.Wrap(err, "flush failed")
			}
		}
	}
}

func (p *Processor) Shutdown(ctx context.Context) (err error) {
	p.quitOnce.Do(func() {
		if p.eventsClient != nil {
			p.eventsClient.Unsubscribe()
		}
		close(p.quit)
		select {
		case <-p.done:
		case <-time.After(180 * time.Second):
			err = errors.Wrap(errs.Timeout, "journal processor shutdown timeout")
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "journal processor shutdown context canceled")
		}
	})
	return
}

func (p *Processor) buffer(envelope ledger.Envelope) {
	p.pending = append(p.pending, &entity.JournalEntry{
		Sequence:  envelope.Sequence,
		Timestamp: envelope.Timestamp,
		EventType: envelope.Event.Type(),
		Event:     envelope.Event,
	})
}

func (p *Processor) flush(ctx context.Context) error {
	// drain whatever is already queued so shutdown cannot strand events
	for {
		select {
		case envelope := <-p.events:
			p.buffer(envelope)
			continue
		default:
		}
		break
	}
	if len(p.pending) == 0 {
		return nil
	}

	tx, err := p.journalDg.BeginJournalTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin journal transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback journal transaction", slogx.Error(err))
		}
	}()

	if err := tx.CreateJournalEntries(ctx, p.pending); err != nil {
		return errors.Wrap(err, "failed to persist journal entries")
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit journal transaction")
	}

	flushed := p.pending
	p.pending = nil
	lastSequence := flushed[len(flushed)-1].Sequence
	logger.DebugContext(ctx, "Flushed journal entries",
		slog.Int("count", len(flushed)),
		slogx.Uint64("lastSequence", lastSequence),
	)

	for _, entry := range flushed {
		if err := p.replica.ApplyEnvelopes([]ledger.Envelope{entry.Envelope()}); err != nil {
			return errors.Wrapf(err, "failed to apply event to replica at sequence %d", entry.Sequence)
		}
		eventHash, err := calculateEventHash(entry.Envelope())
		if err != nil {
			return errors.Wrapf(err, "failed to hash event at sequence %d", entry.Sequence)
		}
		p.cumulativeHash = chainEventHash(p.cumulativeHash, eventHash)

		if event, ok := entry.Event.(ledger.EventReservesUpdated); ok {
			p.reportAttestation(ctx, entry, event, eventHash)
		}
	}

	if lastSequence-p.lastSnapshotSeq >= snapshotEvery {
		if err := p.takeSnapshot(ctx); err != nil {
			return errors.Wrap(err, "failed to take ledger snapshot")
		}
	}
	return nil
}

func (p *Processor) takeSnapshot(ctx context.Context) error {
	state := p.replica.Snapshot()
	if err := p.journalDg.CreateSnapshot(ctx, &entity.LedgerSnapshot{
		Sequence:            state.Sequence,
		CreatedAt:           time.Now().UTC(),
		CumulativeEventHash: p.cumulativeHash.String(),
		State:               state,
	}); err != nil {
		return errors.Wrap(err, "failed to persist snapshot")
	}
	p.lastSnapshotSeq = state.Sequence

	// prune old snapshots, keeping a few for operator forensics
	if state.Sequence > keepSnapshots*snapshotEvery {
		if err := p.journalDg.DeleteSnapshotsBefore(ctx, state.Sequence-keepSnapshots*snapshotEvery); err != nil {
			logger.WarnContext(ctx, "failed to prune old snapshots", slogx.Error(err))
		}
	}
	logger.InfoContext(ctx, "Persisted ledger snapshot", slogx.Uint64("sequence", state.Sequence))
	return nil
}

func (p *Processor) reportAttestation(ctx context.Context, entry *entity.JournalEntry, event ledger.EventReservesUpdated, eventHash EventHash) {
	if p.attestClient == nil {
		return
	}
	payload := attestclient.SubmitAttestationPayload{
		Type:                "usdm",
		ClientVersion:       Version,
		DBVersion:           DBVersion,
		EventHashVersion:    EventHashVersion,
		Sequence:            entry.Sequence,
		Timestamp:           entry.Timestamp,
		TotalSupply:         event.TotalSupply.String(),
		TotalReserves:       event.TotalReserves.String(),
		Ratio:               event.Ratio.String(),
		EventHash:           eventHash.String(),
		CumulativeEventHash: p.cumulativeHash.String(),
	}
	if err := p.attestClient.SubmitAttestation(ctx, payload); err != nil {
		logger.WarnContext(ctx, "failed to submit reserve attestation", slogx.Error(err))
	}
}

func (p *Processor) cleanup(ctx context.Context) error {
	var errList []error
	for _, cleanup := range p.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Wrap(errors.Join(errList...), "failed to cleanup")
}
