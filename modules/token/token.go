package token

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/core/worker"
	"github.com/usdm-network/ledger-node/internal/config"
	"github.com/usdm-network/ledger-node/internal/postgres"
	"github.com/usdm-network/ledger-node/internal/subscription"
	tokenapi "github.com/usdm-network/ledger-node/modules/token/api"
	tokenconfig "github.com/usdm-network/ledger-node/modules/token/config"
	tokendatagateway "github.com/usdm-network/ledger-node/modules/token/datagateway"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
	tokenpostgres "github.com/usdm-network/ledger-node/modules/token/repository/postgres"
	tokenusecase "github.com/usdm-network/ledger-node/modules/token/usecase"
	"github.com/usdm-network/ledger-node/pkg/attestclient"
	"github.com/usdm-network/ledger-node/pkg/logger"
	"github.com/usdm-network/ledger-node/pkg/logger/slogx"
)

// eventBufferSize bounds the number of in-flight events between the
// ledger and the journal processor. Ledger writes block once the buffer
// is full, so the processor falling behind applies backpressure instead
// of dropping events.
const eventBufferSize = 1024

// journalSink forwards ledger events to the journal processor. It is
// called under the ledger write lock, so failures cannot be returned to
// the caller; a send failing means the processor is shutting down and
// the event will be recovered from the journal gap on next start.
type journalSink struct {
	events *subscription.Subscription[ledger.Envelope]
}

func (s *journalSink) Publish(envelope ledger.Envelope) {
	if err := s.events.Send(context.Background(), envelope); err != nil {
		logger.Error("Failed to forward ledger event to journal processor", slogx.Error(err), slogx.Uint64("sequence", envelope.Sequence))
	}
}

func New(injector do.Injector) (worker.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	attestClient := do.MustInvoke[*attestclient.Client](injector)

	var (
		journalDg  tokendatagateway.JournalDataGateway
		nodeInfoDg tokendatagateway.NodeInfoDataGateway
	)
	var cleanupFuncs []func(context.Context) error
	switch strings.ToLower(conf.Modules.USDM.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, conf.Modules.USDM.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for journal")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		repo := tokenpostgres.NewRepository(pg)
		journalDg = repo
		nodeInfoDg = repo
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for journal is not supported", conf.Modules.USDM.Database)
	}

	eventsCh := make(chan ledger.Envelope, eventBufferSize)
	events := subscription.NewSubscription(eventsCh)
	sink := &journalSink{events: events}

	// Rebuild the replica from the persisted journal, then start the
	// live ledger from the replica's state. The replica stays behind the
	// live ledger by exactly the unflushed events.
	replica, live, err := restoreLedgers(ctx, conf.Modules.USDM.Genesis, journalDg, sink)
	if err != nil {
		return nil, errors.Wrap(err, "can't restore ledger state")
	}

	processor := NewProcessor(replica, journalDg, nodeInfoDg, attestClient, eventsCh, events.Client(), cleanupFuncs)
	if err := processor.VerifyStates(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := processor.resumeHashChain(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	tokenUsecase := tokenusecase.New(live, journalDg)

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.USDM.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			httpHandler := tokenapi.NewHTTPHandler(tokenUsecase)
			if err := httpHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount USDM API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	if attestClient != nil {
		if err := attestClient.SubmitNodeReport(ctx, "usdm"); err != nil {
			logger.WarnContext(ctx, "Failed to submit node report", slogx.Error(err))
		}
	}

	return processor, nil
}

// restoreLedgers rebuilds the persisted ledger state. With an empty
// journal it bootstraps from the genesis configuration; the genesis
// events flow through the sink and are persisted like any others.
// Otherwise it replays the latest snapshot plus the journal tail.
func restoreLedgers(ctx context.Context, genesisConf tokenconfig.GenesisConfig, journalDg tokendatagateway.JournalDataGateway, sink ledger.EventSink) (replica, live *ledger.Ledger, err error) {
	_, err = journalDg.GetLatestSequence(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return nil, nil, errors.Wrap(err, "failed to get latest journal sequence")
		}

		// Empty journal. The replica starts empty and catches up as the
		// genesis events are flushed.
		genesis, err := parseGenesisConfig(genesisConf)
		if err != nil {
			return nil, nil, errors.Wrap(err, "invalid genesis configuration")
		}
		genesis.Sink = sink
		replica = ledger.FromSnapshot(ledger.Snapshot{}, nil, nil)
		live, err = ledger.New(genesis)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to bootstrap ledger from genesis configuration")
		}
		logger.InfoContext(ctx, "Bootstrapped ledger from genesis configuration")
		return replica, live, nil
	}

	var state ledger.Snapshot
	snapshot, err := journalDg.GetLatestSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return nil, nil, errors.Wrap(err, "failed to get latest ledger snapshot")
		}
		snapshot = &entity.LedgerSnapshot{}
	} else {
		state = snapshot.State
	}

	replica = ledger.FromSnapshot(state, nil, nil)
	tail, err := journalDg.GetJournalEntries(ctx, snapshot.Sequence+1, 0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get journal entries")
	}
	envelopes := lo.Map(tail, func(entry *entity.JournalEntry, _ int) ledger.Envelope { return entry.Envelope() })
	if err := replica.ApplyEnvelopes(envelopes); err != nil {
		return nil, nil, errors.Wrap(err, "failed to replay journal entries")
	}

	live = ledger.FromSnapshot(replica.Snapshot(), sink, nil)
	logger.InfoContext(ctx, "Restored ledger state from journal",
		slogx.Uint64("snapshotSequence", snapshot.Sequence),
		slogx.Int("replayedEvents", len(envelopes)),
	)
	return replica, live, nil
}

func parseGenesisConfig(conf tokenconfig.GenesisConfig) (ledger.GenesisConfig, error) {
	master, err := ledger.NewAddressFromString(conf.MasterController)
	if err != nil {
		return ledger.GenesisConfig{}, errors.Wrap(err, "invalid master controller address")
	}
	genesis := ledger.GenesisConfig{MasterController: master}

	roleHolders := []struct {
		name      string
		addresses []string
		out       *[]ledger.Address
	}{
		{"minters", conf.Minters, &genesis.Minters},
		{"blacklisters", conf.Blacklisters, &genesis.Blacklisters},
		{"pausers", conf.Pausers, &genesis.Pausers},
		{"reserve_managers", conf.ReserveManagers, &genesis.ReserveManagers},
	}
	for _, holders := range roleHolders {
		for _, raw := range holders.addresses {
			address, err := ledger.NewAddressFromString(raw)
			if err != nil {
				return ledger.GenesisConfig{}, errors.Wrapf(err, "invalid address %q in %s", raw, holders.name)
			}
			*holders.out = append(*holders.out, address)
		}
	}

	amounts := []struct {
		name string
		raw  string
		out  *uint128.Uint128
	}{
		{"initial_supply", conf.InitialSupply, &genesis.InitialSupply},
		{"max_mint_per_transaction", conf.MaxMintPerTransaction, &genesis.MaxMintPerTransaction},
		{"max_total_supply", conf.MaxTotalSupply, &genesis.MaxTotalSupply},
	}
	for _, amount := range amounts {
		if amount.raw == "" {
			continue
		}
		value, err := uint128.FromString(amount.raw)
		if err != nil {
			return ledger.GenesisConfig{}, errors.Wrapf(err, "invalid amount %q for %s", amount.raw, amount.name)
		}
		*amount.out = value
	}
	return genesis, nil
}
