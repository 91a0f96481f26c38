package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/usdm-network/ledger-node/internal/config"
	"github.com/usdm-network/ledger-node/pkg/logger"
	"github.com/usdm-network/ledger-node/pkg/logger/slogx"
)

var cmd = &cobra.Command{
	Use:  "usdm",
	Long: `USDM ledger node: a role-gated stablecoin ledger with an append-only event journal and reserve attestations`,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger: %v", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands and handlers
	cmd.AddCommand(
		NewRunCommand(),
		NewMigrateCommand(),
		NewVersionCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command")
	}
}
