package config

import "github.com/usdm-network/ledger-node/internal/postgres"

type Config struct {
	Database    string          `mapstructure:"database"` // Database to store the event journal. current supported databases: "postgres"
	Postgres    postgres.Config `mapstructure:"postgres"`
	APIHandlers []string        `mapstructure:"api_handlers"` // current supported handlers: "http"
	Genesis     GenesisConfig   `mapstructure:"genesis"`
}

// GenesisConfig describes the initial ledger state. It is consulted only
// when the journal is empty; once the genesis events are persisted, the
// ledger is always rebuilt from the journal and this config is ignored.
type GenesisConfig struct {
	MasterController      string   `mapstructure:"master_controller"`
	Minters               []string `mapstructure:"minters"`
	Blacklisters          []string `mapstructure:"blacklisters"`
	Pausers               []string `mapstructure:"pausers"`
	ReserveManagers       []string `mapstructure:"reserve_managers"`
	InitialSupply         string   `mapstructure:"initial_supply"`           // base units, empty or 0 uses the ledger default
	MaxMintPerTransaction string   `mapstructure:"max_mint_per_transaction"` // base units, empty or 0 uses the ledger default
	MaxTotalSupply        string   `mapstructure:"max_total_supply"`         // base units, empty or 0 uses the ledger default
}
