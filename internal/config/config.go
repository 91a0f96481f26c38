package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	tokenconfig "github.com/usdm-network/ledger-node/modules/token/config"
	"github.com/usdm-network/ledger-node/pkg/attestclient"
	"github.com/usdm-network/ledger-node/pkg/logger"
	"github.com/usdm-network/ledger-node/pkg/logger/slogx"
	"github.com/usdm-network/ledger-node/pkg/middleware/requestcontext"
	"github.com/usdm-network/ledger-node/pkg/middleware/requestlogger"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		EnableModules: []string{"usdm"},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
		Modules: ModulesConfig{
			USDM: tokenconfig.Config{
				Database:    "postgres",
				APIHandlers: []string{"http"},
			},
		},
	}
)

type Config struct {
	Logger        logger.Config       `mapstructure:"logger"`
	EnableModules []string            `mapstructure:"enable_modules"`
	APIOnly       bool                `mapstructure:"api_only"`
	HTTPServer    HTTPServerConfig    `mapstructure:"http_server"`
	Attestation   attestclient.Config `mapstructure:"attestation"`
	Modules       ModulesConfig       `mapstructure:"modules"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

type ModulesConfig struct {
	USDM tokenconfig.Config `mapstructure:"usdm"`
}

// BindPFlag binds a command-line flag to a configuration key. Must be
// called before Parse.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Failed to bind flag to configuration", slogx.Error(err), slog.String("key", key))
	}
}

// Parse reads the configuration file (falling back to the ./config.yaml
// search path when configFile is empty), environment variables and
// bound flags. Subsequent calls return the already-parsed configuration.
func Parse(configFile string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		if configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
	})

	return *config
}

// Load returns the parsed configuration. Parse must run first;
// cobra.OnInitialize in the root command takes care of that.
func Load() Config {
	return *config
}
