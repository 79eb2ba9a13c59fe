package cmd

import (
	"github.com/spf13/cobra"

	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/config"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/loader"
	log "github.com/baberabb/lm-evaluation-harness-sub001/pkg/logger"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/registry"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
)

var harnessConfig schema.HarnessConfiguration

var (
	flagConfig   string
	flagLogLevel string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "lmeval",
	Short: "Task registry loader for LM evaluation",
	Long:  `lmeval loads benchmark task and group definitions, resolves template inheritance, and validates the resulting registry.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		var err error
		harnessConfig, err = config.InitHarnessConfig(flagConfig)
		if err != nil {
			return err
		}

		if flagLogLevel != "" {
			harnessConfig.Logs.Level = flagLogLevel
		}
		return setupLogger(&harnessConfig)
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main() and only needs to happen once.
func Execute() error {
	return RootCmd.Execute()
}

func setupLogger(harnessConfig *schema.HarnessConfiguration) error {
	level, err := log.ParseLogLevel(harnessConfig.Logs.Level)
	if err != nil {
		return err
	}

	logger := log.New()
	logger.SetLevel(log.CharmLevel(level))
	log.SetDefault(logger)
	return nil
}

// buildRegistry discovers the configured task definitions and loads them
// into a registry. Shared by every subcommand that reads the registry.
func buildRegistry() (*registry.Registry, error) {
	sources, err := loader.New(&harnessConfig).LoadSources()
	if err != nil {
		return nil, err
	}
	return registry.Load(&harnessConfig, sources)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the lmeval config file")
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "logs-level", "", "Log level (Trace, Debug, Info, Warning, Off)")
}
