// Package cli wires configuration, storage and services into the tm commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/config"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	configPath string
	cfg        config.Config
	log        *zap.Logger
}

// NewRootCmd builds the tm command tree.
func NewRootCmd(version string) *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:           "tm",
		Short:         "Personal task tracker",
		Long:          "tm keeps a per-user task board with free-form tags, served over HTTP and Telegram.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			// Make zap available to packages that log through zap.L().
			zap.ReplaceGlobals(log)
			st.cfg = cfg
			st.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.log != nil {
				_ = st.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&st.configPath, "config", "c", "", "YAML config file (environment variables take precedence)")

	root.AddCommand(
		newServeCmd(st),
		newBotCmd(st),
		newUserCmd(st),
		newExportCmd(st),
	)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}
