package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/infoboard/internal/cli"
	"github.com/aretw0/infoboard/internal/config"
	"github.com/aretw0/infoboard/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "infoboard",
	Short: "infoboard shows a live header and item board",
	Long: `infoboard fetches a header with its items from an HTTP API and keeps a
single reactive state that can be viewed in the terminal, over HTTP or through MCP.`,
	SilenceUsage: true,
	RunE:         runScreen,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "infoboard.yaml", "Path to the configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

// setup loads the configuration and builds the logger.
// With quiet set, logging stays off unless --log-level is given.
func setup(cmd *cobra.Command, quiet bool) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}

	if quiet && level == "" {
		return cfg, logging.NewNop(), nil
	}

	logger, err := cli.NewLogger(cmd.ErrOrStderr(), cfg.Log, level)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
