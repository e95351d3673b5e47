package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aretw0/infoboard/internal/cli"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh once and print the resulting state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd, false)
		if err != nil {
			return err
		}
		strict, _ := cmd.Flags().GetBool("strict")

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout+cli.SettleGrace)
		defer cancel()

		board, err := cli.NewBoard(ctx, cfg, logger, cli.WithAutoRefresh(false))
		if err != nil {
			return err
		}
		defer board.Close()

		state, err := board.RefreshAndWait(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return err
		}

		if strict && state.HasError() {
			return errors.New(state.ErrorMessage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().Bool("strict", false, "Exit with an error when the refresh failed")
}
