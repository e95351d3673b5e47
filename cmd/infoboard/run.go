package main

import (
	"github.com/aretw0/infoboard"
	"github.com/aretw0/infoboard/internal/cli"
	"github.com/aretw0/infoboard/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the board in the terminal",
	Long: `Shows the board in the terminal and refreshes it on start.
Type r to refresh, d to dismiss an error and q to quit.`,
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.Flags().Bool("no-banner", false, "Do not print the banner")
	runCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, true)
	if err != nil {
		return err
	}

	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	board, err := cli.NewBoard(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer board.Close()

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		tui.PrintBanner(cmd.OutOrStdout(), infoboard.Version)
	}

	screen := tui.NewScreen(cmd.InOrStdin(), cmd.OutOrStdout(),
		tui.WithErrorDisplay(cfg.UI.ErrorDisplay),
		tui.WithLogger(logger),
	)
	return screen.Run(ctx, board)
}
