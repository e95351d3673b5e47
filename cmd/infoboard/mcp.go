package main

import (
	"fmt"

	"github.com/aretw0/infoboard"
	mcpAdapter "github.com/aretw0/infoboard/internal/adapters/mcp"
	"github.com/aretw0/infoboard/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the board as an MCP server",
	Long: `Exposes the board to MCP clients with the get_state, refresh_screen,
hide_error_message and send_intent tools and the infoboard://state resource.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd, false)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		board, err := cli.NewBoard(ctx, cfg, logger, cli.WithAutoRefresh(false))
		if err != nil {
			return err
		}
		defer board.Close()

		server := mcpAdapter.NewServer(board, infoboard.Version, mcpAdapter.WithLogger(logger))

		switch transport {
		case "stdio":
			return server.ServeStdio()
		case "sse":
			return server.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().Int("port", 8081, "Port for the sse transport")
}
