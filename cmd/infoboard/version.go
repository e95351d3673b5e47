package main

import (
	"fmt"

	"github.com/aretw0/infoboard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of infoboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "infoboard version %s\n", infoboard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
