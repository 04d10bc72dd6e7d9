package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pricetree"
	"github.com/aretw0/pricetree/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pricetree",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(pricetree.Version)
		if isTerminal(cmd) {
			tui.PrintBanner(cmd.OutOrStdout(), version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pricetree version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
