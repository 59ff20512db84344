package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ohada_backend",
	Short:         "Double-entry ledger and OHADA financial statement service",
	Long:          "Records balanced journal entries and derives SYSCOHADA balance sheets, income statements and cash flow statements from validated lines.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, rulesCmd)
}
