package main

import (
	"fmt"

	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/spf13/cobra"
)

var rulesDir string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect statement rule tables",
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the rule tables and report overlapping or malformed patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry(rulesDir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range registry.Tables() {
			fmt.Fprintf(out, "%-10s %-17s %-12s %d lines\n", t.Standard(), t.Statement(), t.Version(), len(t.Rules()))
		}
		fmt.Fprintln(out, "rule tables OK")
		return nil
	},
}

func init() {
	rulesCheckCmd.Flags().StringVar(&rulesDir, "dir", "", "Directory holding standards.yaml (defaults to the embedded tables)")
	rulesCmd.AddCommand(rulesCheckCmd)
}

// loadRegistry loads rule tables from dir, or the embedded tables when dir is empty.
func loadRegistry(dir string) (*classification.Registry, error) {
	if dir == "" {
		return classification.LoadEmbedded()
	}
	return classification.LoadDir(dir)
}
