package cmd

import (
	"fmt"
	"os"

	"inventory-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "inventory-sync",
	Short: "Inventory search index synchronizer",
	Long: `inventory-sync mirrors inventory records from the relational store into the
search index. It loads every record at startup, applies stock adjustments
received over Kafka or HTTP, and re-synchronizes the index after each one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits 1 when a subcommand fails.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Console encoding with ISO8601 timestamps reads better on a terminal
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}
