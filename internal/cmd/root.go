// Package cmd implements the trove CLI.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/trove/internal/config"
	"github.com/runger/trove/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "trove",
	Short: "unified search over your local research corpus",
	Long: `trove - unified search over threads, spaces, collections, files and tasks
  - search "tag:planning roadmap" → filtered, ranked results
  - pick → interactive fuzzy picker`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// cmdContext returns the command's context, or a background context
// when the command runs outside Execute (as in tests).
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore loads the configuration and opens the state database.
// The caller owns the returned store.
func openStore() (*config.Config, *storage.SQLiteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return cfg, store, nil
}
