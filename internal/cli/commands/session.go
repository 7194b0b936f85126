// Package commands implements the dataport subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/pkg/manager"
)

// withManager opens a session for the command's resolved configuration, runs
// fn, and releases the connection on every exit path.
func withManager(cmd *cobra.Command, fn func(*manager.Manager, *config.Config) error) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	return manager.WithSession(ctx, cfg.ToAdapterConfig(), func(m *manager.Manager) error {
		return fn(m, cfg)
	}, manager.WithLogger(logger), manager.WithBatchSize(cfg.BatchSize))
}
