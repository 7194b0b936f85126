package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/internal/migrate"
	"github.com/leapstack-labs/dataport/pkg/manager"
)

// NewMigrateCommand creates the migrate command and its subcommands.
func NewMigrateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations",
		Long: `Apply goose SQL migrations from a directory against the target database.
Supported for postgres and sqlite targets.`,
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "Directory containing migration files")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				if err := migrate.Up(m.Adapter().DB(), cfg.Type, dir); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
				return nil
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				if err := migrate.Down(m.Adapter().DB(), cfg.Type, dir); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migration rolled back")
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				return migrate.Status(m.Adapter().DB(), cfg.Type, dir)
			})
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				v, err := migrate.Version(m.Adapter().DB(), cfg.Type, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migration version: %d\n", v)
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, status, version)
	return cmd
}
