package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/pkg/dataset"
	"github.com/leapstack-labs/dataport/pkg/manager"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in the target schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				names, err := m.Tables(cmd.Context())
				if err != nil {
					return err
				}

				d := dataset.New("table")
				for _, name := range names {
					d.Append(dataset.Row{"table": name})
				}
				return d.Render(cmd.OutOrStdout(), cfg.Output)
			})
		},
	}
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show a table's columns",
		Long:  `Show the table's column names, types and nullability in ordinal order.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]

			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				exists, err := m.TableExists(cmd.Context(), table)
				if err != nil {
					return err
				}
				if !exists {
					return fmt.Errorf("table %q does not exist", table)
				}

				cols, err := m.Columns(cmd.Context(), table)
				if err != nil {
					return err
				}

				d := dataset.New("column", "type", "nullable")
				for _, col := range cols {
					d.Append(dataset.Row{
						"column":   col.Name,
						"type":     col.Type,
						"nullable": col.Nullable,
					})
				}
				return d.Render(cmd.OutOrStdout(), cfg.Output)
			})
		},
	}
}
