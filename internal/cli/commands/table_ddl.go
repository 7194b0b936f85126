package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/pkg/manager"
)

// NewCreateTableCommand creates the create-table command.
func NewCreateTableCommand() *cobra.Command {
	var (
		primaryKey    string
		errorIfExists bool
	)

	cmd := &cobra.Command{
		Use:   "create-table <table> <name:type> [name:type ...]",
		Short: "Create a table from column definitions",
		Long: `Create a table from ordered name:type column definitions, for example:

  dataport create-table users id:SERIAL name:TEXT age:INTEGER --primary-key id

By default an existing table is left untouched; --error-if-exists makes it an error.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]

			cols := make([]manager.ColumnDef, 0, len(args)-1)
			for _, arg := range args[1:] {
				name, typ, ok := strings.Cut(arg, ":")
				if !ok || name == "" || typ == "" {
					return fmt.Errorf("invalid column definition %q (expected name:type)", arg)
				}
				cols = append(cols, manager.ColumnDef{Name: name, Type: typ})
			}

			return withManager(cmd, func(m *manager.Manager, _ *config.Config) error {
				err := m.CreateTable(cmd.Context(), table, cols, manager.CreateOptions{
					PrimaryKey:    primaryKey,
					ErrorIfExists: errorIfExists,
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created table %s\n", table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&primaryKey, "primary-key", "", "Column to mark as primary key")
	cmd.Flags().BoolVar(&errorIfExists, "error-if-exists", false, "Fail when the table already exists")

	return cmd
}

// NewDropTableCommand creates the drop-table command.
func NewDropTableCommand() *cobra.Command {
	var errorIfMissing bool

	cmd := &cobra.Command{
		Use:   "drop-table <table>",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]

			return withManager(cmd, func(m *manager.Manager, _ *config.Config) error {
				err := m.DropTable(cmd.Context(), table, manager.DropOptions{
					ErrorIfMissing: errorIfMissing,
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped table %s\n", table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&errorIfMissing, "error-if-missing", false, "Fail when the table does not exist")

	return cmd
}
