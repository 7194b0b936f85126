package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/pkg/manager"
	"github.com/leapstack-labs/dataport/pkg/reader"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var (
		table     string
		sheet     string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a file into a table",
		Long: `Import rows from a CSV, JSON or spreadsheet file into a table,
or execute a .sql script. The format is detected from the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			format, err := reader.DetectFormat(path)
			if err != nil {
				return err
			}
			if format != reader.FormatScript && table == "" {
				return fmt.Errorf("--table is required when importing %s files", format)
			}

			return withManager(cmd, func(m *manager.Manager, _ *config.Config) error {
				n, err := m.ImportFile(cmd.Context(), table, path, manager.ImportOptions{
					Sheet:     sheet,
					BatchSize: batchSize,
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s\n", n, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "Destination table (required for tabular files)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet name (spreadsheets only; default: first sheet)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Rows per batched insert (default: configured batch size)")

	return cmd
}
