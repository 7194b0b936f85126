package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/pkg/manager"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a read statement and render the result",
		Long: `Run a single read statement against the target and render the result
in the configured output format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				d, err := m.QueryDataset(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return d.Render(cmd.OutOrStdout(), cfg.Output)
			})
		},
	}

	return cmd
}
