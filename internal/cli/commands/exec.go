package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dataport/internal/config"
	"github.com/leapstack-labs/dataport/pkg/manager"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <script.sql>",
		Short: "Execute a SQL script",
		Long: `Execute the statements of a SQL script in file order. If the script
contains reads, the result of the last one is rendered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			return withManager(cmd, func(m *manager.Manager, cfg *config.Config) error {
				d, err := m.ExecScript(cmd.Context(), path)
				if err != nil {
					return err
				}

				if d != nil {
					return d.Render(cmd.OutOrStdout(), cfg.Output)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Executed %s\n", path)
				return nil
			})
		},
	}

	return cmd
}
