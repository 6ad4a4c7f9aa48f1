package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [recipe dirs or globs...]",
		Short: "Print the build decisions without building",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Plan(cmd.Context(), configFromFlags(cmd, args))
		},
	}
	addRunFlags(cmd)
	return cmd
}
