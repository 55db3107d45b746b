package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/blackboard/scenario"
)

// NewScenariosCommand creates the command listing built-in scenarios.
func NewScenariosCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := scenario.Builtin()
			if err != nil {
				return WrapExitError(ExitCommandError, "loading built-in scenarios", err)
			}
			out := cmd.OutOrStdout()
			for _, s := range all {
				fmt.Fprintf(out, "%-20s %s\n", s.Name, s.Description)
			}
			return nil
		},
	}
}
