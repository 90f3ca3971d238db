package cli

import (
	"github.com/spf13/cobra"

	"autofix.dev/autofix/internal/actions"
	"autofix.dev/autofix/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create the .autofix.yml configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetRepoContext()
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			return actions.Initialize(rc, actions.InitOptions{
				Force: force,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
