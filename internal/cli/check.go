package cli

import (
	"github.com/spf13/cobra"

	"autofix.dev/autofix/internal/actions"
	"autofix.dev/autofix/internal/runtime"
)

// newCheckCmd creates the check command
func newCheckCmd() *cobra.Command {
	var toolList []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the configured tools in check mode without changing files",
		Long: `Run every configured tool in check mode, in declaration order. The first
tool that reports issues fails the run. The working tree is never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			return actions.Check(cmd.Context(), rc, actions.CheckOptions{
				Tools: toolList,
			})
		},
	}

	cmd.Flags().StringSliceVar(&toolList, "tool", nil, "Run only the named tool(s); may be repeated")

	return cmd
}
