package cli

import (
	"github.com/spf13/cobra"

	"autofix.dev/autofix/internal/actions"
	"autofix.dev/autofix/internal/runtime"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	var (
		dryRun   bool
		noPush   bool
		toolList []string
		remote   string
		branch   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured tools in fix mode and commit any changes",
		Long: `Run every configured tool in fix mode, in declaration order. When the
working tree changed, stage all modified and untracked files, create one
commit attributed to the configured bot identity, and push it to the
triggering branch. Any tool failure aborts the run before a commit is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			return actions.Run(cmd.Context(), rc, actions.RunOptions{
				DryRun: dryRun,
				NoPush: noPush,
				Tools:  toolList,
				Remote: remote,
				Branch: branch,
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be committed without committing or pushing")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Create the fix commit but don't push it")
	cmd.Flags().StringSliceVar(&toolList, "tool", nil, "Run only the named tool(s); may be repeated")
	cmd.Flags().StringVar(&remote, "remote", "", "Remote to push to (defaults to the configured remote)")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to push (defaults to the CI event ref or the checked-out branch)")

	return cmd
}
