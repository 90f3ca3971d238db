package cli

import (
	"github.com/spf13/cobra"

	"autofix.dev/autofix/internal/actions"
	"autofix.dev/autofix/internal/runtime"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues with your autofix setup",
		Long: `Run diagnostic checks on your autofix environment and repository.

The doctor command checks:
  - Environment: git binary, GitHub authentication, CI event context
  - Repository: work tree status, branch, config validity, remote, tool resolution`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetRepoContext()
			if err != nil {
				return err
			}
			defer rc.Splog.Close()

			return actions.Doctor(cmd.Context(), rc)
		},
	}
}
