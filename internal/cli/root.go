// Package cli wires the cobra command tree for the autofix binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autofix",
		Short: "Autofix runs your lint and format tools and commits the result under a bot identity",
		Long: `Autofix is a push-triggered automation tool: it runs the configured
lint/format tools in fix mode against the repository, and when the working
tree changed, stages everything, creates exactly one commit attributed to
the configured bot identity, and pushes it back to the triggering branch.

It is designed to run inside a CI job on every push, but works locally too.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// newVersionCmd creates the version command
func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("autofix %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
