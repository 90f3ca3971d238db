package actions

import (
	"context"

	"autofix.dev/autofix/internal/runtime"
	"autofix.dev/autofix/internal/tools"
)

// CheckOptions contains options for the check command
type CheckOptions struct {
	Tools []string
}

// Check runs the configured tools in check mode without mutating the tree.
// The first tool reporting issues fails the run.
func Check(ctx context.Context, rc *runtime.Context, opts CheckOptions) error {
	results, err := runTools(ctx, rc, tools.ModeCheck, opts.Tools)
	if err != nil {
		return err
	}

	rc.Splog.Success("%d tool(s) passed", len(results))
	return nil
}
