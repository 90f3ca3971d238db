// Package runtime provides a context type that holds the repository,
// configuration and logger for use throughout the application.
// This avoids passing multiple parameters.
package runtime

import (
	"context"
	"fmt"

	"autofix.dev/autofix/internal/config"
	"autofix.dev/autofix/internal/git"
	"autofix.dev/autofix/internal/githost"
	"autofix.dev/autofix/internal/output"
	"autofix.dev/autofix/internal/tools"
)

// Context provides access to the repository, config and output for commands
type Context struct {
	Splog    *output.Splog
	RepoRoot string
	Config   *config.Config
	Tools    *tools.Runner
	Host     githost.Client
}

// GetContext resolves the repository root, loads the configuration and
// builds the runtime context commands operate on.
func GetContext(ctx context.Context) (*Context, error) {
	rc, err := GetRepoContext()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(rc.RepoRoot)
	if err != nil {
		return nil, err
	}
	rc.Config = cfg
	rc.Tools = tools.NewRunner(rc.RepoRoot, cfg.Tools)

	// Host client is optional; statuses are skipped when no token is available
	host, err := githost.NewRealClient(ctx, cfg.Remote)
	if err == nil {
		rc.Host = host
	}

	return rc, nil
}

// GetRepoContext builds a context with only the repository root resolved.
// Used by commands that must run before a config exists (init, doctor).
func GetRepoContext() (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	git.SetWorkingDir(repoRoot)

	return &Context{
		Splog:    output.NewSplog(),
		RepoRoot: repoRoot,
	}, nil
}
