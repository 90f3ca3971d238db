package actions

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"autofix.dev/autofix/internal/config"
	"autofix.dev/autofix/internal/git"
	"autofix.dev/autofix/internal/githost"
	"autofix.dev/autofix/internal/runtime"
	"autofix.dev/autofix/internal/tools"
)

// Doctor runs diagnostic checks on the autofix environment and repository
func Doctor(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog

	splog.Info("Running autofix doctor...")
	splog.Newline()

	var warnings []string
	var errors []string

	splog.Info("Environment:")
	warnings, errors = checkEnvironment(ctx, rc, warnings, errors)

	splog.Newline()
	splog.Info("Repository:")
	warnings, errors = checkRepository(ctx, rc, warnings, errors)

	splog.Newline()
	switch {
	case len(errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(errors), len(warnings))
		for _, e := range errors {
			splog.Error("  %s", e)
		}
		for _, w := range warnings {
			splog.Warn("  %s", w)
		}
		return fmt.Errorf("doctor found %d error(s)", len(errors))
	case len(warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your autofix setup is mostly healthy.", len(warnings))
		for _, w := range warnings {
			splog.Warn("  %s", w)
		}
	default:
		splog.Info("✅ All checks passed. Your autofix setup is healthy.")
	}

	return nil
}

// checkEnvironment performs environment-related checks
func checkEnvironment(ctx context.Context, rc *runtime.Context, warnings, errors []string) ([]string, []string) {
	splog := rc.Splog

	gitVersion, err := exec.Command("git", "version").Output()
	if err != nil {
		errors = append(errors, "git is not installed or not in PATH")
		splog.Error("  git is not installed or not in PATH")
	} else {
		splog.Info("  ✅ %s", strings.TrimSpace(string(gitVersion)))
	}

	if os.Getenv("GITHUB_TOKEN") != "" {
		splog.Info("  ✅ GITHUB_TOKEN is set")
	} else if _, err := git.RunGHCommandWithContext(ctx, "auth", "token"); err == nil {
		splog.Info("  ✅ gh CLI authentication available")
	} else {
		warnings = append(warnings, "GitHub authentication not configured (GITHUB_TOKEN env var or gh auth token); commit statuses will be skipped")
		splog.Warn("  GitHub authentication not configured")
	}

	if _, ok := githost.EventFromEnv(); ok {
		splog.Info("  ✅ running inside a CI job")
	} else {
		splog.Info("  %s", "running locally (no CI event context)")
	}

	return warnings, errors
}

// checkRepository performs repository and config checks
func checkRepository(ctx context.Context, rc *runtime.Context, warnings, errors []string) ([]string, []string) {
	splog := rc.Splog

	repo, err := git.OpenRepository(rc.RepoRoot)
	if err != nil {
		errors = append(errors, "not inside a git work tree")
		splog.Error("  not inside a git work tree")
		return warnings, errors
	}
	splog.Info("  ✅ repository at %s", rc.RepoRoot)

	if branch, err := repo.CurrentBranch(); err != nil {
		warnings = append(warnings, "HEAD is detached; pushes require --branch")
		splog.Warn("  HEAD is detached")
	} else {
		splog.Info("  ✅ on branch %s", branch)
	}

	cfg, err := config.Load(rc.RepoRoot)
	if err != nil {
		errors = append(errors, fmt.Sprintf("config: %v", err))
		splog.Error("  config: %v", err)
		return warnings, errors
	}
	splog.Info("  ✅ %s valid (%d tool(s))", config.FileName, len(cfg.Tools))

	if git.HasRemote(ctx, cfg.Remote) {
		splog.Info("  ✅ remote %q configured", cfg.Remote)
	} else if cfg.ShouldPush() {
		errors = append(errors, fmt.Sprintf("remote %q is not configured but push is enabled", cfg.Remote))
		splog.Error("  remote %q is not configured", cfg.Remote)
	}

	runner := tools.NewRunner(rc.RepoRoot, cfg.Tools)
	for name, resolveErr := range runner.Resolve() {
		if resolveErr != nil {
			errors = append(errors, fmt.Sprintf("tool %q: command not found on PATH", name))
			splog.Error("  tool %q: command not found on PATH", name)
		} else {
			splog.Info("  ✅ tool %q resolvable", name)
		}
	}

	return warnings, errors
}
