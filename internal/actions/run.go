// Package actions implements the operations behind the CLI commands.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autofix.dev/autofix/internal/config"
	autofixerrors "autofix.dev/autofix/internal/errors"
	"autofix.dev/autofix/internal/git"
	"autofix.dev/autofix/internal/githost"
	"autofix.dev/autofix/internal/output"
	"autofix.dev/autofix/internal/runtime"
	"autofix.dev/autofix/internal/tools"
)

// RunOptions contains options for the run command
type RunOptions struct {
	DryRun bool
	NoPush bool
	Tools  []string
	Remote string
	Branch string
}

// Run performs the full fix pipeline: run every configured tool in fix mode,
// and when the working tree changed, create one bot commit and push it back
// to the triggering branch. Any tool failure aborts before a commit is made.
func Run(ctx context.Context, rc *runtime.Context, opts RunOptions) error {
	cfg := rc.Config
	splog := rc.Splog

	remote := opts.Remote
	if remote == "" {
		remote = cfg.Remote
	}

	repo, err := git.OpenRepository(rc.RepoRoot)
	if err != nil {
		return err
	}

	head, err := repo.HeadCommit()
	if err != nil {
		return err
	}
	headSHA := head.Hash.String()

	// Loop guard: a push of our own fix commit must not trigger another fix
	// commit. HEAD authored by the bot or carrying the skip token ends the
	// run successfully without touching the tree.
	if head.Author.Email == cfg.Bot.Email {
		splog.Info("HEAD is already an automated fix commit (%s); nothing to do", shortSHA(headSHA))
		return nil
	}
	if cfg.SkipToken != "" && strings.Contains(head.Message, cfg.SkipToken) {
		splog.Info("HEAD commit carries %q; skipping", cfg.SkipToken)
		return nil
	}

	dirty, err := git.IsWorktreeDirty(ctx)
	if err != nil {
		return err
	}
	if dirty && !opts.DryRun {
		return fmt.Errorf("%w; commit or stash them before running fixes", autofixerrors.ErrDirtyWorktree)
	}

	branch, err := resolveBranch(repo, opts.Branch)
	if err != nil && !opts.DryRun && !opts.NoPush && cfg.ShouldPush() {
		return fmt.Errorf("cannot push from a detached HEAD; use --no-push or --branch: %w", err)
	}

	reportStatus(ctx, rc, headSHA, githost.StatePending, "running fix tools")

	if _, err := runTools(ctx, rc, tools.ModeFix, opts.Tools); err != nil {
		reportStatus(ctx, rc, headSHA, githost.StateFailure, "a fix tool failed")
		return err
	}

	changed, err := git.IsWorktreeDirty(ctx)
	if err != nil {
		return err
	}
	if !changed {
		splog.Info("Tools produced no changes; nothing to commit")
		reportStatus(ctx, rc, headSHA, githost.StateSuccess, "no fixes needed")
		return nil
	}

	files, err := git.ChangedFiles(ctx)
	if err != nil {
		return err
	}

	if opts.DryRun {
		splog.Info("Would commit %d file(s):", len(files))
		for _, f := range files {
			splog.Info("  %s", output.ColorDim(f))
		}
		return nil
	}

	if err := git.StageAll(ctx); err != nil {
		return err
	}

	if err := git.CommitWithIdentity(ctx, git.CommitOptions{
		Message:     commitMessage(cfg),
		AuthorName:  cfg.Bot.Name,
		AuthorEmail: cfg.Bot.Email,
	}); err != nil {
		return err
	}

	fixedSHA, err := repo.HeadSHA()
	if err != nil {
		return err
	}
	splog.Success("Committed %d file(s) as %s (%s)", len(files), cfg.Bot, shortSHA(fixedSHA))

	if opts.NoPush || !cfg.ShouldPush() {
		if branch != "" {
			splog.Tip("Push suppressed; run 'git push %s %s' to publish the fix commit.", remote, branch)
		}
		return nil
	}

	if branch == "" {
		return autofixerrors.ErrDetachedHead
	}

	if err := git.PushBranch(ctx, branch, remote, false, false); err != nil {
		reportStatus(ctx, rc, fixedSHA, githost.StateError, "failed to push fix commit")
		return err
	}
	splog.Success("Pushed %s to %s", branch, remote)

	reportStatus(ctx, rc, fixedSHA, githost.StateSuccess, "automated fixes applied")
	return nil
}

// commitMessage appends the skip token as a trailer so a later run still
// recognizes the commit when the bot identity has changed in between.
func commitMessage(cfg *config.Config) string {
	msg := cfg.CommitMessage
	if cfg.SkipToken != "" && !strings.Contains(msg, cfg.SkipToken) {
		msg += "\n\n" + cfg.SkipToken
	}
	return msg
}

// resolveBranch returns the branch to push, preferring an explicit override,
// then the CI event ref, then the checked-out branch.
func resolveBranch(repo *git.Repository, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if event, ok := githost.EventFromEnv(); ok && event.Branch != "" {
		return event.Branch, nil
	}

	return repo.CurrentBranch()
}

// runTools executes the selected tools in order, logging progress.
func runTools(ctx context.Context, rc *runtime.Context, mode tools.Mode, names []string) ([]tools.Result, error) {
	splog := rc.Splog

	results := make([]tools.Result, 0, len(rc.Tools.Names()))
	selected := names
	if len(selected) == 0 {
		selected = rc.Tools.Names()
	}

	for _, name := range selected {
		splog.Info("Running %s (%s mode)...", output.ColorTool(name), mode)
		result, err := rc.Tools.Run(ctx, name, mode)
		if err != nil {
			var toolErr *autofixerrors.ToolCommandError
			if errors.As(err, &toolErr) {
				splog.Error("%s failed", name)
				if toolErr.Stdout != "" {
					splog.Page(toolErr.Stdout + "\n")
				}
				if toolErr.Stderr != "" {
					splog.Page(toolErr.Stderr + "\n")
				}
			}
			return results, err
		}
		splog.Debug("%s finished in %s", name, result.Duration.Round(1e6))
		results = append(results, result)
	}
	return results, nil
}

// reportStatus posts a commit status when a host client is available.
// Status failures are logged but never fail the run.
func reportStatus(ctx context.Context, rc *runtime.Context, sha, state, description string) {
	if rc.Host == nil || sha == "" {
		return
	}
	if err := rc.Host.CreateCommitStatus(ctx, sha, state, description); err != nil {
		rc.Splog.Debug("failed to report commit status: %v", err)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
