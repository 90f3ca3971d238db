package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"autofix.dev/autofix/internal/actions"
	"autofix.dev/autofix/internal/config"
	autofixerrors "autofix.dev/autofix/internal/errors"
	"autofix.dev/autofix/internal/output"
	"autofix.dev/autofix/internal/runtime"
	"autofix.dev/autofix/internal/tools"
	"autofix.dev/autofix/testhelpers"
)

// newContext builds a runtime context around a scene without touching the
// network or the GitHub API.
func newContext(scene *testhelpers.Scene, cfg *config.Config) *runtime.Context {
	splog := output.NewSplog()
	splog.SetQuiet(true)
	return &runtime.Context{
		Splog:    splog,
		RepoRoot: scene.Dir,
		Config:   cfg,
		Tools:    tools.NewRunner(scene.Dir, cfg.Tools),
	}
}

// fixingConfig returns a config whose single tool rewrites the tracked file
// created by BasicSceneSetup.
func fixingConfig() *config.Config {
	cfg := config.Default()
	cfg.Tools = []config.Tool{{
		Name:    "fixer",
		Command: "sh",
		Args:    []string{"-c", "echo fixed > 1_test.txt"},
	}}
	return cfg
}

// noopConfig returns a config whose single tool changes nothing.
func noopConfig() *config.Config {
	cfg := config.Default()
	cfg.Tools = []config.Tool{{Name: "noop", Command: "true"}}
	return cfg
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("commits fixes and pushes them to the remote", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		bareDir, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		cfg := fixingConfig()
		rc := newContext(scene, cfg)

		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{}))

		// Exactly one new commit, attributed to the bot
		msgs, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		require.Equal(t, cfg.CommitMessage, msgs[0])

		name, email, err := scene.Repo.HeadAuthor()
		require.NoError(t, err)
		require.Equal(t, cfg.Bot.Name, name)
		require.Equal(t, cfg.Bot.Email, email)

		// The skip token rides along as a trailer
		body, err := scene.Repo.HeadMessage()
		require.NoError(t, err)
		require.Contains(t, body, cfg.SkipToken)

		// Tree is clean and the remote matches local HEAD
		dirty, err := scene.Repo.HasUnstagedChanges()
		require.NoError(t, err)
		require.False(t, dirty)

		localSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		remoteSHA, err := scene.Repo.RemoteBranchSHA(bareDir, "main")
		require.NoError(t, err)
		require.Equal(t, localSHA, remoteSHA)
	})

	t.Run("creates no commit when tools change nothing", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		rc := newContext(scene, noopConfig())
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{NoPush: true}))

		after, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("tool failure aborts before committing", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		cfg := config.Default()
		cfg.Tools = []config.Tool{{Name: "bad", Command: "false"}}
		rc := newContext(scene, cfg)

		err = actions.Run(ctx, rc, actions.RunOptions{})
		require.ErrorIs(t, err, autofixerrors.ErrToolFailed)

		after, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("skips when HEAD is already a bot commit", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		cfg := config.Default()
		// This tool would fail the run if it were executed
		cfg.Tools = []config.Tool{{Name: "bad", Command: "false"}}

		require.NoError(t, scene.Repo.CreateChange("bot change", "bot", false))
		require.NoError(t, scene.Repo.CommitAs(cfg.CommitMessage, cfg.Bot.Name, cfg.Bot.Email))

		rc := newContext(scene, cfg)
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{}))
	})

	t.Run("skips when HEAD carries the skip token", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		cfg := config.Default()
		cfg.Tools = []config.Tool{{Name: "bad", Command: "false"}}

		require.NoError(t, scene.Repo.CreateChange("manual", "manual", false))
		require.NoError(t, scene.Repo.CommitAs("wip "+cfg.SkipToken, "Test User", "test@example.com"))

		rc := newContext(scene, cfg)
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{}))
	})

	t.Run("skip token trailer survives a bot identity change", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		cfg := fixingConfig()
		rc := newContext(scene, cfg)
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{NoPush: true}))

		body, err := scene.Repo.HeadMessage()
		require.NoError(t, err)
		require.Contains(t, body, cfg.SkipToken)

		// A rotated bot identity still must not re-fix its own commit;
		// the tool would fail the run if it were executed
		rotated := config.Default()
		rotated.Bot.Email = "rotated-bot@example.com"
		rotated.Tools = []config.Tool{{Name: "bad", Command: "false"}}

		require.NoError(t, actions.Run(ctx, newContext(scene, rotated), actions.RunOptions{}))
	})

	t.Run("refuses to run on a dirty tree", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("initial", "a")
		})

		require.NoError(t, scene.Repo.CreateChange("local edit", "a", true))

		rc := newContext(scene, fixingConfig())
		err := actions.Run(ctx, rc, actions.RunOptions{})
		require.ErrorIs(t, err, autofixerrors.ErrDirtyWorktree)
	})

	t.Run("dry run reports without committing", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		rc := newContext(scene, fixingConfig())
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{DryRun: true}))

		after, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, before, after)

		// The tool did rewrite the file; dry-run leaves the change in place
		dirty, err := scene.Repo.HasUnstagedChanges()
		require.NoError(t, err)
		require.True(t, dirty)
	})

	t.Run("no-push commits locally without a remote", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		cfg := fixingConfig()
		rc := newContext(scene, cfg)
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{NoPush: true}))

		msgs, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		require.Equal(t, cfg.CommitMessage, msgs[0])
	})

	t.Run("push disabled in config commits locally", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		cfg := fixingConfig()
		push := false
		cfg.Push = &push
		rc := newContext(scene, cfg)

		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{}))

		msgs, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Len(t, msgs, 2)
	})

	t.Run("runs with configuration loaded from the repository", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.WriteConfig(fixingConfig()))
		// The config must be committed like in a real repository, or the
		// dirty-worktree check refuses to run.
		require.NoError(t, scene.Repo.RunGitCommand("add", "."))
		require.NoError(t, scene.Repo.RunGitCommand("commit", "--amend", "--no-edit"))

		loaded, err := config.Load(scene.Dir)
		require.NoError(t, err)

		rc := newContext(scene, loaded)
		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{NoPush: true}))

		msgs, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		require.Equal(t, loaded.CommitMessage, msgs[0])
	})

	t.Run("untracked files produced by tools are committed", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		cfg := config.Default()
		cfg.Tools = []config.Tool{{
			Name:    "generator",
			Command: "sh",
			Args:    []string{"-c", "echo generated > generated.txt"},
		}}
		rc := newContext(scene, cfg)

		require.NoError(t, actions.Run(ctx, rc, actions.RunOptions{NoPush: true}))

		untracked, err := scene.Repo.HasUntrackedFiles()
		require.NoError(t, err)
		require.False(t, untracked)

		msgs, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Len(t, msgs, 2)
	})
}
