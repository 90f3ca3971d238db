package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"autofix.dev/autofix/internal/git"
	"autofix.dev/autofix/testhelpers"
)

func TestCommitWithIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("commit is attributed to the given identity", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.Repo.CreateChange("fixed", "a", false))
		require.NoError(t, git.StageAll(ctx))

		err := git.CommitWithIdentity(ctx, git.CommitOptions{
			Message:     "style: apply automated fixes",
			AuthorName:  "autofix-bot",
			AuthorEmail: "autofix-bot@users.noreply.github.com",
		})
		require.NoError(t, err)

		name, email, err := scene.Repo.HeadAuthor()
		require.NoError(t, err)
		require.Equal(t, "autofix-bot", name)
		require.Equal(t, "autofix-bot@users.noreply.github.com", email)

		msg, err := scene.Repo.HeadMessage()
		require.NoError(t, err)
		require.Equal(t, "style: apply automated fixes", msg)
	})

	t.Run("identity does not leak into repo config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.Repo.CreateChange("fixed", "a", false))
		require.NoError(t, git.StageAll(ctx))
		require.NoError(t, git.CommitWithIdentity(ctx, git.CommitOptions{
			Message:     "fixes",
			AuthorName:  "autofix-bot",
			AuthorEmail: "autofix-bot@users.noreply.github.com",
		}))

		name, err := scene.Repo.RunGitCommandAndGetOutput("config", "user.name")
		require.NoError(t, err)
		require.Equal(t, "Test User", name)
	})

	t.Run("fails with nothing staged", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.CommitWithIdentity(ctx, git.CommitOptions{
			Message:     "empty",
			AuthorName:  "autofix-bot",
			AuthorEmail: "autofix-bot@users.noreply.github.com",
		})
		require.Error(t, err)
	})
}
