package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"autofix.dev/autofix/internal/git"
	"autofix.dev/autofix/testhelpers"
)

func TestParseOwnerRepo(t *testing.T) {
	t.Run("https URL", func(t *testing.T) {
		owner, repo, err := git.ParseOwnerRepo("https://github.com/acme/widgets.git")
		require.NoError(t, err)
		require.Equal(t, "acme", owner)
		require.Equal(t, "widgets", repo)
	})

	t.Run("https URL without .git suffix", func(t *testing.T) {
		owner, repo, err := git.ParseOwnerRepo("https://github.com/acme/widgets")
		require.NoError(t, err)
		require.Equal(t, "acme", owner)
		require.Equal(t, "widgets", repo)
	})

	t.Run("ssh URL", func(t *testing.T) {
		owner, repo, err := git.ParseOwnerRepo("git@github.com:acme/widgets.git")
		require.NoError(t, err)
		require.Equal(t, "acme", owner)
		require.Equal(t, "widgets", repo)
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, _, err := git.ParseOwnerRepo("nonsense")
		require.Error(t, err)
	})
}

func TestHasRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("reports configured and missing remotes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.False(t, git.HasRemote(ctx, "origin"))

		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		require.True(t, git.HasRemote(ctx, "origin"))
	})
}

func TestPushBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes the branch to a bare remote", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		bareDir, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		require.NoError(t, git.PushBranch(ctx, "main", "origin", false, false))

		localSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		remoteSHA, err := scene.Repo.RemoteBranchSHA(bareDir, "main")
		require.NoError(t, err)
		require.Equal(t, localSHA, remoteSHA)
	})

	t.Run("fails for a missing remote", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.PushBranch(ctx, "main", "origin", false, false)
		require.Error(t, err)
	})
}
