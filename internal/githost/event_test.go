package githost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"autofix.dev/autofix/internal/githost"
)

func TestEventFromEnv(t *testing.T) {
	t.Run("absent outside CI", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "")

		_, ok := githost.EventFromEnv()
		require.False(t, ok)
	})

	t.Run("reads push context", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "true")
		t.Setenv("GITHUB_REF", "refs/heads/main")
		t.Setenv("GITHUB_SHA", "abc123")
		t.Setenv("GITHUB_ACTOR", "octocat")
		t.Setenv("GITHUB_REPOSITORY", "octo/repo")
		t.Setenv("GITHUB_EVENT_NAME", "push")

		event, ok := githost.EventFromEnv()
		require.True(t, ok)
		require.Equal(t, "main", event.Branch)
		require.Equal(t, "abc123", event.SHA)
		require.Equal(t, "octocat", event.Actor)
		require.Equal(t, "octo/repo", event.Repository)
		require.True(t, event.IsPush())
	})

	t.Run("tag refs have no branch", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "true")
		t.Setenv("GITHUB_REF", "refs/tags/v1.0.0")
		t.Setenv("GITHUB_EVENT_NAME", "push")

		event, ok := githost.EventFromEnv()
		require.True(t, ok)
		require.Empty(t, event.Branch)
		require.False(t, event.IsPush())
	})

	t.Run("pull request events are not pushes", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "true")
		t.Setenv("GITHUB_REF", "refs/pull/7/merge")
		t.Setenv("GITHUB_EVENT_NAME", "pull_request")

		event, ok := githost.EventFromEnv()
		require.True(t, ok)
		require.False(t, event.IsPush())
	})
}
