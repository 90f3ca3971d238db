// Package githost provides GitHub API integration for reporting fix commits.
package githost

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"autofix.dev/autofix/internal/git"
)

// StatusContext is the status context name attached to reported commits.
const StatusContext = "autofix"

// Status states accepted by the GitHub commit status API.
const (
	StatePending = "pending"
	StateSuccess = "success"
	StateFailure = "failure"
	StateError   = "error"
)

// Client is an interface for the GitHub interactions autofix performs
type Client interface {
	// CreateCommitStatus reports a status for a commit SHA
	CreateCommitStatus(ctx context.Context, sha, state, description string) error

	// GetOwnerRepo returns the repository owner and name
	GetOwnerRepo() (owner, repo string)
}

// RealClient implements Client using the real GitHub API
type RealClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRealClient creates a new RealClient for the repository behind the given remote.
func NewRealClient(ctx context.Context, remote string) (*RealClient, error) {
	token, err := getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get GitHub token: %w", err)
	}

	owner, repo, err := resolveOwnerRepo(ctx, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository info: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &RealClient{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// GetOwnerRepo returns the repository owner and name
func (c *RealClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// CreateCommitStatus reports a status for a commit SHA
func (c *RealClient) CreateCommitStatus(ctx context.Context, sha, state, description string) error {
	status := &github.RepoStatus{
		State:       github.String(state),
		Description: github.String(description),
		Context:     github.String(StatusContext),
	}

	_, _, err := c.client.Repositories.CreateStatus(ctx, c.owner, c.repo, sha, status)
	if err != nil {
		return fmt.Errorf("failed to create commit status: %w", err)
	}
	return nil
}

// getToken gets a GitHub token from the environment or the gh CLI
func getToken(ctx context.Context) (string, error) {
	// Try environment variable first
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	// Try gh CLI
	output, err := git.RunGHCommandWithContext(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}

	return token, nil
}

// resolveOwnerRepo determines the owner and repository name, preferring the
// CI-provided GITHUB_REPOSITORY over parsing the remote URL.
func resolveOwnerRepo(ctx context.Context, remote string) (string, string, error) {
	if repoSlug := os.Getenv("GITHUB_REPOSITORY"); repoSlug != "" {
		parts := strings.SplitN(repoSlug, "/", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}

	url, err := git.GetRemoteURL(ctx, remote)
	if err != nil {
		return "", "", err
	}
	return git.ParseOwnerRepo(url)
}
