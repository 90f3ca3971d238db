package git

import (
	"context"
	"fmt"
)

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	AllowEmpty  bool
	NoVerify    bool
}

// CommitWithIdentity creates a commit attributed to the given identity.
// The identity is passed via GIT_AUTHOR_* / GIT_COMMITTER_* environment
// variables so repository and global git config remain untouched.
func CommitWithIdentity(ctx context.Context, opts CommitOptions) error {
	args := []string{"commit", "-m", opts.Message}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}

	env := []string{
		"GIT_AUTHOR_NAME=" + opts.AuthorName,
		"GIT_AUTHOR_EMAIL=" + opts.AuthorEmail,
		"GIT_COMMITTER_NAME=" + opts.AuthorName,
		"GIT_COMMITTER_EMAIL=" + opts.AuthorEmail,
	}

	_, err := RunGitCommandWithEnv(ctx, env, args...)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
